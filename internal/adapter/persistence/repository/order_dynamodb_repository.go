package repository

import (
	"context"
	"sort"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

const (
	defaultOrdersTableName = "orders"
	ordersUserIDIndex      = "user_id-index"
)

type depositItem struct {
	Percentage      int    `dynamodbav:"percentage"`
	Amount          string `dynamodbav:"amount"`
	Paid            bool   `dynamodbav:"paid"`
	PaidAt          string `dynamodbav:"paid_at,omitempty"`
	PaymentIntentID string `dynamodbav:"payment_intent_id,omitempty"`
}

type balanceItem struct {
	Amount          string `dynamodbav:"amount"`
	Paid            bool   `dynamodbav:"paid"`
	PaidAt          string `dynamodbav:"paid_at,omitempty"`
	PaymentIntentID string `dynamodbav:"payment_intent_id,omitempty"`
}

type billingItem struct {
	Name       string `dynamodbav:"name,omitempty"`
	Email      string `dynamodbav:"email,omitempty"`
	Phone      string `dynamodbav:"phone,omitempty"`
	Company    string `dynamodbav:"company,omitempty"`
	Address    string `dynamodbav:"address,omitempty"`
	City       string `dynamodbav:"city,omitempty"`
	PostalCode string `dynamodbav:"postal_code,omitempty"`
	Country    string `dynamodbav:"country,omitempty"`
}

type metadataItem struct {
	Origin      string `dynamodbav:"origin"`
	OfferID     string `dynamodbav:"offer_id,omitempty"`
	OfferTitle  string `dynamodbav:"offer_title,omitempty"`
	QuoteID     string `dynamodbav:"quote_id,omitempty"`
	QuoteNumber string `dynamodbav:"quote_number,omitempty"`
}

type projectDetailsItem struct {
	SiteType     string `dynamodbav:"site_type"`
	Budget       string `dynamodbav:"budget"`
	Deadline     string `dynamodbav:"deadline"`
	Description  string `dynamodbav:"description"`
	AgreedAmount string `dynamodbav:"agreed_amount"`
}

type orderItem struct {
	ID             string              `dynamodbav:"id"`
	OrderNumber    string              `dynamodbav:"order_number"`
	UserID         string              `dynamodbav:"user_id,omitempty"`
	Amount         string              `dynamodbav:"amount"`
	Currency       string              `dynamodbav:"currency"`
	Status         string              `dynamodbav:"status"`
	PaymentStatus  string              `dynamodbav:"payment_status"`
	Deposit        depositItem         `dynamodbav:"deposit"`
	Balance        balanceItem         `dynamodbav:"balance"`
	Billing        billingItem         `dynamodbav:"billing"`
	Metadata       metadataItem        `dynamodbav:"metadata"`
	ProjectDetails *projectDetailsItem `dynamodbav:"project_details,omitempty"`
	CheckoutID     string              `dynamodbav:"checkout_id,omitempty"`
	CreatedAt      string              `dynamodbav:"created_at"`
	UpdatedAt      string              `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id)
type OrderDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	identifiersTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName, identifiersTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:              ddb,
		tableName:        tableOrDefault(tableName, defaultOrdersTableName),
		identifiersTable: tableOrDefault(identifiersTable, defaultIdentifiersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	err := createNumbered(ctx, r.ddb, r.identifiersTable, numberedRecord{
		table:  r.tableName,
		id:     o.ID,
		number: o.OrderNumber,
		kind:   "order",
		item:   toOrderItem(o),
	}, time.Now())
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	it, found, err := getByID[orderItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListAll(ctx context.Context) ([]entities.Order, error) {
	items, err := scanAll[orderItem](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	return fromOrderItems(items), nil
}

func (r *OrderDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Order, error) {
	items, err := queryIndex[orderItem](ctx, r.ddb, r.tableName, ordersUserIDIndex, "user_id", userID)
	if err != nil {
		return nil, err
	}
	return fromOrderItems(items), nil
}

func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	if err := replaceExisting(ctx, r.ddb, r.tableName, o.ID, toOrderItem(o)); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Amount:        formatDecimal(o.Amount),
		Currency:      o.Currency,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Deposit: depositItem{
			Percentage:      o.Deposit.Percentage,
			Amount:          formatDecimal(o.Deposit.Amount),
			Paid:            o.Deposit.Paid,
			PaidAt:          formatTimePtr(o.Deposit.PaidAt),
			PaymentIntentID: o.Deposit.PaymentIntentID,
		},
		Balance: balanceItem{
			Amount:          formatDecimal(o.Balance.Amount),
			Paid:            o.Balance.Paid,
			PaidAt:          formatTimePtr(o.Balance.PaidAt),
			PaymentIntentID: o.Balance.PaymentIntentID,
		},
		Billing: billingItem(o.Billing),
		Metadata: metadataItem{
			Origin:      string(o.Metadata.Origin),
			OfferID:     o.Metadata.OfferID,
			OfferTitle:  o.Metadata.OfferTitle,
			QuoteID:     o.Metadata.QuoteID,
			QuoteNumber: o.Metadata.QuoteNumber,
		},
		CheckoutID: o.CheckoutID,
		CreatedAt:  formatTime(o.CreatedAt),
		UpdatedAt:  formatTime(o.UpdatedAt),
	}
	if d := o.ProjectDetails; d != nil {
		it.ProjectDetails = &projectDetailsItem{
			SiteType:     d.SiteType,
			Budget:       d.Budget,
			Deadline:     d.Deadline,
			Description:  d.Description,
			AgreedAmount: formatDecimal(d.AgreedAmount),
		}
	}
	return it
}

// fromOrderItem rebuilds the closed metadata variant: fields of the other origin are dropped.
func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		ID:            it.ID,
		OrderNumber:   it.OrderNumber,
		UserID:        it.UserID,
		Amount:        parseDecimal(it.Amount),
		Currency:      it.Currency,
		Status:        entities.OrderStatus(it.Status),
		PaymentStatus: entities.PaymentStatus(it.PaymentStatus),
		Deposit: entities.DepositPayment{
			Percentage:      it.Deposit.Percentage,
			Amount:          parseDecimal(it.Deposit.Amount),
			Paid:            it.Deposit.Paid,
			PaidAt:          parseTimePtr(it.Deposit.PaidAt),
			PaymentIntentID: it.Deposit.PaymentIntentID,
		},
		Balance: entities.BalancePayment{
			Amount:          parseDecimal(it.Balance.Amount),
			Paid:            it.Balance.Paid,
			PaidAt:          parseTimePtr(it.Balance.PaidAt),
			PaymentIntentID: it.Balance.PaymentIntentID,
		},
		Billing:    entities.BillingInfo(it.Billing),
		CheckoutID: it.CheckoutID,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
	switch entities.OrderOrigin(it.Metadata.Origin) {
	case entities.OrderOriginManualPurchase:
		o.Metadata = entities.ManualPurchaseMetadata(it.Metadata.OfferID, it.Metadata.OfferTitle)
	case entities.OrderOriginFromQuote:
		o.Metadata = entities.FromQuoteMetadata(it.Metadata.QuoteID, it.Metadata.QuoteNumber)
	}
	if d := it.ProjectDetails; d != nil {
		o.ProjectDetails = &entities.ProjectDetails{
			SiteType:     d.SiteType,
			Budget:       d.Budget,
			Deadline:     d.Deadline,
			Description:  d.Description,
			AgreedAmount: parseDecimal(d.AgreedAmount),
		}
	}
	return o
}

func fromOrderItems(items []orderItem) []entities.Order {
	out := make([]entities.Order, 0, len(items))
	for _, it := range items {
		out = append(out, fromOrderItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
