package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

const (
	defaultQuotesTableName = "quotes"
	quotesEmailIndex       = "email-index"
	quotesUserIDIndex      = "user_id-index"
)

type quoteItem struct {
	ID                     string `dynamodbav:"id"`
	QuoteNumber            string `dynamodbav:"quote_number"`
	UserID                 string `dynamodbav:"user_id,omitempty"`
	Name                   string `dynamodbav:"name"`
	Email                  string `dynamodbav:"email"`
	Phone                  string `dynamodbav:"phone,omitempty"`
	SiteType               string `dynamodbav:"site_type"`
	Budget                 string `dynamodbav:"budget"`
	Deadline               string `dynamodbav:"deadline"`
	Description            string `dynamodbav:"description"`
	Status                 string `dynamodbav:"status"`
	ProposedAmount         string `dynamodbav:"proposed_amount,omitempty"`
	ValidUntil             string `dynamodbav:"valid_until,omitempty"`
	AdminNotes             string `dynamodbav:"admin_notes,omitempty"`
	ReviewedAt             string `dynamodbav:"reviewed_at,omitempty"`
	SentAt                 string `dynamodbav:"sent_at,omitempty"`
	DepositPaymentIntentID string `dynamodbav:"deposit_payment_intent_id,omitempty"`
	DepositPaid            bool   `dynamodbav:"deposit_paid"`
	DepositPaidAt          string `dynamodbav:"deposit_paid_at,omitempty"`
	AcceptedAt             string `dynamodbav:"accepted_at,omitempty"`
	OrderID                string `dynamodbav:"order_id,omitempty"`
	CreatedAt              string `dynamodbav:"created_at"`
	UpdatedAt              string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: email-index (PK: email), user_id-index (PK: user_id)
//
// E-mails are stored lower-cased so the email-index lookup is case-insensitive.
type QuoteDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	identifiersTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName, identifiersTable string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:              ddb,
		tableName:        tableOrDefault(tableName, defaultQuotesTableName),
		identifiersTable: tableOrDefault(identifiersTable, defaultIdentifiersTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	err := createNumbered(ctx, r.ddb, r.identifiersTable, numberedRecord{
		table:  r.tableName,
		id:     q.ID,
		number: q.QuoteNumber,
		kind:   "quote",
		item:   toQuoteItem(q),
	}, time.Now())
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	it, found, err := getByID[quoteItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListAll(ctx context.Context) ([]entities.Quote, error) {
	items, err := scanAll[quoteItem](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Quote, error) {
	items, err := queryIndex[quoteItem](ctx, r.ddb, r.tableName, quotesUserIDIndex, "user_id", userID)
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) ListByEmail(ctx context.Context, email string) ([]entities.Quote, error) {
	items, err := queryIndex[quoteItem](ctx, r.ddb, r.tableName, quotesEmailIndex, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return fromQuoteItems(items), nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if err := replaceExisting(ctx, r.ddb, r.tableName, q.ID, toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                     q.ID,
		QuoteNumber:            q.QuoteNumber,
		UserID:                 q.UserID,
		Name:                   q.Name,
		Email:                  strings.ToLower(q.Email),
		Phone:                  q.Phone,
		SiteType:               q.SiteType,
		Budget:                 q.Budget,
		Deadline:               q.Deadline,
		Description:            q.Description,
		Status:                 string(q.Status),
		ProposedAmount:         formatDecimalPtr(q.ProposedAmount),
		ValidUntil:             formatTimePtr(q.ValidUntil),
		AdminNotes:             q.AdminNotes,
		ReviewedAt:             formatTimePtr(q.ReviewedAt),
		SentAt:                 formatTimePtr(q.SentAt),
		DepositPaymentIntentID: q.DepositPaymentIntentID,
		DepositPaid:            q.DepositPaid,
		DepositPaidAt:          formatTimePtr(q.DepositPaidAt),
		AcceptedAt:             formatTimePtr(q.AcceptedAt),
		OrderID:                q.OrderID,
		CreatedAt:              formatTime(q.CreatedAt),
		UpdatedAt:              formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:                     it.ID,
		QuoteNumber:            it.QuoteNumber,
		UserID:                 it.UserID,
		Name:                   it.Name,
		Email:                  it.Email,
		Phone:                  it.Phone,
		SiteType:               it.SiteType,
		Budget:                 it.Budget,
		Deadline:               it.Deadline,
		Description:            it.Description,
		Status:                 entities.QuoteStatus(it.Status),
		ProposedAmount:         parseDecimalPtr(it.ProposedAmount),
		ValidUntil:             parseTimePtr(it.ValidUntil),
		AdminNotes:             it.AdminNotes,
		ReviewedAt:             parseTimePtr(it.ReviewedAt),
		SentAt:                 parseTimePtr(it.SentAt),
		DepositPaymentIntentID: it.DepositPaymentIntentID,
		DepositPaid:            it.DepositPaid,
		DepositPaidAt:          parseTimePtr(it.DepositPaidAt),
		AcceptedAt:             parseTimePtr(it.AcceptedAt),
		OrderID:                it.OrderID,
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
}

// fromQuoteItems converts and orders newest first.
func fromQuoteItems(items []quoteItem) []entities.Quote {
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
