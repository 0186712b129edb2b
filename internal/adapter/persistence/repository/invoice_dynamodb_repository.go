package repository

import (
	"context"
	"sort"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"
)

const (
	defaultInvoicesTableName = "invoices"
	invoicesOrderIDIndex     = "order_id-index"
	invoicesUserIDIndex      = "user_id-index"
)

type invoiceLineItem struct {
	Description string `dynamodbav:"description"`
	Quantity    int    `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Total       string `dynamodbav:"total"`
}

type invoiceItem struct {
	ID            string            `dynamodbav:"id"`
	InvoiceNumber string            `dynamodbav:"invoice_number"`
	OrderID       string            `dynamodbav:"order_id,omitempty"`
	UserID        string            `dynamodbav:"user_id"`
	Amount        string            `dynamodbav:"amount"`
	Tax           string            `dynamodbav:"tax"`
	Total         string            `dynamodbav:"total"`
	Currency      string            `dynamodbav:"currency"`
	Status        string            `dynamodbav:"status"`
	DueDate       string            `dynamodbav:"due_date,omitempty"`
	PaidDate      string            `dynamodbav:"paid_date,omitempty"`
	Items         []invoiceLineItem `dynamodbav:"items"`
	DocumentKey   string            `dynamodbav:"document_key,omitempty"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id), user_id-index (PK: user_id)
type InvoiceDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	identifiersTable string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoAPI, tableName, identifiersTable string) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:              ddb,
		tableName:        tableOrDefault(tableName, defaultInvoicesTableName),
		identifiersTable: tableOrDefault(identifiersTable, defaultIdentifiersTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	err := createNumbered(ctx, r.ddb, r.identifiersTable, numberedRecord{
		table:  r.tableName,
		id:     inv.ID,
		number: inv.InvoiceNumber,
		kind:   "invoice",
		item:   toInvoiceItem(inv),
	}, time.Now())
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	it, found, err := getByID[invoiceItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !found {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// GetByOrderID returns the oldest invoice of the order.
func (r *InvoiceDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Invoice, error) {
	items, err := queryIndex[invoiceItem](ctx, r.ddb, r.tableName, invoicesOrderIDIndex, "order_id", orderID)
	if err != nil || len(items) == 0 {
		return entities.Invoice{}, err
	}
	out := fromInvoiceItems(items)
	return out[len(out)-1], nil
}

func (r *InvoiceDynamoRepository) ListAll(ctx context.Context) ([]entities.Invoice, error) {
	items, err := scanAll[invoiceItem](ctx, r.ddb, r.tableName)
	if err != nil {
		return nil, err
	}
	return fromInvoiceItems(items), nil
}

func (r *InvoiceDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Invoice, error) {
	items, err := queryIndex[invoiceItem](ctx, r.ddb, r.tableName, invoicesUserIDIndex, "user_id", userID)
	if err != nil {
		return nil, err
	}
	return fromInvoiceItems(items), nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	if err := replaceExisting(ctx, r.ddb, r.tableName, inv.ID, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	lines := make([]invoiceLineItem, 0, len(inv.Items))
	for _, l := range inv.Items {
		lines = append(lines, invoiceLineItem{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   formatDecimal(l.UnitPrice),
			Total:       formatDecimal(l.Total),
		})
	}
	return invoiceItem{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		UserID:        inv.UserID,
		Amount:        formatDecimal(inv.Amount),
		Tax:           formatDecimal(inv.Tax),
		Total:         formatDecimal(inv.Total),
		Currency:      inv.Currency,
		Status:        string(inv.Status),
		DueDate:       formatTimePtr(inv.DueDate),
		PaidDate:      formatTimePtr(inv.PaidDate),
		Items:         lines,
		DocumentKey:   inv.DocumentKey,
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	lines := make([]entities.InvoiceItem, 0, len(it.Items))
	for _, l := range it.Items {
		lines = append(lines, entities.InvoiceItem{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   parseDecimal(l.UnitPrice),
			Total:       parseDecimal(l.Total),
		})
	}
	inv := entities.Invoice{
		ID:            it.ID,
		InvoiceNumber: it.InvoiceNumber,
		OrderID:       it.OrderID,
		UserID:        it.UserID,
		Currency:      it.Currency,
		Status:        entities.InvoiceStatus(it.Status),
		DueDate:       parseTimePtr(it.DueDate),
		PaidDate:      parseTimePtr(it.PaidDate),
		Items:         lines,
		DocumentKey:   it.DocumentKey,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
	inv.SetAmounts(parseDecimal(it.Amount), parseDecimal(it.Tax))
	return inv
}

func fromInvoiceItems(items []invoiceItem) []entities.Invoice {
	out := make([]entities.Invoice, 0, len(items))
	for _, it := range items {
		out = append(out, fromInvoiceItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
