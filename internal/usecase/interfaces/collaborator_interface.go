package interfaces

import (
	"context"

	"agency_billing/internal/domain/entities"
)

// IDocumentGenerator renders an invoice document and returns a reference to it.
// Callers treat failures as non-fatal.
type IDocumentGenerator interface {
	GenerateInvoiceDocument(ctx context.Context, invoice entities.Invoice, order entities.Order) (string, error)
}

type NotificationKind string

const (
	NotificationQuoteReceived  NotificationKind = "quote_received"
	NotificationQuoteSent      NotificationKind = "quote_sent"
	NotificationOrderConfirmed NotificationKind = "order_confirmed"
)

type Notification struct {
	Kind      NotificationKind
	To        string
	Name      string
	Reference string
	Amount    string
	Currency  string
}

// INotifier delivers e-mails. Callers never fail their own operation on a send error.
type INotifier interface {
	Send(ctx context.Context, n Notification) error
}
