package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidInvoiceID = errors.New("invalid invoice id")
)

type InvoiceItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ManualInvoiceInput describes an invoice issued by hand. When Amount is zero it is the
// sum of the items; when Tax is nil it defaults to the standard rate.
type ManualInvoiceInput struct {
	OrderID  string
	UserID   string
	Amount   decimal.Decimal
	Tax      *decimal.Decimal
	Status   entities.InvoiceStatus
	DueDate  *time.Time
	Items    []InvoiceItemInput
	Currency string
}

// InvoiceUpdate carries admin edits; nil fields are left untouched. Changing the amount
// without a tax recomputes the tax at the standard rate.
type InvoiceUpdate struct {
	Amount  *decimal.Decimal
	Tax     *decimal.Decimal
	Status  *entities.InvoiceStatus
	DueDate *time.Time
	Items   *[]InvoiceItemInput
}

type IInvoiceUseCase interface {
	CreateManualInvoice(ctx context.Context, principal entities.Principal, in ManualInvoiceInput) (entities.Invoice, error)
	GetInvoice(ctx context.Context, principal entities.Principal, id string) (entities.Invoice, error)
	ListInvoices(ctx context.Context, principal entities.Principal) ([]entities.Invoice, error)
	UpdateInvoice(ctx context.Context, principal entities.Principal, id string, in InvoiceUpdate) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	invoices  interfaces.IInvoiceRepository
	orders    interfaces.IOrderRepository
	ids       *IdentifierAllocator
	documents interfaces.IDocumentGenerator
	currency  string
	now       func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	orders interfaces.IOrderRepository,
	ids *IdentifierAllocator,
	documents interfaces.IDocumentGenerator,
	currency string,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:  invoices,
		orders:    orders,
		ids:       ids,
		documents: documents,
		currency:  currency,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *InvoiceUseCase) CreateManualInvoice(ctx context.Context, principal entities.Principal, in ManualInvoiceInput) (entities.Invoice, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Invoice{}, err
	}

	items, err := buildItems(in.Items)
	if err != nil {
		return entities.Invoice{}, err
	}

	now := u.now()
	inv := entities.Invoice{
		ID:        uuid.NewString(),
		OrderID:   strings.TrimSpace(in.OrderID),
		UserID:    strings.TrimSpace(in.UserID),
		Currency:  firstNonBlank(in.Currency, u.currency),
		DueDate:   in.DueDate,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var order entities.Order
	if inv.OrderID != "" {
		order, err = u.orders.GetByID(ctx, inv.OrderID)
		if err != nil {
			return entities.Invoice{}, err
		}
		if order.ID == "" {
			return entities.Invoice{}, ErrOrderNotFound
		}
		inv.UserID = order.UserID
		inv.Currency = order.Currency
	}
	if inv.UserID == "" {
		return entities.Invoice{}, invalidField("user_id", "is required without an order")
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = sumItems(items)
	}
	if !amount.IsPositive() {
		return entities.Invoice{}, invalidField("amount", "must be greater than zero")
	}
	tax := entities.TaxFor(amount)
	if in.Tax != nil {
		if in.Tax.IsNegative() {
			return entities.Invoice{}, invalidField("tax", "must not be negative")
		}
		tax = *in.Tax
	}
	inv.SetAmounts(amount, tax)

	status := in.Status
	if status == "" {
		status = entities.InvoiceStatusPending
	}
	if !status.Valid() {
		return entities.Invoice{}, invalidField("status", "is not a valid invoice status")
	}
	inv.SetStatus(status, now)

	var created entities.Invoice
	_, err = u.ids.Allocate(ctx, entities.InvoiceNumberPrefix, func(number string) error {
		inv.InvoiceNumber = number
		var err error
		created, err = u.invoices.Create(ctx, inv)
		return err
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	log.Printf("[invoice][usecase] manual invoice created invoice_id=%s invoice_number=%s total=%s", created.ID, created.InvoiceNumber, created.Total)

	if u.documents != nil && order.ID != "" {
		if key, err := u.documents.GenerateInvoiceDocument(ctx, created, order); err != nil {
			log.Printf("[invoice][usecase] document generation failed invoice_id=%s err=%v", created.ID, err)
		} else {
			created.DocumentKey = key
			if updated, err := u.invoices.Update(ctx, created); err != nil {
				log.Printf("[invoice][usecase] document attach failed invoice_id=%s err=%v", created.ID, err)
			} else {
				created = updated
			}
		}
	}
	return created, nil
}

func (u *InvoiceUseCase) GetInvoice(ctx context.Context, principal entities.Principal, id string) (entities.Invoice, error) {
	if err := requirePrincipal(principal); err != nil {
		return entities.Invoice{}, err
	}
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if !principal.IsAdmin() && inv.UserID != principal.UserID {
		return entities.Invoice{}, ErrForbidden
	}
	return inv, nil
}

func (u *InvoiceUseCase) ListInvoices(ctx context.Context, principal entities.Principal) ([]entities.Invoice, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return u.invoices.ListAll(ctx)
	}
	return u.invoices.ListByUserID(ctx, principal.UserID)
}

func (u *InvoiceUseCase) UpdateInvoice(ctx context.Context, principal entities.Principal, id string, in InvoiceUpdate) (entities.Invoice, error) {
	if err := requireAdmin(principal); err != nil {
		return entities.Invoice{}, err
	}
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}

	if in.Items != nil {
		items, err := buildItems(*in.Items)
		if err != nil {
			return entities.Invoice{}, err
		}
		inv.Items = items
		if in.Amount == nil {
			sum := sumItems(items)
			in.Amount = &sum
		}
	}

	amount, tax := inv.Amount, inv.Tax
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return entities.Invoice{}, invalidField("amount", "must be greater than zero")
		}
		amount = *in.Amount
		tax = entities.TaxFor(amount)
	}
	if in.Tax != nil {
		if in.Tax.IsNegative() {
			return entities.Invoice{}, invalidField("tax", "must not be negative")
		}
		tax = *in.Tax
	}
	inv.SetAmounts(amount, tax)

	now := u.now()
	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.Invoice{}, invalidField("status", "is not a valid invoice status")
		}
		inv.SetStatus(*in.Status, now)
	}
	if in.DueDate != nil {
		due := in.DueDate.UTC()
		inv.DueDate = &due
	}
	inv.UpdatedAt = now

	updated, err := u.invoices.Update(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}
	log.Printf("[invoice][usecase] updated invoice_id=%s status=%s total=%s", updated.ID, updated.Status, updated.Total)
	return updated, nil
}

func (u *InvoiceUseCase) load(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func buildItems(in []InvoiceItemInput) ([]entities.InvoiceItem, error) {
	items := make([]entities.InvoiceItem, 0, len(in))
	for _, it := range in {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, invalidField("items.description", "is required")
		}
		if it.Quantity < 1 {
			return nil, invalidField("items.quantity", "must be at least 1")
		}
		if it.UnitPrice.IsNegative() {
			return nil, invalidField("items.unit_price", "must not be negative")
		}
		items = append(items, entities.NewInvoiceItem(desc, it.Quantity, it.UnitPrice))
	}
	return items, nil
}

func sumItems(items []entities.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
