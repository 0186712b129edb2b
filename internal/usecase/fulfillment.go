package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	effectInvoice = "invoice"
	effectProject = "project"
	effectEmail   = "email"

	invoiceDueDays = 30

	// effectLease bounds how long a claim without its record blocks a retry.
	effectLease = 5 * time.Minute
)

func effectKey(orderID, effect string) string {
	return orderID + ":" + effect
}

// Fulfillment applies the side effects of an order becoming paid: an invoice (with its
// document), a project scaffold and a confirmation e-mail.
//
// Each effect is claimed under "<orderId>:<effect>" before it runs, so replays from webhooks,
// client confirmations or admin transitions never duplicate it. A failed invoice or project
// releases its claim and fails the call so the next attempt completes it. A claim whose
// record never appeared is taken over once it is older than effectLease.
type Fulfillment struct {
	invoices  interfaces.IInvoiceRepository
	projects  interfaces.IProjectRepository
	effects   interfaces.IEffectRepository
	ids       *IdentifierAllocator
	documents interfaces.IDocumentGenerator
	notifier  interfaces.INotifier
	now       func() time.Time
}

func NewFulfillment(
	invoices interfaces.IInvoiceRepository,
	projects interfaces.IProjectRepository,
	effects interfaces.IEffectRepository,
	ids *IdentifierAllocator,
	documents interfaces.IDocumentGenerator,
	notifier interfaces.INotifier,
) *Fulfillment {
	return &Fulfillment{
		invoices:  invoices,
		projects:  projects,
		effects:   effects,
		ids:       ids,
		documents: documents,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (f *Fulfillment) ApplyPaidEffects(ctx context.Context, order entities.Order) error {
	log.Printf("[fulfillment][usecase] apply start order_id=%s status=%s", order.ID, order.Status)

	if err := f.once(ctx, order.ID, effectInvoice, f.invoiceExists, func() error { return f.createInvoice(ctx, order) }); err != nil {
		return err
	}
	if err := f.once(ctx, order.ID, effectProject, f.projectExists, func() error { return f.createProject(ctx, order) }); err != nil {
		return err
	}
	if err := f.once(ctx, order.ID, effectEmail, nil, func() error {
		notify(ctx, f.notifier, interfaces.Notification{
			Kind:      interfaces.NotificationOrderConfirmed,
			To:        order.Billing.Email,
			Name:      order.Billing.Name,
			Reference: order.OrderNumber,
			Amount:    order.Amount.StringFixed(2),
			Currency:  order.Currency,
		})
		return nil
	}); err != nil {
		log.Printf("[fulfillment][usecase] email claim failed order_id=%s err=%v", order.ID, err)
	}

	log.Printf("[fulfillment][usecase] apply done order_id=%s", order.ID)
	return nil
}

// once runs an effect under its claim. exists, when set, tells whether the effect's
// record is already stored so a stale claim can be taken over.
func (f *Fulfillment) once(ctx context.Context, orderID, effect string, exists func(context.Context, string) (bool, error), run func() error) error {
	key := effectKey(orderID, effect)
	claimed, err := f.effects.Claim(ctx, key)
	if err != nil {
		return fmt.Errorf("claim %s: %w", key, err)
	}
	if !claimed && exists != nil {
		claimed, err = f.reclaim(ctx, key, orderID, exists)
		if err != nil {
			return err
		}
	}
	if !claimed {
		log.Printf("[fulfillment][usecase] effect already applied key=%s", key)
		return nil
	}
	if err := run(); err != nil {
		log.Printf("[fulfillment][usecase] effect failed key=%s err=%v", key, err)
		if rErr := f.effects.Release(ctx, key); rErr != nil {
			log.Printf("[fulfillment][usecase] release failed key=%s err=%v", key, rErr)
		}
		return err
	}
	return nil
}

func (f *Fulfillment) reclaim(ctx context.Context, key, orderID string, exists func(context.Context, string) (bool, error)) (bool, error) {
	done, err := exists(ctx, orderID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}
	claimed, err := f.effects.Reclaim(ctx, key, f.now().Add(-effectLease))
	if err != nil {
		return false, fmt.Errorf("reclaim %s: %w", key, err)
	}
	if claimed {
		log.Printf("[fulfillment][usecase] stale claim taken over key=%s", key)
	} else {
		log.Printf("[fulfillment][usecase] effect in progress elsewhere key=%s", key)
	}
	return claimed, nil
}

func (f *Fulfillment) invoiceExists(ctx context.Context, orderID string) (bool, error) {
	inv, err := f.invoices.GetByOrderID(ctx, orderID)
	return inv.ID != "", err
}

func (f *Fulfillment) projectExists(ctx context.Context, orderID string) (bool, error) {
	p, err := f.projects.GetByOrderID(ctx, orderID)
	return p.ID != "", err
}

func (f *Fulfillment) createInvoice(ctx context.Context, order entities.Order) error {
	existing, err := f.invoices.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	if existing.ID != "" {
		return nil
	}

	now := f.now()
	due := now.AddDate(0, 0, invoiceDueDays)
	inv := entities.Invoice{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Currency:  order.Currency,
		DueDate:   &due,
		Items:     []entities.InvoiceItem{entities.NewInvoiceItem(order.Metadata.Description(), 1, order.Amount)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv.SetAmounts(order.Amount, entities.TaxFor(order.Amount))
	inv.SetStatus(entities.InvoiceStatusPaid, now)

	var created entities.Invoice
	_, err = f.ids.Allocate(ctx, entities.InvoiceNumberPrefix, func(number string) error {
		inv.InvoiceNumber = number
		var err error
		created, err = f.invoices.Create(ctx, inv)
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("[fulfillment][usecase] invoice created order_id=%s invoice_number=%s total=%s", order.ID, created.InvoiceNumber, created.Total)

	f.attachDocument(ctx, created, order)
	return nil
}

// attachDocument is best effort: the invoice stays valid without a document.
func (f *Fulfillment) attachDocument(ctx context.Context, inv entities.Invoice, order entities.Order) {
	if f.documents == nil {
		return
	}
	key, err := f.documents.GenerateInvoiceDocument(ctx, inv, order)
	if err != nil {
		log.Printf("[fulfillment][usecase] document generation failed invoice_id=%s err=%v", inv.ID, err)
		return
	}
	inv.DocumentKey = key
	inv.UpdatedAt = f.now()
	if _, err := f.invoices.Update(ctx, inv); err != nil {
		log.Printf("[fulfillment][usecase] document attach failed invoice_id=%s err=%v", inv.ID, err)
	}
}

func (f *Fulfillment) createProject(ctx context.Context, order entities.Order) error {
	existing, err := f.projects.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	if existing.ID != "" {
		return nil
	}

	now := f.now()
	p := entities.Project{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Name:      projectName(order),
		Status:    entities.ProjectStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if order.ProjectDetails != nil {
		p.Description = order.ProjectDetails.Description
	}

	var created entities.Project
	_, err = f.ids.Allocate(ctx, entities.ProjectNumberPrefix, func(number string) error {
		p.ProjectNumber = number
		var err error
		created, err = f.projects.Create(ctx, p)
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("[fulfillment][usecase] project created order_id=%s project_number=%s", order.ID, created.ProjectNumber)
	return nil
}

func projectName(order entities.Order) string {
	if label := order.Metadata.Description(); label != "" {
		return label
	}
	return "Projet " + order.OrderNumber
}
