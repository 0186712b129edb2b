package usecase

import (
	"context"
	"errors"
	"testing"

	"agency_billing/internal/domain/entities"
)

func TestInvoiceUseCase_CreateManualInvoice(t *testing.T) {
	t.Run("client is forbidden", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.invoiceUC.CreateManualInvoice(context.Background(), alicePrincipal, ManualInvoiceInput{UserID: "u"})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("amount from items and default tax", func(t *testing.T) {
		env := newTestEnv()
		inv, err := env.invoiceUC.CreateManualInvoice(context.Background(), adminPrincipal, ManualInvoiceInput{
			UserID: "user-alice",
			Items: []InvoiceItemInput{
				{Description: "Maintenance", Quantity: 3, UnitPrice: dec("49.90")},
				{Description: "Hosting", Quantity: 1, UnitPrice: dec("120")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !inv.Amount.Equal(dec("269.70")) || !inv.Tax.Equal(dec("53.94")) || !inv.Total.Equal(dec("323.64")) {
			t.Fatalf("unexpected totals %s/%s/%s", inv.Amount, inv.Tax, inv.Total)
		}
		if inv.Status != entities.InvoiceStatusPending || inv.InvoiceNumber == "" {
			t.Fatalf("unexpected invoice %+v", inv)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.invoiceUC.CreateManualInvoice(context.Background(), adminPrincipal, ManualInvoiceInput{OrderID: "nope", Amount: dec("10")})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("bad item", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.invoiceUC.CreateManualInvoice(context.Background(), adminPrincipal, ManualInvoiceInput{
			UserID: "u", Items: []InvoiceItemInput{{Description: "x", Quantity: 0, UnitPrice: dec("1")}},
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestInvoiceUseCase_UpdateInvoice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	inv, err := env.invoiceUC.CreateManualInvoice(ctx, adminPrincipal, ManualInvoiceInput{UserID: "user-alice", Amount: dec("100")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := dec("250")
	got, err := env.invoiceUC.UpdateInvoice(ctx, adminPrincipal, inv.ID, InvoiceUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("update amount: %v", err)
	}
	if !got.Total.Equal(dec("300")) {
		t.Fatalf("expected total 300, got %s", got.Total)
	}

	tax := dec("0")
	status := entities.InvoiceStatusPaid
	got, err = env.invoiceUC.UpdateInvoice(ctx, adminPrincipal, inv.ID, InvoiceUpdate{Tax: &tax, Status: &status})
	if err != nil {
		t.Fatalf("update tax: %v", err)
	}
	if !got.Total.Equal(dec("250")) || got.PaidDate == nil {
		t.Fatalf("unexpected invoice %+v", got)
	}

	if _, err := env.invoiceUC.GetInvoice(ctx, malloryPrincipal, inv.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.invoiceUC.GetInvoice(ctx, alicePrincipal, "missing"); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	mine, _ := env.invoiceUC.ListInvoices(ctx, alicePrincipal)
	if len(mine) != 1 {
		t.Fatalf("expected one invoice, got %d", len(mine))
	}
}
