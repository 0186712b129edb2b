package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"agency_billing/internal/domain/entities"
	mock_interfaces "agency_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func paidOrder() entities.Order {
	o := entities.Order{
		ID:          "ord-1",
		OrderNumber: "CMD-2026-00001",
		UserID:      "user-alice",
		Currency:    "eur",
		Status:      entities.OrderStatusPaid,
		Billing:     entities.BillingInfo{Name: "Alice", Email: "alice@x.com"},
		Metadata:    entities.ManualPurchaseMetadata("offer-1", "Site vitrine"),
	}
	o.SetAmount(dec("1000"))
	return o
}

func TestFulfillment_ApplyPaidEffects(t *testing.T) {
	t.Run("claim error aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		effects := mock_interfaces.NewMockIEffectRepository(ctrl)
		f := NewFulfillment(nil, nil, effects, nil, nil, nil)

		effects.EXPECT().Claim(gomock.Any(), "ord-1:invoice").Return(false, errors.New("db"))

		if err := f.ApplyPaidEffects(context.Background(), paidOrder()); err == nil {
			t.Fatalf("expected claim error")
		}
	})

	t.Run("invoice failure releases the claim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		effects := mock_interfaces.NewMockIEffectRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		f := NewFulfillment(invoices, nil, effects, nil, nil, nil)

		effects.EXPECT().Claim(gomock.Any(), "ord-1:invoice").Return(true, nil)
		invoices.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Invoice{}, errors.New("db"))
		effects.EXPECT().Release(gomock.Any(), "ord-1:invoice").Return(nil)

		if err := f.ApplyPaidEffects(context.Background(), paidOrder()); err == nil {
			t.Fatalf("expected invoice error")
		}
	})

	t.Run("already claimed effects are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		effects := mock_interfaces.NewMockIEffectRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		f := NewFulfillment(invoices, projects, effects, nil, nil, notifier)

		effects.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
		invoices.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Invoice{ID: "inv-1"}, nil)
		projects.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Project{ID: "p-1"}, nil)

		if err := f.ApplyPaidEffects(context.Background(), paidOrder()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("fresh claim without its record is left to its owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		effects := mock_interfaces.NewMockIEffectRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		f := NewFulfillment(invoices, projects, effects, nil, nil, notifier)

		effects.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
		invoices.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Invoice{}, nil)
		effects.EXPECT().Reclaim(gomock.Any(), "ord-1:invoice", gomock.Any()).Return(false, nil)
		projects.EXPECT().GetByOrderID(gomock.Any(), "ord-1").Return(entities.Project{ID: "p-1"}, nil)

		if err := f.ApplyPaidEffects(context.Background(), paidOrder()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("document failure is not fatal", func(t *testing.T) {
		env := newTestEnv()
		env.documents.err = errors.New("s3 down")
		env.notifier.err = errors.New("smtp down")

		if err := env.fulfillment.ApplyPaidEffects(context.Background(), paidOrder()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		inv, _ := env.invoices.GetByOrderID(context.Background(), "ord-1")
		if inv.ID == "" || inv.DocumentKey != "" {
			t.Fatalf("expected invoice without document, got %+v", inv)
		}
		if inv.Status != entities.InvoiceStatusPaid || inv.PaidDate == nil {
			t.Fatalf("expected a paid invoice, got %+v", inv)
		}
		if !inv.Tax.Equal(dec("200")) || !inv.Total.Equal(inv.Amount.Add(inv.Tax)) {
			t.Fatalf("unexpected totals %s + %s = %s", inv.Amount, inv.Tax, inv.Total)
		}
		p, _ := env.projects.GetByOrderID(context.Background(), "ord-1")
		if p.Status != entities.ProjectStatusWaiting || p.Name != "Site vitrine" {
			t.Fatalf("unexpected project %+v", p)
		}
	})
}

func TestFulfillment_StaleClaimIsTakenOver(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.invoices.createErr = errors.New("db")
	env.effects.releaseErr = errors.New("db")

	if err := env.fulfillment.ApplyPaidEffects(ctx, paidOrder()); err == nil {
		t.Fatalf("expected invoice error")
	}
	env.invoices.createErr = nil
	env.effects.releaseErr = nil

	if err := env.fulfillment.ApplyPaidEffects(ctx, paidOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.invoices.table.len() != 0 {
		t.Fatalf("a fresh claim must not be taken over")
	}

	env.fulfillment.now = func() time.Time { return time.Now().UTC().Add(2 * effectLease) }
	if err := env.fulfillment.ApplyPaidEffects(ctx, paidOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv, _ := env.invoices.GetByOrderID(ctx, "ord-1")
	if inv.ID == "" || env.invoices.table.len() != 1 {
		t.Fatalf("expected the invoice once the claim went stale, got %d", env.invoices.table.len())
	}
	if env.projects.table.len() != 1 {
		t.Fatalf("expected one project, got %d", env.projects.table.len())
	}

	if err := env.fulfillment.ApplyPaidEffects(ctx, paidOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.invoices.table.len() != 1 {
		t.Fatalf("replay duplicated the invoice")
	}
}
