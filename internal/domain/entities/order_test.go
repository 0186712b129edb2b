package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPaid, OrderStatusPaid, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatus("shipped"), OrderStatusPaid, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOrder_SetAmount(t *testing.T) {
	var o Order
	o.SetAmount(decimal.NewFromInt(1000))
	if o.Deposit.Percentage != 40 || !o.Deposit.Amount.Equal(decimal.NewFromInt(400)) || !o.Balance.Amount.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("unexpected split: %+v %+v", o.Deposit, o.Balance)
	}

	o.SetAmount(decimal.RequireFromString("1234.56"))
	if !o.Deposit.Amount.Add(o.Balance.Amount).Equal(o.Amount) {
		t.Fatalf("split does not sum to amount after edit")
	}
}

func TestOrder_PaymentMarks(t *testing.T) {
	now := time.Now().UTC()
	var o Order
	o.SetAmount(decimal.NewFromInt(1000))

	if !o.MarkDepositPaid("pi_dep", now) {
		t.Fatalf("first deposit mark must change state")
	}
	if o.MarkDepositPaid("pi_dep", now) {
		t.Fatalf("second deposit mark must be a no-op")
	}
	if o.PaymentStatus != PaymentStatusDepositPaid || o.Deposit.PaymentIntentID != "pi_dep" {
		t.Fatalf("unexpected order: %+v", o)
	}

	if !o.MarkBalancePaid("pi_bal", now) {
		t.Fatalf("balance mark must change state")
	}
	if o.PaymentStatus != PaymentStatusPaid || !o.FullyPaid() {
		t.Fatalf("expected fully paid order: %+v", o)
	}
}

func TestOrder_BalanceBeforeDeposit(t *testing.T) {
	var o Order
	o.SetAmount(decimal.NewFromInt(1000))
	o.MarkBalancePaid("pi_bal", time.Now())
	if o.FullyPaid() || o.PaymentStatus != PaymentStatusUnpaid {
		t.Fatalf("balance alone must not settle the order: %+v", o)
	}
}

func TestOrderMetadata_Description(t *testing.T) {
	if got := ManualPurchaseMetadata("off-1", "Site vitrine").Description(); got != "Site vitrine" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := FromQuoteMetadata("q-1", "DEVIS-2026-00001").Description(); got != "Devis DEVIS-2026-00001" {
		t.Fatalf("unexpected description %q", got)
	}
}
