package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitDeposit(t *testing.T) {
	cases := []struct {
		total   string
		deposit string
		balance string
	}{
		{total: "1000", deposit: "400", balance: "600"},
		{total: "999.99", deposit: "400", balance: "599.99"},
		{total: "0.01", deposit: "0", balance: "0.01"},
		{total: "123.45", deposit: "49.38", balance: "74.07"},
	}

	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			deposit, balance := SplitDeposit(decimal.RequireFromString(tc.total))
			if !deposit.Equal(decimal.RequireFromString(tc.deposit)) {
				t.Fatalf("expected deposit %s, got %s", tc.deposit, deposit)
			}
			if !balance.Equal(decimal.RequireFromString(tc.balance)) {
				t.Fatalf("expected balance %s, got %s", tc.balance, balance)
			}
		})
	}
}

func TestSplitDeposit_SumsToTotal(t *testing.T) {
	for cents := int64(1); cents < 200000; cents += 37 {
		total := FromMinorUnits(cents)
		deposit, balance := SplitDeposit(total)
		if !deposit.Add(balance).Equal(total) {
			t.Fatalf("deposit %s + balance %s != total %s", deposit, balance, total)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	if got := ToMinorUnits(decimal.RequireFromString("400")); got != 40000 {
		t.Fatalf("expected 40000, got %d", got)
	}
	if got := FromMinorUnits(40000); !got.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected 400, got %s", got)
	}
}

func TestCovers(t *testing.T) {
	required := decimal.RequireFromString("400")
	if !Covers(decimal.RequireFromString("399.99"), required) {
		t.Fatalf("one cent shortfall must be accepted")
	}
	if Covers(decimal.RequireFromString("399.98"), required) {
		t.Fatalf("two cents shortfall must be rejected")
	}
	if !Covers(decimal.RequireFromString("1000"), required) {
		t.Fatalf("overpayment must be accepted")
	}
}

func TestTaxFor(t *testing.T) {
	if got := TaxFor(decimal.NewFromInt(1000)); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected 200, got %s", got)
	}
}
