package entities

import "github.com/shopspring/decimal"

// Money is always carried as a decimal rounded to the currency minor unit (2 places).
var (
	DepositRate      = decimal.RequireFromString("0.40")
	TaxRate          = decimal.RequireFromString("0.20")
	PaymentTolerance = decimal.RequireFromString("0.01")
)

const DepositPercentage = 40

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SplitDeposit returns the 40% deposit and the remaining balance.
// deposit + balance == total holds exactly for any total.
func SplitDeposit(total decimal.Decimal) (deposit, balance decimal.Decimal) {
	total = RoundMoney(total)
	deposit = RoundMoney(total.Mul(DepositRate))
	balance = total.Sub(deposit)
	return deposit, balance
}

// TaxFor returns the VAT owed on amount.
func TaxFor(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(TaxRate))
}

// ToMinorUnits converts an amount to provider minor units (cents).
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func FromMinorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// Covers reports whether received pays required, accepting a shortfall of at most one cent.
func Covers(received, required decimal.Decimal) bool {
	return received.Add(PaymentTolerance).GreaterThanOrEqual(required)
}
