package payroll

import (
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	pensionRate   = decimal.RequireFromString("0.042")
	localTaxRate  = decimal.RequireFromString("0.01")
	taxableShare  = decimal.RequireFromString("0.7")
	surchargeRate = decimal.RequireFromString("0.10")
	unionDuesRate = decimal.RequireFromString("0.01")
	broadcastFee  = decimal.NewFromInt(1950)
	communalTax   = decimal.NewFromInt(270)
	monthsPerYear = decimal.NewFromInt(12)
)

var (
	incomeTaxBrackets = []taxBracket{
		{upTo: decimal.NewFromInt(2_000_000), floor: decimal.Zero, rate: decimal.RequireFromString("0.10"), base: decimal.Zero},
		{upTo: decimal.NewFromInt(3_000_000), floor: decimal.NewFromInt(2_000_000), rate: decimal.RequireFromString("0.15"), base: decimal.NewFromInt(200_000)},
		{upTo: decimal.NewFromInt(5_000_000), floor: decimal.NewFromInt(3_000_000), rate: decimal.RequireFromString("0.25"), base: decimal.NewFromInt(350_000)},
	}

	incomeTaxTopBracket = taxBracket{floor: decimal.NewFromInt(5_000_000), rate: decimal.RequireFromString("0.35"), base: decimal.NewFromInt(850_000)}
)

type taxBracket struct {
	upTo  decimal.Decimal
	floor decimal.Decimal
	rate  decimal.Decimal
	base  decimal.Decimal
}

func (b taxBracket) apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(b.floor).Mul(b.rate).Add(b.base)
}

// AnnualIncomeTax applies the progressive bracket table to an annual taxable amount.
func AnnualIncomeTax(annual decimal.Decimal) decimal.Decimal {
	if !annual.IsPositive() {
		return decimal.Zero
	}
	for _, b := range incomeTaxBrackets {
		if annual.LessThanOrEqual(b.upTo) {
			return b.apply(annual)
		}
	}
	return incomeTaxTopBracket.apply(annual)
}

// deductions computes statutory lines from gross. penalty is the absence
// penalty to withhold, zero when it is only reported.
func deductions(gross decimal.Decimal, e payroll.Earnings, penalty decimal.Decimal) payroll.Deductions {
	afterTransport := gross.Sub(e.TransportBonus)

	d := payroll.Deductions{
		Pension:             roundMoney(afterTransport.Sub(e.HousingBonus).Mul(pensionRate)),
		LocalDevelopmentTax: roundMoney(afterTransport.Mul(localTaxRate)),
		BroadcastFee:        broadcastFee,
		UnionDues:           roundMoney(e.ProratedBase.Mul(unionDuesRate)),
		CommunalTax:         communalTax,
		AbsencePenalty:      penalty,
	}

	taxable := afterTransport.Sub(d.Pension).Mul(taxableShare).Mul(monthsPerYear)
	d.IncomeTax = roundMoney(AnnualIncomeTax(taxable).Div(monthsPerYear))
	d.IncomeTaxSurcharge = roundMoney(d.IncomeTax.Mul(surchargeRate))

	d.Total = decimal.Sum(
		d.Pension,
		d.LocalDevelopmentTax,
		d.IncomeTax,
		d.IncomeTaxSurcharge,
		d.BroadcastFee,
		d.UnionDues,
		d.CommunalTax,
		d.AbsencePenalty,
	)
	return d
}
