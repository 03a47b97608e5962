package payroll

import (
	"testing"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnnualIncomeTax_Brackets(t *testing.T) {
	tests := []struct {
		annual string
		want   string
	}{
		{"0", "0"},
		{"-1000", "0"},
		{"1000000", "100000"},
		{"2000000", "200000"},
		{"2500000", "275000"},
		{"3000000", "350000"},
		{"4000000", "600000"},
		{"5000000", "850000"},
		{"6000000", "1200000"},
	}
	for _, tt := range tests {
		got := AnnualIncomeTax(decimal.RequireFromString(tt.annual))
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "tax(%s) = %s, want %s", tt.annual, got, tt.want)
	}
}

func TestAnnualIncomeTax_ContinuousAtBoundaries(t *testing.T) {
	eps := decimal.RequireFromString("0.0001")
	for _, boundary := range []int64{2_000_000, 3_000_000, 5_000_000} {
		at := AnnualIncomeTax(decimal.NewFromInt(boundary))
		above := AnnualIncomeTax(decimal.NewFromInt(boundary).Add(eps))
		diff := above.Sub(at)
		assert.True(t, diff.IsPositive(), "boundary %d", boundary)
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.001")), "boundary %d jump %s", boundary, diff)
	}
}

func TestDeductions_Lines(t *testing.T) {
	e := payroll.Earnings{
		ProratedBase:   decimal.NewFromInt(100000),
		TransportBonus: decimal.NewFromInt(10000),
		HousingBonus:   decimal.NewFromInt(10000),
	}
	gross := decimal.NewFromInt(120000)

	d := deductions(gross, e, decimal.Zero)

	// (120000 - 10000 - 10000) x 4.2%
	assertMoney(t, 4200, d.Pension)
	// (120000 - 10000) x 1%
	assertMoney(t, 1100, d.LocalDevelopmentTax)
	// (110000 - 4200) x 0.7 x 12 = 888720 -> 88872 / 12 = 7406
	assertMoney(t, 7406, d.IncomeTax)
	assertMoney(t, 741, d.IncomeTaxSurcharge)
	assertMoney(t, 1000, d.UnionDues)
	assertMoney(t, 1950+270, d.BroadcastFee.Add(d.CommunalTax))
	assertMoney(t, 4200+1100+7406+741+1950+1000+270, d.Total)
}

func TestDeductions_PenaltyIncludedInTotal(t *testing.T) {
	e := payroll.Earnings{ProratedBase: decimal.NewFromInt(100000)}
	without := deductions(decimal.NewFromInt(100000), e, decimal.Zero)
	with := deductions(decimal.NewFromInt(100000), e, decimal.NewFromInt(3000))

	assert.True(t, with.Total.Sub(without.Total).Equal(decimal.NewFromInt(3000)))
}

func TestEarnings_ZeroWorkableDaysYieldsZero(t *testing.T) {
	e := earnings(decimal.NewFromInt(300000), day(2024, 1, 1), day(2025, 3, 25), payroll.AttendanceStats{}, decimal.Zero, payroll.DefaultSettings())
	assert.True(t, e.ProratedBase.IsZero())
	assert.True(t, e.TransportBonus.IsZero())
	assert.True(t, e.HousingBonus.IsZero())
}
