package mapping

import "github.com/shopspring/decimal"

// minorUnitFactor converts between storefront decimal amounts and marketplace integer cents
var minorUnitFactor = decimal.NewFromInt(100)

// ToMinorUnits converts a storefront amount to marketplace minor units
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitFactor).Round(0).IntPart()
}

// FromMinorUnits converts marketplace minor units to a storefront amount string
func FromMinorUnits(minor decimal.Decimal) string {
	return minor.Div(minorUnitFactor).StringFixed(2)
}

// effectiveMultiplier returns the unit multiplier, treating zero as one
func effectiveMultiplier(m decimal.Decimal) decimal.Decimal {
	if m.Sign() <= 0 {
		return decimal.NewFromInt(1)
	}
	return m
}
