// Package billing derives money totals for a service order from its part and
// labor lines. The same Calculator backs the order detail and the printed
// invoice so both always agree.
package billing

import (
	"github.com/shopspring/decimal"

	"appliance-service-backend/internal/model"
)

// DefaultTaxRate is the VAT rate applied when none is configured.
var DefaultTaxRate = decimal.RequireFromString("0.16")

// Breakdown is the read-only cost summary of one order.
type Breakdown struct {
	LaborTotal decimal.Decimal `json:"labor_total"`
	PartsTotal decimal.Decimal `json:"parts_total"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// Rounded returns the breakdown with every amount rounded to cents. Total is
// recomputed from the rounded subtotal and tax so the printed figures add up.
func (b Breakdown) Rounded() Breakdown {
	r := Breakdown{
		LaborTotal: b.LaborTotal.Round(2),
		PartsTotal: b.PartsTotal.Round(2),
		Subtotal:   b.Subtotal.Round(2),
		TaxRate:    b.TaxRate,
		Tax:        b.Tax.Round(2),
	}
	r.Total = r.Subtotal.Add(r.Tax)
	return r
}

// Calculator computes breakdowns at a fixed tax rate.
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator returns a Calculator for rate. A negative rate falls back to
// DefaultTaxRate.
func NewCalculator(rate decimal.Decimal) *Calculator {
	if rate.IsNegative() {
		rate = DefaultTaxRate
	}
	return &Calculator{taxRate: rate}
}

func (c *Calculator) TaxRate() decimal.Decimal { return c.taxRate }

// Compute sums the lines of one order. Lines are assumed validated
// (positive quantities, hours, prices and rates); empty input yields zeros.
//
// Total is Subtotal + Tax. With exact decimal arithmetic this is identical to
// Subtotal × (1 + rate).
func (c *Calculator) Compute(parts []model.ServicePart, labor []model.ServiceLabor) Breakdown {
	partsTotal := decimal.Zero
	for _, p := range parts {
		partsTotal = partsTotal.Add(PartSubtotal(p))
	}
	laborTotal := decimal.Zero
	for _, l := range labor {
		laborTotal = laborTotal.Add(LaborSubtotal(l))
	}

	subtotal := laborTotal.Add(partsTotal)
	tax := subtotal.Mul(c.taxRate)
	return Breakdown{
		LaborTotal: laborTotal,
		PartsTotal: partsTotal,
		Subtotal:   subtotal,
		TaxRate:    c.taxRate,
		Tax:        tax,
		Total:      subtotal.Add(tax),
	}
}

// PartSubtotal is quantity × unit price.
func PartSubtotal(p model.ServicePart) decimal.Decimal {
	return p.Quantity.Mul(p.UnitPrice)
}

// LaborSubtotal is hours × rate.
func LaborSubtotal(l model.ServiceLabor) decimal.Decimal {
	return l.Hours.Mul(l.Rate)
}
