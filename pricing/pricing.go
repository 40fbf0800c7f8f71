// Package pricing is the single source of truth for money math.
// Checkout, the order store aggregates and the invoice renderer all
// call Compute; nothing else in the codebase adds currency values.
package pricing

import "github.com/shopspring/decimal"

// Places is the KWD minor-unit precision. Every amount leaving this
// package is rounded to it.
const Places = 3

// Line is one product+unit+quantity selection.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals is the result of pricing a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns unit price × quantity, rounded.
func LineTotal(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(Places)
}

// Compute sums the line totals, adds the flat delivery price and
// returns the breakdown. Pure and deterministic.
func Compute(lines []Line, delivery decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}
	subtotal = subtotal.Round(Places)
	delivery = delivery.Round(Places)
	return Totals{
		Subtotal: subtotal,
		Delivery: delivery,
		Total:    subtotal.Add(delivery).Round(Places),
	}
}

// Format renders an amount with the fixed 3-decimal KWD precision, the
// only formatting used at display boundaries.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
