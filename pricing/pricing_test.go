package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

func TestComputeEmptyCart(t *testing.T) {
	totals := Compute(nil, d(t, "2.000"))
	if !totals.Subtotal.Equal(decimal.Zero) {
		t.Errorf("subtotal = %s, want 0", totals.Subtotal)
	}
	if Format(totals.Total) != "2.000" {
		t.Errorf("total = %s, want 2.000", Format(totals.Total))
	}
}

func TestComputeSingleLine(t *testing.T) {
	totals := Compute([]Line{{UnitPrice: d(t, "1.500"), Quantity: 2}}, d(t, "2.000"))
	if Format(totals.Subtotal) != "3.000" {
		t.Errorf("subtotal = %s, want 3.000", Format(totals.Subtotal))
	}
	if Format(totals.Total) != "5.000" {
		t.Errorf("total = %s, want 5.000", Format(totals.Total))
	}
}

// The concrete checkout scenario: 2 kg apples at 1.500 plus one bunch
// of bananas at 0.800 with 2.000 delivery.
func TestComputeAppleBananaScenario(t *testing.T) {
	lines := []Line{
		{UnitPrice: d(t, "1.500"), Quantity: 2},
		{UnitPrice: d(t, "0.800"), Quantity: 1},
	}
	totals := Compute(lines, d(t, "2.000"))

	if Format(totals.Subtotal) != "3.800" {
		t.Errorf("subtotal = %s, want 3.800", Format(totals.Subtotal))
	}
	if Format(totals.Delivery) != "2.000" {
		t.Errorf("delivery = %s, want 2.000", Format(totals.Delivery))
	}
	if Format(totals.Total) != "5.800" {
		t.Errorf("total = %s, want 5.800", Format(totals.Total))
	}
}

// total == subtotal + delivery and subtotal == Σ(price × qty) must
// hold exactly at 3 decimal places for many-line carts.
func TestTotalsInvariant(t *testing.T) {
	lines := []Line{
		{UnitPrice: d(t, "0.105"), Quantity: 3},
		{UnitPrice: d(t, "0.333"), Quantity: 7},
		{UnitPrice: d(t, "12.345"), Quantity: 1},
		{UnitPrice: d(t, "0.001"), Quantity: 999},
	}
	delivery := d(t, "1.250")
	totals := Compute(lines, delivery)

	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if !totals.Subtotal.Equal(sum.Round(Places)) {
		t.Errorf("subtotal = %s, want %s", totals.Subtotal, sum.Round(Places))
	}
	if !totals.Total.Equal(totals.Subtotal.Add(totals.Delivery)) {
		t.Errorf("total = %s, want subtotal+delivery = %s",
			totals.Total, totals.Subtotal.Add(totals.Delivery))
	}
}

func TestLineTotalRounding(t *testing.T) {
	got := LineTotal(Line{UnitPrice: d(t, "0.3335"), Quantity: 2})
	if Format(got) != "0.667" {
		t.Errorf("line total = %s, want 0.667", Format(got))
	}
}

func TestFormatFixedPrecision(t *testing.T) {
	if got := Format(d(t, "5.8")); got != "5.800" {
		t.Errorf("Format(5.8) = %s, want 5.800", got)
	}
	if got := Format(decimal.Zero); got != "0.000" {
		t.Errorf("Format(0) = %s, want 0.000", got)
	}
}
