// Package checkout assembles immutable orders from cart snapshots and
// customer input. It has no side effects; callers persist the result.
package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frooos9199/q8fruits-api/errs"
	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// Line is one cart line flattened for order building. Prices come from
// the server-side catalog read, never from the client.
type Line struct {
	ProductID   uint
	UnitID      uint
	NameEN      string
	NameAR      string
	UnitLabelEN string
	UnitLabelAR string
	UnitPrice   decimal.Decimal
	Quantity    int
}

const (
	displayLayoutEN = "Jan 2, 2006 3:04 PM"
	displayLayoutAR = "02/01/2006 03:04"
)

// DisplayDate formats a timestamp for the active UI language. The
// result is presentation-only; chronological sorting always uses the
// underlying time.Time.
func DisplayDate(t time.Time, lang string) string {
	if lang == "ar" {
		return t.Format(displayLayoutAR)
	}
	return t.Format(displayLayoutEN)
}

// BuildOrder validates the checkout fields, mints identifiers and
// assembles the order record. All missing required fields are reported
// together in a single ValidationError before any identifier is spent.
func BuildOrder(lines []Line, info models.CustomerInfo, deliveryPrice decimal.Decimal, method models.PaymentMethod, lang string) (*models.Order, error) {
	var missing []string
	if info.Name == "" {
		missing = append(missing, "name")
	}
	if info.Phone == "" {
		missing = append(missing, "phone")
	}
	if info.Address == "" {
		missing = append(missing, "address")
	}
	if info.Area == "" {
		missing = append(missing, "area")
	}
	if len(lines) == 0 {
		missing = append(missing, "items")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			missing = append(missing, "quantity")
			break
		}
	}
	if len(missing) > 0 {
		return nil, &errs.ValidationError{Fields: missing}
	}

	if lang != "ar" {
		lang = "en"
	}

	items := make([]models.OrderItem, 0, len(lines))
	priceLines := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID:   l.ProductID,
			UnitID:      l.UnitID,
			NameEN:      l.NameEN,
			NameAR:      l.NameAR,
			UnitLabelEN: l.UnitLabelEN,
			UnitLabelAR: l.UnitLabelAR,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
		priceLines = append(priceLines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}

	totals := pricing.Compute(priceLines, deliveryPrice)
	now := time.Now()

	return &models.Order{
		ID:            uuid.NewString(),
		OrderNumber:   NewOrderNumber(now),
		CustomerEmail: info.Email,
		Customer:      info,
		Items:         items,
		Subtotal:      totals.Subtotal,
		DeliveryPrice: totals.Delivery,
		Total:         totals.Total,
		PaymentMethod: method,
		Status:        models.OrderStatusPending,
		Language:      lang,
		DisplayDate:   DisplayDate(now, lang),
		CreatedAt:     now,
	}, nil
}
