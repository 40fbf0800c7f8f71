package checkout

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frooos9199/q8fruits-api/errs"
	"github.com/frooos9199/q8fruits-api/models"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

func sampleLines(t *testing.T) []Line {
	return []Line{
		{
			ProductID: 1, UnitID: 1,
			NameEN: "Red Apple", NameAR: "تفاح أحمر",
			UnitLabelEN: "kg", UnitLabelAR: "كيلو",
			UnitPrice: d(t, "1.500"), Quantity: 2,
		},
		{
			ProductID: 2, UnitID: 3,
			NameEN: "Banana", NameAR: "موز",
			UnitLabelEN: "bunch", UnitLabelAR: "قرط",
			UnitPrice: d(t, "0.800"), Quantity: 1,
		},
	}
}

func sampleInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Ahmed",
		Phone:   "99887766",
		Address: "Street 1",
		Area:    "Hawalli",
		Email:   "ahmed@example.com",
	}
}

func TestBuildOrderScenario(t *testing.T) {
	order, err := BuildOrder(sampleLines(t), sampleInfo(), d(t, "2.000"), models.PaymentMethodCash, "en")
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}

	if order.Subtotal.StringFixed(3) != "3.800" {
		t.Errorf("subtotal = %s, want 3.800", order.Subtotal)
	}
	if order.Total.StringFixed(3) != "5.800" {
		t.Errorf("total = %s, want 5.800", order.Total)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.ID == "" {
		t.Error("internal id is empty")
	}
	if !strings.HasPrefix(order.OrderNumber, "FK") || len(order.OrderNumber) <= 2 {
		t.Errorf("order number %q is not FK-prefixed", order.OrderNumber)
	}
	if order.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
	if order.DisplayDate == "" {
		t.Error("display date not stamped")
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if order.Items[0].NameEN != "Red Apple" || order.Items[0].Quantity != 2 {
		t.Errorf("first item snapshot wrong: %+v", order.Items[0])
	}
}

func TestBuildOrderMissingFields(t *testing.T) {
	info := models.CustomerInfo{Email: "x@example.com"}
	_, err := BuildOrder(sampleLines(t), info, d(t, "2.000"), models.PaymentMethodCash, "en")
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*errs.ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *errs.ValidationError", err)
	}

	want := []string{"address", "area", "name", "phone"}
	got := append([]string(nil), ve.Fields...)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestBuildOrderEmptyCart(t *testing.T) {
	_, err := BuildOrder(nil, sampleInfo(), d(t, "2.000"), models.PaymentMethodCash, "en")
	ve, ok := err.(*errs.ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *errs.ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "items" {
		t.Errorf("fields = %v, want [items]", ve.Fields)
	}
}

func TestBuildOrderRejectsNonPositiveQuantity(t *testing.T) {
	lines := sampleLines(t)
	lines[0].Quantity = 0
	if _, err := BuildOrder(lines, sampleInfo(), d(t, "2.000"), models.PaymentMethodCash, "en"); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
}

// Two orders minted within the same millisecond must still get
// distinct order numbers.
func TestOrderNumberClockCollision(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber(now)
		if seen[n] {
			t.Fatalf("duplicate order number %s", n)
		}
		seen[n] = true
	}
}

func TestDisplayDateFollowsLanguage(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
	en := DisplayDate(ts, "en")
	ar := DisplayDate(ts, "ar")
	if en == ar {
		t.Errorf("en and ar display dates identical: %s", en)
	}
	if !strings.Contains(en, "Mar") {
		t.Errorf("en date %q missing month name", en)
	}
	if !strings.Contains(ar, "07/03/2025") {
		t.Errorf("ar date %q not day-first", ar)
	}
}

func TestBuildOrderDefaultsLanguage(t *testing.T) {
	order, err := BuildOrder(sampleLines(t), sampleInfo(), d(t, "2.000"), models.PaymentMethodLink, "xx")
	if err != nil {
		t.Fatalf("BuildOrder: %v", err)
	}
	if order.Language != "en" {
		t.Errorf("language = %q, want en fallback", order.Language)
	}
}
