package invoice

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

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

func sampleOrder(t *testing.T) *models.Order {
	return &models.Order{
		ID:          "11111111-2222-3333-4444-555555555555",
		OrderNumber: "FK1756400000000",
		Customer: models.CustomerInfo{
			Name: "Ahmed", Phone: "99887766",
			Address: "Street 1", Area: "Hawalli",
			Email: "ahmed@example.com",
		},
		CustomerEmail: "ahmed@example.com",
		Items: []models.OrderItem{
			{NameEN: "Red Apple", NameAR: "تفاح أحمر", UnitLabelEN: "kg", UnitLabelAR: "كيلو", UnitPrice: d(t, "1.500"), Quantity: 2},
			{NameEN: "Banana", NameAR: "موز", UnitLabelEN: "bunch", UnitLabelAR: "قرط", UnitPrice: d(t, "0.800"), Quantity: 1},
		},
		Subtotal:      d(t, "3.800"),
		DeliveryPrice: d(t, "2.000"),
		Total:         d(t, "5.800"),
		PaymentMethod: models.PaymentMethodCash,
		Status:        models.OrderStatusPending,
		Language:      "en",
		DisplayDate:   "Aug 28, 2025 3:04 PM",
		CreatedAt:     time.Now(),
	}
}

func TestRenderShowsRecomputedTotals(t *testing.T) {
	html, err := Render(sampleOrder(t), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"3.800", "2.000", "5.800", "Red Apple", "FK1756400000000"} {
		if !strings.Contains(html, want) {
			t.Errorf("invoice missing %q", want)
		}
	}
}

// Regression guard: even when the persisted total drifted, the invoice
// recomputes from line items and matches what the order should cost.
func TestRenderIgnoresDriftedStoredTotal(t *testing.T) {
	order := sampleOrder(t)
	order.Total = d(t, "99.999")
	order.Subtotal = d(t, "42.000")

	html, err := Render(order, "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "99.999") || strings.Contains(html, "42.000") {
		t.Error("invoice rendered the drifted stored totals")
	}
	if !strings.Contains(html, "5.800") {
		t.Error("invoice missing recomputed total 5.800")
	}
}

func TestRenderArabicIsRTL(t *testing.T) {
	html, err := Render(sampleOrder(t), "ar")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, `dir="rtl"`) {
		t.Error("arabic invoice not right-to-left")
	}
	if !strings.Contains(html, "تفاح أحمر") {
		t.Error("arabic invoice missing arabic product name")
	}
}

func TestFilenameEmbedsOrderNumber(t *testing.T) {
	got := Filename(sampleOrder(t), "pdf")
	if got != "invoice-FK1756400000000.pdf" {
		t.Errorf("Filename = %q", got)
	}
}

func TestPDFOutput(t *testing.T) {
	pdf, err := PDF(sampleOrder(t))
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink(sampleOrder(t), "+965 9988 7766")
	if !strings.HasPrefix(link, "https://wa.me/96599887766?text=") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "5.800") {
		t.Error("link text missing total")
	}
}

type fakeMailer struct {
	to       string
	subject  string
	filename string
	fail     bool
}

func (f *fakeMailer) Send(to, subject, htmlBody string, attachment []byte, filename string) error {
	if f.fail {
		return &failErr{}
	}
	f.to, f.subject, f.filename = to, subject, filename
	return nil
}

type failErr struct{}

func (*failErr) Error() string { return "smtp down" }

func TestEmailToSendsInvoice(t *testing.T) {
	m := &fakeMailer{}
	order := sampleOrder(t)
	if err := EmailTo(m, order, "ahmed@example.com"); err != nil {
		t.Fatalf("EmailTo: %v", err)
	}
	if m.to != "ahmed@example.com" {
		t.Errorf("sent to %q", m.to)
	}
	if !strings.Contains(m.subject, order.OrderNumber) {
		t.Errorf("subject %q missing order number", m.subject)
	}
	if m.filename != "invoice-FK1756400000000.pdf" {
		t.Errorf("attachment filename %q", m.filename)
	}
}

func TestEmailToWrapsFailure(t *testing.T) {
	err := EmailTo(&fakeMailer{fail: true}, sampleOrder(t), "a@b.c")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("error %q does not identify the channel", err)
	}
}
