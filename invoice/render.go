// Package invoice turns a finished order into a printable document and
// pushes it over best-effort side channels (email, WhatsApp link).
//
// Totals shown on an invoice are always recomputed from the order's
// line items through the pricing package. The persisted total is never
// trusted for display.
package invoice

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

const brandName = "Q8 Fruits"
const brandNameAR = "فواكه الكويت"

type lineView struct {
	Name      string
	UnitLabel string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type view struct {
	Brand       string
	Dir         string // "rtl" for Arabic, "ltr" otherwise
	Lang        string
	OrderNumber string
	Date        string
	Status      string
	Payment     string
	Customer    models.CustomerInfo
	Lines       []lineView
	Subtotal    string
	Delivery    string
	Total       string
	Labels      map[string]string
}

var labelsEN = map[string]string{
	"invoice": "Invoice", "order": "Order", "date": "Date",
	"status": "Status", "payment": "Payment", "customer": "Customer",
	"phone": "Phone", "address": "Address", "area": "Area",
	"product": "Product", "qty": "Qty", "unit": "Unit",
	"price": "Price", "total": "Total", "subtotal": "Subtotal",
	"delivery": "Delivery", "grand_total": "Grand Total",
}

var labelsAR = map[string]string{
	"invoice": "فاتورة", "order": "الطلب", "date": "التاريخ",
	"status": "الحالة", "payment": "الدفع", "customer": "العميل",
	"phone": "الهاتف", "address": "العنوان", "area": "المنطقة",
	"product": "المنتج", "qty": "الكمية", "unit": "الوحدة",
	"price": "السعر", "total": "الإجمالي", "subtotal": "المجموع",
	"delivery": "التوصيل", "grand_total": "الإجمالي النهائي",
}

var tpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="utf-8">
<title>{{.Labels.invoice}} {{.OrderNumber}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
.header { border-bottom: 2px solid #2e7d32; padding-bottom: 12px; margin-bottom: 16px; }
.brand { font-size: 24px; font-weight: bold; color: #2e7d32; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: start; }
th { background: #f1f8e9; }
.totals td { border: none; }
.totals .grand { font-weight: bold; font-size: 18px; }
</style>
</head>
<body>
<div class="header">
  <div class="brand">{{.Brand}}</div>
  <div>{{.Labels.order}}: {{.OrderNumber}}</div>
  <div>{{.Labels.date}}: {{.Date}}</div>
  <div>{{.Labels.status}}: {{.Status}}</div>
  <div>{{.Labels.payment}}: {{.Payment}}</div>
</div>
<div class="customer">
  <div>{{.Labels.customer}}: {{.Customer.Name}}</div>
  <div>{{.Labels.phone}}: {{.Customer.Phone}}</div>
  <div>{{.Labels.address}}: {{.Customer.Address}}</div>
  <div>{{.Labels.area}}: {{.Customer.Area}}</div>
</div>
<table>
  <tr>
    <th>{{.Labels.product}}</th><th>{{.Labels.qty}}</th><th>{{.Labels.unit}}</th>
    <th>{{.Labels.price}}</th><th>{{.Labels.total}}</th>
  </tr>
  {{range .Lines}}
  <tr>
    <td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitLabel}}</td>
    <td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td>
  </tr>
  {{end}}
</table>
<table class="totals">
  <tr><td>{{.Labels.subtotal}}</td><td>{{.Subtotal}}</td></tr>
  <tr><td>{{.Labels.delivery}}</td><td>{{.Delivery}}</td></tr>
  <tr class="grand"><td>{{.Labels.grand_total}}</td><td>{{.Total}}</td></tr>
</table>
</body>
</html>
`))

// Totals recomputes the invoice money block from the order's line
// items. This is the drift guard: even if the stored total diverged,
// the invoice stays internally consistent.
func Totals(order *models.Order) pricing.Totals {
	lines := make([]pricing.Line, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	return pricing.Compute(lines, order.DeliveryPrice)
}

func buildView(order *models.Order, lang string) view {
	labels := labelsEN
	dir := "ltr"
	brand := brandName
	if lang == "ar" {
		labels = labelsAR
		dir = "rtl"
		brand = brandNameAR
	} else {
		lang = "en"
	}

	lines := make([]lineView, 0, len(order.Items))
	for _, it := range order.Items {
		name, unit := it.NameEN, it.UnitLabelEN
		if lang == "ar" {
			name, unit = it.NameAR, it.UnitLabelAR
		}
		lines = append(lines, lineView{
			Name:      name,
			UnitLabel: unit,
			Quantity:  it.Quantity,
			UnitPrice: pricing.Format(it.UnitPrice),
			LineTotal: pricing.Format(pricing.LineTotal(pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})),
		})
	}

	totals := Totals(order)
	return view{
		Brand:       brand,
		Dir:         dir,
		Lang:        lang,
		OrderNumber: order.OrderNumber,
		Date:        order.DisplayDate,
		Status:      string(order.Status),
		Payment:     string(order.PaymentMethod),
		Customer:    order.Customer,
		Lines:       lines,
		Subtotal:    pricing.Format(totals.Subtotal),
		Delivery:    pricing.Format(totals.Delivery),
		Total:       pricing.Format(totals.Total),
		Labels:      labels,
	}
}

// Render produces the fixed-layout HTML invoice. Layout direction
// follows the language.
func Render(order *models.Order, lang string) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, buildView(order, lang)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Filename returns the download name for an invoice document. The
// order number keeps repeated downloads of different orders distinct.
func Filename(order *models.Order, ext string) string {
	return fmt.Sprintf("invoice-%s.%s", order.OrderNumber, ext)
}
