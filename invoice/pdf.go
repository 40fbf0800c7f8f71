package invoice

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// PDF rasterizes the invoice to an A4 document. The built-in core
// fonts cannot shape Arabic script, so the PDF always uses the English
// product and unit names; the HTML invoice carries the bilingual view.
func PDF(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.OrderNumber, true)
	pdf.AddPage()

	// Header / brand block
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(46, 125, 50)
	pdf.CellFormat(0, 12, brandName, "", 1, "L", false, 0, "")
	pdf.SetTextColor(34, 34, 34)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Order: "+order.OrderNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+order.DisplayDate, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+string(order.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Payment: "+string(order.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, order.Customer.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, order.Customer.Phone, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, order.Customer.Address+", "+order.Customer.Area, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Line-item table
	widths := []float64{70, 20, 30, 30, 30}
	headers := []string{"Product", "Qty", "Unit", "Price", "Total"}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(241, 248, 233)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, it := range order.Items {
		line := pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
		pdf.CellFormat(widths[0], 8, it.NameEN, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, strconv.Itoa(it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, it.UnitLabelEN, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, pricing.Format(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, pricing.Format(pricing.LineTotal(line)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals block, recomputed from line items
	totals := Totals(order)
	pdf.Ln(4)
	writeTotal := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, value, "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", pricing.Format(totals.Subtotal), false)
	writeTotal("Delivery", pricing.Format(totals.Delivery), false)
	writeTotal("Grand Total", pricing.Format(totals.Total), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

