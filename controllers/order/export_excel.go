package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/invoice"
	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// ExportOrdersToExcel streams every order as an xlsx download for the
// admin dashboard. Money columns are recomputed from line items, the
// same path the invoices use.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "Date", "Customer", "Phone", "Area",
			"Items", "Subtotal", "Delivery", "Total",
			"Payment", "Status",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for i := range orders {
			o := &orders[i]
			totals := invoice.Totals(o)

			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(o.Customer.Name)
			row.AddCell().SetValue(o.Customer.Phone)
			row.AddCell().SetValue(o.Customer.Area)
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(pricing.Format(totals.Subtotal))
			row.AddCell().SetValue(pricing.Format(totals.Delivery))
			row.AddCell().SetValue(pricing.Format(totals.Total))
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(string(o.Status))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to write Excel file"})
			return
		}
	}
}
