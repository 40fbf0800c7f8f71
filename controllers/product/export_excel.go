package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// ExportProductsToExcel streams the full catalog as an xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Preload("Units").Preload("Tags").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "NameEN", "NameAR", "Category",
			"DefaultUnit", "DefaultPrice", "Units", "Stock",
			"Tags", "Published", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.NameEN)
			row.AddCell().SetValue(p.NameAR)
			row.AddCell().SetValue(p.Category.NameEN)

			if u := p.DefaultUnit(); u != nil {
				row.AddCell().SetValue(u.LabelEN)
				row.AddCell().SetValue(pricing.Format(u.Price))
			} else {
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
			}

			var units []string
			for _, u := range p.Units {
				units = append(units, u.LabelEN+"="+pricing.Format(u.Price))
			}
			row.AddCell().SetValue(strings.Join(units, ", "))
			row.AddCell().SetValue(p.Stock)

			var tags []string
			for _, t := range p.Tags {
				tags = append(tags, t.Label)
			}
			row.AddCell().SetValue(strings.Join(tags, ", "))
			row.AddCell().SetValue(p.IsPublished)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to write Excel file"})
			return
		}
	}
}
