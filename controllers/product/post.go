package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

type UnitInput struct {
	LabelEN   string          `json:"label_en" binding:"required"`
	LabelAR   string          `json:"label_ar" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	IsDefault bool            `json:"is_default"`
}

type CreateProductInput struct {
	NameEN        string      `json:"name_en" binding:"required"`
	NameAR        string      `json:"name_ar" binding:"required"`
	DescriptionEN string      `json:"description_en"`
	DescriptionAR string      `json:"description_ar"`
	CategoryID    uint        `json:"category_id" binding:"required"`
	Units         []UnitInput `json:"units" binding:"required,min=1,dive"`
	Images        []string    `json:"images"`
	Tags          []string    `json:"tags"`
	Stock         int         `json:"stock"`
	IsPublished   *bool       `json:"is_published"`
}

// validateUnits enforces the exactly-one-default invariant and
// non-negative prices at the storage boundary, not just in the client.
func validateUnits(units []UnitInput) string {
	defaults := 0
	for _, u := range units {
		if u.IsDefault {
			defaults++
		}
		if u.Price.IsNegative() {
			return "unit price must not be negative"
		}
	}
	if defaults != 1 {
		return "exactly one unit must be marked default"
	}
	return ""
}

// CreateProduct creates a product with its units, images and tags.
// The id is minted server-side.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		if msg := validateUnits(input.Units); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "category does not exist"})
			return
		}

		published := true
		if input.IsPublished != nil {
			published = *input.IsPublished
		}

		product := models.Product{
			NameEN:        input.NameEN,
			NameAR:        input.NameAR,
			DescriptionEN: input.DescriptionEN,
			DescriptionAR: input.DescriptionAR,
			CategoryID:    input.CategoryID,
			Stock:         input.Stock,
			IsPublished:   published,
		}
		for i, u := range input.Units {
			product.Units = append(product.Units, models.ProductUnit{
				LabelEN:   u.LabelEN,
				LabelAR:   u.LabelAR,
				Price:     u.Price.Round(3),
				IsDefault: u.IsDefault,
				Position:  i,
			})
		}
		for i, url := range input.Images {
			product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
		}
		for _, label := range input.Tags {
			product.Tags = append(product.Tags, models.ProductTag{Label: label})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}
