package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

type UpdateProductInput struct {
	NameEN        *string      `json:"name_en"`
	NameAR        *string      `json:"name_ar"`
	DescriptionEN *string      `json:"description_en"`
	DescriptionAR *string      `json:"description_ar"`
	CategoryID    *uint        `json:"category_id"`
	Units         []UnitInput  `json:"units"`
	Images        []string     `json:"images"`
	Tags          []string     `json:"tags"`
	Stock         *int         `json:"stock"`
	IsPublished   *bool        `json:"is_published"`
}

// UpdateProduct applies a partial update. Units, images and tags are
// replaced wholesale when present in the payload.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.Preload("Units").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		if input.Units != nil {
			if msg := validateUnits(input.Units); msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
				return
			}
		}

		if input.NameEN != nil {
			product.NameEN = *input.NameEN
		}
		if input.NameAR != nil {
			product.NameAR = *input.NameAR
		}
		if input.DescriptionEN != nil {
			product.DescriptionEN = *input.DescriptionEN
		}
		if input.DescriptionAR != nil {
			product.DescriptionAR = *input.DescriptionAR
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "category does not exist"})
				return
			}
			product.CategoryID = *input.CategoryID
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.IsPublished != nil {
			product.IsPublished = *input.IsPublished
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.Units != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductUnit{}).Error; err != nil {
					return err
				}
				product.Units = nil
				for i, u := range input.Units {
					product.Units = append(product.Units, models.ProductUnit{
						ProductID: product.ID,
						LabelEN:   u.LabelEN,
						LabelAR:   u.LabelAR,
						Price:     u.Price.Round(3),
						IsDefault: u.IsDefault,
						Position:  i,
					})
				}
			}
			if input.Images != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
					return err
				}
				product.Images = nil
				for i, url := range input.Images {
					product.Images = append(product.Images, models.ProductImage{ProductID: product.ID, URL: url, Position: i})
				}
			}
			if input.Tags != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductTag{}).Error; err != nil {
					return err
				}
				product.Tags = nil
				for _, label := range input.Tags {
					product.Tags = append(product.Tags, models.ProductTag{ProductID: product.ID, Label: label})
				}
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
