package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.
			Preload("Category").
			Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			Preload("Tags").
			First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
