package settingsControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

type DeliveryAreaInput struct {
	NameEN string           `json:"name_en" binding:"required"`
	NameAR string           `json:"name_ar" binding:"required"`
	Price  *decimal.Decimal `json:"price"`
}

type UpdateDeliveryInput struct {
	DefaultPrice *decimal.Decimal    `json:"default_price"`
	Areas        []DeliveryAreaInput `json:"areas"`
}

// GET /api/settings/delivery
func GetDeliverySettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var setting models.DeliverySetting
		if err := db.First(&setting, 1).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch delivery settings"})
			return
		}
		var areas []models.DeliveryArea
		if err := db.Order("position ASC").Find(&areas).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch delivery areas"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"default_price": setting.DefaultPrice,
			"areas":         areas,
		}})
	}
}

// PUT /api/settings/delivery — admin only. Areas are replaced
// wholesale when present in the payload.
func UpdateDeliverySettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateDeliveryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}
		if input.DefaultPrice != nil && input.DefaultPrice.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "default_price must not be negative"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.DefaultPrice != nil {
				if err := tx.Model(&models.DeliverySetting{}).Where("id = ?", 1).
					Update("default_price", input.DefaultPrice.Round(3)).Error; err != nil {
					return err
				}
			}
			if input.Areas != nil {
				if err := tx.Where("1 = 1").Delete(&models.DeliveryArea{}).Error; err != nil {
					return err
				}
				for i, a := range input.Areas {
					area := models.DeliveryArea{
						NameEN:   a.NameEN,
						NameAR:   a.NameAR,
						Position: i,
					}
					if a.Price != nil {
						area.Price = a.Price.Round(3)
						area.HasPrice = true
					}
					if err := tx.Create(&area).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update delivery settings"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
