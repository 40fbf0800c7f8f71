package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

type CategoryInput struct {
	Slug   string `json:"slug" binding:"required"`
	NameEN string `json:"name_en" binding:"required"`
	NameAR string `json:"name_ar" binding:"required"`
	Image  string `json:"image"`
}

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("id ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
	}
}

// CreateCategory adds an entry to the open category registry. New
// categories require no code change anywhere else.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		category := models.Category{
			Slug:   strings.ToLower(strings.TrimSpace(input.Slug)),
			NameEN: input.NameEN,
			NameAR: input.NameAR,
			Image:  input.Image,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "category already exists"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
	}
}
