package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

// GetProducts lists the catalog with optional search, category and
// price filters. The storefront variant only sees published products;
// admin passes ?include_unpublished=true.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "name_en", "name_ar", "stock":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{}).
			Preload("Category").
			Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			Preload("Tags")

		if c.Query("include_unpublished") != "true" {
			query = query.Where("is_published = ?", true)
		}

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"name_en ILIKE ? OR description_en ILIKE ? OR name_ar ILIKE ? OR description_ar ILIKE ?",
				likePattern, likePattern, likePattern, likePattern,
			)
		}

		// Price filters apply to the default unit's price.
		priceJoin := false
		joinDefault := func() {
			if !priceJoin {
				query = query.Joins("JOIN product_units pu ON pu.product_id = products.id AND pu.is_default = ?", true)
				priceJoin = true
			}
		}
		if minPriceStr != "" {
			if mp, err := decimal.NewFromString(minPriceStr); err == nil {
				joinDefault()
				query = query.Where("pu.price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := decimal.NewFromString(maxPriceStr); err == nil {
				joinDefault()
				query = query.Where("pu.price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid max_price"})
				return
			}
		}

		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.Where("category_id = ?", uint(cid))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category_id"})
				return
			}
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}
