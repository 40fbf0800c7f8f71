package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	UnitID    uint `json:"unit_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	UnitID    uint `json:"unit_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func userEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return "", false
	}
	return v.(string), true
}

// fetchOrCreateCart returns the user's single cart, creating it lazily.
func fetchOrCreateCart(db *gorm.DB, email string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_email = ?", email).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserEmail: email}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// POST /api/cart — adds a line, merging duplicate (product, unit)
// pairs by summing quantities so the cart never holds two lines for
// the same selection.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := userEmail(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		// Snapshot the product and unit from the catalog.
		var product models.Product
		if err := db.Preload("Units").Preload("Images").First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"success": false, "error": errMsg})
			return
		}
		var unit *models.ProductUnit
		for i := range product.Units {
			if product.Units[i].ID == input.UnitID {
				unit = &product.Units[i]
				break
			}
		}
		if unit == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unit does not exist for this product"})
			return
		}

		cart, err := fetchOrCreateCart(db, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cart"})
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0].URL
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ? AND unit_id = ?", cart.CartID, input.ProductID, input.UnitID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			newItem := models.CartItem{
				CartID:        cart.CartID,
				ProductID:     product.ID,
				UnitID:        unit.ID,
				ProductEName:  product.NameEN,
				ProductArName: product.NameAR,
				ProductImage:  image,
				UnitLabelEN:   unit.LabelEN,
				UnitLabelAR:   unit.LabelAR,
				UnitPrice:     unit.Price,
				Quantity:      input.Quantity,
				AddedAt:       time.Now(),
			}
			if err := db.Create(&newItem).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": newItem})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cart item"})
			return
		}

		// Merge: same line, summed quantity.
		item.Quantity += input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

// PUT /api/cart — sets a line's quantity. Zero or negative removes the
// line entirely.
func SetCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := userEmail(c)
		if !ok {
			return
		}

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User cart not found"})
			return
		}

		if input.Quantity <= 0 {
			result := db.Where("cart_id = ? AND product_id = ? AND unit_id = ?", cart.CartID, input.ProductID, input.UnitID).Delete(&models.CartItem{})
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to remove item"})
				return
			}
			if result.RowsAffected == 0 {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ? AND unit_id = ?", cart.CartID, input.ProductID, input.UnitID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart item not found"})
			return
		}
		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

// DELETE /api/cart/:product_id/:unit_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := userEmail(c)
		if !ok {
			return
		}
		productID := c.Param("product_id")
		unitID := c.Param("unit_id")

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ? AND unit_id = ?", cart.CartID, productID, unitID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DELETE /api/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := userEmail(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Where("user_email = ?", email).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /api/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := userEmail(c)
		if !ok {
			return
		}

		cart, err := fetchOrCreateCart(db, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cart"})
			return
		}

		var items []models.CartItem
		if err := db.Where("cart_id = ?", cart.CartID).Order("added_at ASC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}
