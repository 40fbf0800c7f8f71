package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/frooos9199/q8fruits-api/controllers/cart"
	"github.com/frooos9199/q8fruits-api/middleware"
)

func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetUserCart(db))
		cart.POST("", cartControllers.AddCartItem(db))
		cart.PUT("", cartControllers.SetCartItemQuantity(db))
		cart.DELETE("/:product_id/:unit_id", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearUserCart(db))
	}
}
