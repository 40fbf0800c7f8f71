package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/frooos9199/q8fruits-api/controllers/product"
	"github.com/frooos9199/q8fruits-api/middleware"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		// Public storefront reads
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		// Admin catalog CRUD
		products.POST("", middleware.ValidateAPIKey, productcontroller.CreateProduct(db))
		products.PUT("/:id", middleware.ValidateAPIKey, productcontroller.UpdateProduct(db))
		products.DELETE("/:id", middleware.ValidateAPIKey, productcontroller.DeleteProduct(db))
		products.GET("/export/excel", middleware.ValidateAPIKey, productcontroller.ExportProductsToExcel(db))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", productcontroller.GetCategories(db))
		categories.POST("", middleware.ValidateAPIKey, productcontroller.CreateCategory(db))
	}
}
