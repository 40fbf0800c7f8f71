package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/frooos9199/q8fruits-api/controllers/user"
	"github.com/frooos9199/q8fruits-api/middleware"
)

func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	{
		// Public
		users.POST("/register", userControllers.Register(db))
		users.POST("/login", userControllers.Login(db))

		// Profile (JWT-protected)
		me := users.Group("/me")
		me.Use(middleware.ValidateToken)
		{
			me.GET("", userControllers.GetUser(db))
			me.PUT("", userControllers.UpdateUser(db))
			me.POST("/addresses", userControllers.AddAddress(db))
			me.DELETE("/addresses/:id", userControllers.DeleteAddress(db))
		}

		// Admin (API-key-protected)
		users.GET("", middleware.ValidateAPIKey, userControllers.GetAllUsers(db))
		users.DELETE("/:email", middleware.ValidateAPIKey, userControllers.DeleteUser(db))
	}
}
