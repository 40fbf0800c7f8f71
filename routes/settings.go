package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	settingsControllers "github.com/frooos9199/q8fruits-api/controllers/settings"
	"github.com/frooos9199/q8fruits-api/middleware"
)

func SetupSettingsRoutes(api *gin.RouterGroup, db *gorm.DB) {
	settings := api.Group("/settings")
	{
		settings.GET("/delivery", settingsControllers.GetDeliverySettings(db))
		settings.PUT("/delivery", middleware.ValidateAPIKey, settingsControllers.UpdateDeliverySettings(db))
	}
}
