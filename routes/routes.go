package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/invoice"
)

// SetupRoutes is the single entry-point that wires up every route
// group under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mailer invoice.Mailer, log *logrus.Logger) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	SetupProductRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, mailer, log)
	SetupUserRoutes(api, db)
	SetupSettingsRoutes(api, db)
}
