package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	orderControllers "github.com/frooos9199/q8fruits-api/controllers/order"
	"github.com/frooos9199/q8fruits-api/invoice"
	"github.com/frooos9199/q8fruits-api/middleware"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, mailer invoice.Mailer, log *logrus.Logger) {
	orders := api.Group("/orders")
	{
		// Checkout. OptionalToken lets a logged-in session supply the
		// customer email when the form leaves it blank.
		orders.POST("", middleware.OptionalToken, orderControllers.PlaceOrderHandler(db, log))

		// Admin views
		orders.GET("", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))
		orders.GET("/export/excel", middleware.ValidateAPIKey, orderControllers.ExportOrdersToExcel(db))
		orders.PUT("/:id/status", middleware.ValidateAPIKey, orderControllers.UpdateOrderStatusHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Consumer views
		orders.GET("/user/:email", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))

		// Invoices
		orders.GET("/:id/invoice", orderControllers.GetInvoiceHandler(db))
		orders.GET("/:id/invoice.pdf", orderControllers.GetInvoicePDFHandler(db))
		orders.POST("/:id/invoice/email", orderControllers.EmailInvoiceHandler(db, mailer, log))
		orders.GET("/:id/invoice/whatsapp", orderControllers.WhatsAppInvoiceHandler(db))
	}
}
