package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/frooos9199/q8fruits-api/errs"
	"github.com/frooos9199/q8fruits-api/invoice"
)

// GET /api/orders/:id/invoice — the HTML invoice. ?lang=ar flips the
// layout to right-to-left; default is the language the order was
// placed in.
func GetInvoiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("id"))
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		lang := c.DefaultQuery("lang", order.Language)
		html, err := invoice.Render(order, lang)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to render invoice"})
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, html)
	}
}

// GET /api/orders/:id/invoice.pdf — downloadable PDF; the filename
// embeds the order number.
func GetInvoicePDFHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("id"))
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		pdf, err := invoice.PDF(order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to render invoice PDF"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+invoice.Filename(order, "pdf"))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

type EmailInvoiceRequest struct {
	Email string `json:"email"`
}

// POST /api/orders/:id/invoice/email — best-effort: the order is
// already durable, so a failure here is reported, never rolled back.
func EmailInvoiceHandler(db *gorm.DB, mailer invoice.Mailer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("id"))
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		var req EmailInvoiceRequest
		_ = c.ShouldBindJSON(&req)
		address := req.Email
		if address == "" {
			address = order.Customer.Email
		}
		if address == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no email address on order"})
			return
		}

		if err := invoice.EmailTo(mailer, order, address); err != nil {
			log.WithField("order_number", order.OrderNumber).WithError(err).Warn("Invoice email failed")
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /api/orders/:id/invoice/whatsapp — wa.me deep link with the
// invoice summary. ?phone overrides the customer's number.
func WhatsAppInvoiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("id"))
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		phone := c.DefaultQuery("phone", order.Customer.Phone)
		link := invoice.WhatsAppLink(order, phone)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"link": link}})
	}
}
