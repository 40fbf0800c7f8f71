package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frooos9199/q8fruits-api/checkout"
	"github.com/frooos9199/q8fruits-api/errs"
	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// -------- Request Structs --------

type OrderLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	UnitID    uint `json:"unit_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Customer      models.CustomerInfo `json:"customer_info" binding:"required"`
	Items         []OrderLineRequest  `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string              `json:"payment_method" binding:"required"`
	Language      string              `json:"lang"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Core Logic --------

// mergeLines collapses duplicate (product, unit) pairs by summing
// their quantities, preserving first-seen order.
func mergeLines(items []OrderLineRequest) []OrderLineRequest {
	type key struct{ p, u uint }
	index := make(map[key]int)
	merged := make([]OrderLineRequest, 0, len(items))
	for _, it := range items {
		k := key{it.ProductID, it.UnitID}
		if i, ok := index[k]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[k] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// deliveryPriceFor resolves the delivery fee for an area: the area's
// configured price when one exists, else the flat default.
func deliveryPriceFor(db *gorm.DB, area string) (decimal.Decimal, error) {
	var setting models.DeliverySetting
	if err := db.First(&setting, 1).Error; err != nil {
		return decimal.Zero, &errs.TransientIOError{Op: "read delivery settings", Err: err}
	}

	var da models.DeliveryArea
	err := db.Where("name_en = ? OR name_ar = ?", area, area).First(&da).Error
	if err == nil && da.HasPrice {
		return da.Price, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, &errs.TransientIOError{Op: "read delivery area", Err: err}
	}
	return setting.DefaultPrice, nil
}

// PlaceOrder is the checkout pipeline: re-read the catalog for true
// prices, build the order, persist it, refresh the customer's
// aggregates and clear their cart — all in one transaction.
//
// Client-supplied totals are never trusted; only product, unit and
// quantity are taken from the request.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, &errs.ValidationError{Fields: []string{"payment_method"}}
	}
	if req.Customer.Email == "" {
		return nil, &errs.ValidationError{Fields: []string{"email"}}
	}

	lines := make([]checkout.Line, 0, len(req.Items))
	for _, it := range mergeLines(req.Items) {
		var product models.Product
		if err := db.Preload("Units").First(&product, "id = ? AND is_published = ?", it.ProductID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &errs.NotFoundError{Resource: "product", ID: strconv.FormatUint(uint64(it.ProductID), 10)}
			}
			return nil, &errs.TransientIOError{Op: "read product", Err: err}
		}
		var unit *models.ProductUnit
		for i := range product.Units {
			if product.Units[i].ID == it.UnitID {
				unit = &product.Units[i]
				break
			}
		}
		if unit == nil {
			return nil, &errs.NotFoundError{Resource: "unit", ID: strconv.FormatUint(uint64(it.UnitID), 10)}
		}
		lines = append(lines, checkout.Line{
			ProductID:   product.ID,
			UnitID:      unit.ID,
			NameEN:      product.NameEN,
			NameAR:      product.NameAR,
			UnitLabelEN: unit.LabelEN,
			UnitLabelAR: unit.LabelAR,
			UnitPrice:   unit.Price,
			Quantity:    it.Quantity,
		})
	}

	deliveryPrice, err := deliveryPriceFor(db, req.Customer.Area)
	if err != nil {
		return nil, err
	}

	order, err := checkout.BuildOrder(lines, req.Customer, deliveryPrice, method, req.Language)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return &errs.TransientIOError{Op: "create order", Err: err}
		}
		if err := refreshCustomerAggregates(tx, order.CustomerEmail, req.Customer); err != nil {
			return err
		}
		// Completing an order clears the server-side cart.
		var cart models.Cart
		if err := tx.Where("user_email = ?", order.CustomerEmail).First(&cart).Error; err == nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return &errs.TransientIOError{Op: "clear cart", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// refreshCustomerAggregates upserts the customer row and recomputes
// order count and total spent as a fold over the full order history.
// Recompute-from-scratch avoids the drift incremental updates suffer.
// The row is locked for the duration of the enclosing transaction so
// concurrent checkouts for the same customer serialize here.
func refreshCustomerAggregates(tx *gorm.DB, email string, info models.CustomerInfo) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		// SELECT ... FOR UPDATE; sqlite (tests) serializes writes anyway.
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user models.User
	err := q.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: email, Name: info.Name, Phone: info.Phone}
		if err := tx.Create(&user).Error; err != nil {
			return &errs.TransientIOError{Op: "create customer", Err: err}
		}
	} else if err != nil {
		return &errs.TransientIOError{Op: "read customer", Err: err}
	}

	// Checkout field edits flow back into the profile.
	if info.Name != "" {
		user.Name = info.Name
	}
	if info.Phone != "" {
		user.Phone = info.Phone
	}

	var orders []models.Order
	if err := tx.Preload("Items").Where("customer_email = ?", email).Find(&orders).Error; err != nil {
		return &errs.TransientIOError{Op: "read order history", Err: err}
	}

	total := decimal.Zero
	for _, o := range orders {
		priceLines := make([]pricing.Line, 0, len(o.Items))
		for _, it := range o.Items {
			priceLines = append(priceLines, pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		}
		total = total.Add(pricing.Compute(priceLines, o.DeliveryPrice).Total)
	}

	user.OrderCount = len(orders)
	user.TotalSpent = total.Round(pricing.Places)
	if err := tx.Save(&user).Error; err != nil {
		return &errs.TransientIOError{Op: "update customer aggregates", Err: err}
	}
	return nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		// A logged-in session supplies the email when the form left it
		// blank.
		if req.Customer.Email == "" {
			if v, exists := c.Get("user_email"); exists {
				req.Customer.Email = v.(string)
			}
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}

		log.WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"customer":     order.CustomerEmail,
			"total":        pricing.Format(order.Total),
		}).Info("Order placed")

		broadcastNewOrder(order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

// GET /api/orders — admin view, most recent first. Sorting uses the
// real timestamp, never the display-date string.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/orders/user/:email
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("customer_email = ?", email).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
	}
}

// GET /api/orders/:id — accepts the internal id or the order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		order, err := findOrder(db, id)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

func findOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	if err := db.
		Preload("Items").
		Where("id = ? OR order_number = ?", id, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.NotFoundError{Resource: "order", ID: id}
		}
		return nil, &errs.TransientIOError{Op: "read order", Err: err}
	}
	return &order, nil
}

// PUT /api/orders/:id/status — the only mutation an order permits
// after creation. Moves are checked against the status state machine.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		order, ferr := findOrder(db, id)
		if ferr != nil {
			c.JSON(errs.HTTPStatus(ferr), gin.H{"success": false, "error": ferr.Error()})
			return
		}

		if !models.CanTransition(order.Status, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid status transition"})
			return
		}

		// Update the status column and nothing else.
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
