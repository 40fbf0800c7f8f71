package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentMethod string

const (
	// Canonical order lifecycle. Transitions are admin-driven only;
	// there are no automatic transitions.
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by the store
	OrderStatusPreparing  OrderStatus = "preparing"  // Being picked and packed
	OrderStatusDelivering OrderStatus = "delivering" // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery

	// Payment methods are labels only; no processing happens here.
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodLink PaymentMethod = "link"
)

// statusTransitions is the externally-driven state machine: each status
// lists the statuses an admin may move the order to.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus maps a raw string to a canonical status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusConfirmed):
		return OrderStatusConfirmed, nil
	case string(OrderStatusPreparing):
		return OrderStatusPreparing, nil
	case string(OrderStatusDelivering):
		return OrderStatusDelivering, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// CanTransition reports whether an admin may move an order from one
// status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParsePaymentMethod maps a raw string to a payment method label.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(s) {
	case string(PaymentMethodCash):
		return PaymentMethodCash, nil
	case string(PaymentMethodLink):
		return PaymentMethodLink, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

type Order struct {
	ID            string          `gorm:"primaryKey" json:"id"`             // internal uuid
	OrderNumber   string          `gorm:"uniqueIndex" json:"order_number"`  // customer-facing, FK<millis>
	CustomerEmail string          `gorm:"index;not null" json:"customer_email"`
	Customer      CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customer_info"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,3)" json:"subtotal"`
	DeliveryPrice decimal.Decimal `gorm:"type:numeric(12,3)" json:"delivery_price"`
	Total         decimal.Decimal `gorm:"type:numeric(12,3)" json:"total"`
	PaymentMethod PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Language      string          `gorm:"type:VARCHAR(2)" json:"language"`
	DisplayDate   string          `json:"display_date"` // presentation only, never parsed back
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

// CustomerInfo is the checkout form snapshot embedded in the order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area"`
	Email   string `json:"email,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// OrderItem is an immutable flattened snapshot of a cart line,
// decoupled from the live product record.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index" json:"-"`
	ProductID   uint            `json:"product_id"`
	UnitID      uint            `json:"unit_id"`
	NameEN      string          `json:"name_en"`
	NameAR      string          `json:"name_ar"`
	UnitLabelEN string          `json:"unit_label_en"`
	UnitLabelAR string          `json:"unit_label_ar"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,3)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
}
