package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is keyed by email, the de facto primary key everywhere the
// storefront refers to a customer.
type User struct {
	Email        string  `gorm:"primaryKey" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Addresses    []UserAddress `gorm:"foreignKey:UserEmail;constraint:OnDelete:CASCADE" json:"addresses"`
	Cart         Cart          `gorm:"foreignKey:UserEmail;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order       `gorm:"foreignKey:CustomerEmail;constraint:OnDelete:CASCADE" json:"orders,omitempty"`

	// Denormalized aggregates, recomputed from the full order history
	// on every append rather than maintained incrementally.
	OrderCount int             `json:"order_count"`
	TotalSpent decimal.Decimal `gorm:"type:numeric(12,3)" json:"total_spent"`

	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAddress is a labeled saved address; one per user is the default.
type UserAddress struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail string `gorm:"index" json:"-"`
	Label     string `json:"label"`
	Address   string `json:"address"`
	Area      string `json:"area"`
	IsDefault bool   `json:"is_default"`
}
