package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserEmail string     `gorm:"uniqueIndex" json:"user_email"`                 // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // Cascade delete items if cart is deleted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a snapshot of the product and selected unit at the time
// it was added. Catalog edits never retroactively change a cart line.
// Line identity for merging is the (ProductID, UnitID) pair.
type CartItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CartID       uint            `gorm:"index" json:"-"`
	ProductID    uint            `json:"product_id"`
	UnitID       uint            `json:"unit_id"`
	ProductEName string          `json:"product_ename"` // English name of the product
	ProductArName string         `json:"product_arname"` // Arabic name of the product
	ProductImage string          `json:"product_image"`
	UnitLabelEN  string          `json:"unit_label_en"`
	UnitLabelAR  string          `json:"unit_label_ar"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,3)" json:"unit_price"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"added_at"`
}
