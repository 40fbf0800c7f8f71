package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	NameEN        string `gorm:"not null" json:"name_en"` // English Name
	NameAR        string `gorm:"not null" json:"name_ar"` // Arabic Name
	DescriptionEN string `json:"description_en"`
	DescriptionAR string `json:"description_ar"`
	CategoryID    uint           `json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Units         []ProductUnit  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"units"`
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Tags          []ProductTag   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"tags"`
	Stock         int            `json:"stock"` // advisory only, never decremented at checkout
	IsPublished   bool           `gorm:"default:true" json:"is_published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductUnit is one purchasable measure of a product (kg, piece,
// bunch...) with its own price. Exactly one unit per product is the
// default; the product controllers enforce that at create and update.
type ProductUnit struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint            `gorm:"index" json:"-"`
	LabelEN   string          `gorm:"not null" json:"label_en"`
	LabelAR   string          `gorm:"not null" json:"label_ar"`
	Price     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"price"`
	IsDefault bool            `json:"is_default"`
	Position  int             `json:"position"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `json:"position"`
}

// ProductTag is a free-text, locale-agnostic label.
type ProductTag struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"-"`
	Label     string `gorm:"not null" json:"label"`
}

// DefaultUnit returns the unit flagged as default, falling back to the
// first unit when the flag is missing (legacy rows).
func (p *Product) DefaultUnit() *ProductUnit {
	for i := range p.Units {
		if p.Units[i].IsDefault {
			return &p.Units[i]
		}
	}
	if len(p.Units) > 0 {
		return &p.Units[0]
	}
	return nil
}
