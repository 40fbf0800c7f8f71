package models

import "github.com/shopspring/decimal"

// DeliverySetting is a single-row table (ID always 1) holding the flat
// default delivery price applied when an area has no price of its own.
type DeliverySetting struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	DefaultPrice decimal.Decimal `gorm:"type:numeric(12,3)" json:"default_price"`
}

// DeliveryArea is one administrative region customers can order to.
// Price overrides the flat default when set greater than zero.
type DeliveryArea struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	NameEN   string          `gorm:"unique;not null" json:"name_en"`
	NameAR   string          `gorm:"unique;not null" json:"name_ar"`
	Price    decimal.Decimal `gorm:"type:numeric(12,3)" json:"price"`
	HasPrice bool            `json:"has_price"`
	Position int             `json:"position"`
}
