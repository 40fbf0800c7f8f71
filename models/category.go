package models

// Category is an open registry, not a closed enum: admin-added
// categories must not require a code change.
type Category struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug   string `gorm:"unique;not null" json:"slug"`
	NameEN string `gorm:"unique;not null" json:"name_en"`
	NameAR string `gorm:"unique;not null" json:"name_ar"`
	Image  string `json:"image"`
}
