package models

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func kwd(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("bad seed price: " + s)
	}
	return d
}

// Seed populates the catalog and delivery settings when the tables are
// empty. Safe to call on every boot.
func Seed(db *gorm.DB, log *logrus.Logger) error {
	if err := seedDelivery(db); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []Category{
		{Slug: "fruits", NameEN: "Fruits", NameAR: "فواكه"},
		{Slug: "vegetables", NameEN: "Vegetables", NameAR: "خضروات"},
		{Slug: "leafy", NameEN: "Leafy Greens", NameAR: "ورقيات"},
		{Slug: "baskets", NameEN: "Baskets", NameAR: "سلال"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	bySlug := make(map[string]uint, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c.ID
	}

	products := []Product{
		{
			NameEN: "Red Apple", NameAR: "تفاح أحمر",
			CategoryID: bySlug["fruits"], Stock: 120,
			Units: []ProductUnit{
				{LabelEN: "kg", LabelAR: "كيلو", Price: kwd("1.500"), IsDefault: true, Position: 0},
				{LabelEN: "box", LabelAR: "صندوق", Price: kwd("6.750"), Position: 1},
			},
			Tags: []ProductTag{{Label: "fresh"}},
		},
		{
			NameEN: "Banana", NameAR: "موز",
			CategoryID: bySlug["fruits"], Stock: 200,
			Units: []ProductUnit{
				{LabelEN: "bunch", LabelAR: "قرط", Price: kwd("0.800"), IsDefault: true, Position: 0},
				{LabelEN: "kg", LabelAR: "كيلو", Price: kwd("0.650"), Position: 1},
			},
		},
		{
			NameEN: "Cucumber", NameAR: "خيار",
			CategoryID: bySlug["vegetables"], Stock: 80,
			Units: []ProductUnit{
				{LabelEN: "kg", LabelAR: "كيلو", Price: kwd("0.450"), IsDefault: true, Position: 0},
			},
		},
		{
			NameEN: "Tomato", NameAR: "طماطم",
			CategoryID: bySlug["vegetables"], Stock: 95,
			Units: []ProductUnit{
				{LabelEN: "kg", LabelAR: "كيلو", Price: kwd("0.350"), IsDefault: true, Position: 0},
				{LabelEN: "carton", LabelAR: "كرتون", Price: kwd("1.950"), Position: 1},
			},
		},
		{
			NameEN: "Mint", NameAR: "نعناع",
			CategoryID: bySlug["leafy"], Stock: 60,
			Units: []ProductUnit{
				{LabelEN: "bunch", LabelAR: "ربطة", Price: kwd("0.250"), IsDefault: true, Position: 0},
			},
		},
		{
			NameEN: "Family Fruit Basket", NameAR: "سلة فواكه عائلية",
			CategoryID: bySlug["baskets"], Stock: 15,
			Units: []ProductUnit{
				{LabelEN: "basket", LabelAR: "سلة", Price: kwd("7.500"), IsDefault: true, Position: 0},
			},
			Tags: []ProductTag{{Label: "bestseller"}},
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Infof("🌱 Seeded %d categories and %d products", len(categories), len(products))
	return nil
}

func seedDelivery(db *gorm.DB) error {
	var setting DeliverySetting
	if err := db.First(&setting, 1).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		setting = DeliverySetting{ID: 1, DefaultPrice: kwd("2.000")}
		if err := db.Create(&setting).Error; err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&DeliveryArea{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	areas := []DeliveryArea{
		{NameEN: "Kuwait City", NameAR: "مدينة الكويت", Position: 0},
		{NameEN: "Hawalli", NameAR: "حولي", Position: 1},
		{NameEN: "Salmiya", NameAR: "السالمية", Position: 2},
		{NameEN: "Farwaniya", NameAR: "الفروانية", Position: 3},
		{NameEN: "Jahra", NameAR: "الجهراء", Price: kwd("3.000"), HasPrice: true, Position: 4},
		{NameEN: "Ahmadi", NameAR: "الأحمدي", Price: kwd("3.000"), HasPrice: true, Position: 5},
		{NameEN: "Mubarak Al-Kabeer", NameAR: "مبارك الكبير", Position: 6},
	}
	return db.Create(&areas).Error
}
