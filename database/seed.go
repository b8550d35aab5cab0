package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/wildeats-cart/models"
	"gorm.io/gorm"
)

// SeedDemo fills an empty catalog with a few campus shops. It does nothing
// when any shop already exists and reports whether it wrote anything.
func SeedDemo(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.Shop{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	shops := []models.Shop{
		{
			Name:     "JHS Canteen",
			Location: "Junior High Building",
			Status:   models.ShopStatusActive,
			IsOpen:   true,
			MenuItems: []models.MenuItem{
				{
					Name:        "Chicken Adobo",
					Description: "Braised chicken in soy and vinegar, served with rice",
					Price:       decimal.RequireFromString("50.00"),
					IsAvailable: true,
					Addons: []models.MenuItemAddon{
						{Name: "Extra rice", Price: decimal.RequireFromString("10.00")},
						{Name: "Fried egg", Price: decimal.RequireFromString("5.00")},
					},
				},
				{
					Name:        "Pancit Canton",
					Price:       decimal.RequireFromString("35.00"),
					IsAvailable: true,
				},
			},
		},
		{
			Name:     "Main Canteen Drinks",
			Location: "Main Canteen",
			Status:   models.ShopStatusActive,
			IsOpen:   true,
			MenuItems: []models.MenuItem{
				{
					Name:        "Iced Coffee",
					Price:       decimal.RequireFromString("20.00"),
					IsAvailable: true,
					Variants: []models.MenuItemVariant{
						{Name: "Regular", AdditionalPrice: decimal.Zero},
						{Name: "Large", AdditionalPrice: decimal.RequireFromString("20.00")},
					},
					Addons: []models.MenuItemAddon{
						{Name: "Extra shot", Price: decimal.RequireFromString("10.00")},
						{Name: "Pearls", Price: decimal.RequireFromString("5.00")},
					},
				},
				{
					Name:        "Fruit Shake",
					Price:       decimal.RequireFromString("45.00"),
					IsAvailable: true,
					Flavors: []models.MenuItemFlavor{
						{Name: "Mango"},
						{Name: "Strawberry"},
						{Name: "Avocado"},
					},
				},
			},
		},
		{
			Name:     "Night Owl Snacks",
			Location: "Library Annex",
			Status:   models.ShopStatusActive,
			IsOpen:   false,
			MenuItems: []models.MenuItem{
				{Name: "Turon", Price: decimal.RequireFromString("15.00"), IsAvailable: true},
			},
		},
	}

	if err := db.Create(&shops).Error; err != nil {
		return false, fmt.Errorf("seed demo catalog: %w", err)
	}
	return true, nil
}
