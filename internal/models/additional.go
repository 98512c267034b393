package models

import (
	"time"

	"gorm.io/gorm"
)

type Additional struct {
	ID          string             `json:"id" gorm:"primaryKey"`
	Name        string             `json:"name" gorm:"not null"`
	Price       float64            `json:"price" gorm:"not null"`
	Category    AdditionalCategory `json:"category" gorm:"not null"`
	Available   bool               `json:"available" gorm:"default:true"`
	MaxQuantity int                `json:"max_quantity"` // 0 means no limit per line item
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `json:"deleted_at" gorm:"index"`
}

// AdditionalCategory is the closed set of extras categories a product may
// declare on its AdditionalCategories list.
type AdditionalCategory string

const (
	AdditionalFruits   AdditionalCategory = "fruits"
	AdditionalToppings AdditionalCategory = "toppings"
	AdditionalSyrups   AdditionalCategory = "syrups"
	AdditionalOthers   AdditionalCategory = "others"
)

func AdditionalCategories() []AdditionalCategory {
	return []AdditionalCategory{AdditionalFruits, AdditionalToppings, AdditionalSyrups, AdditionalOthers}
}

func (c AdditionalCategory) Valid() bool {
	for _, known := range AdditionalCategories() {
		if c == known {
			return true
		}
	}
	return false
}
