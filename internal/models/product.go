package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID                   string               `json:"id" gorm:"primaryKey"`
	Name                 string               `json:"name" gorm:"not null"`
	Description          string               `json:"description" gorm:"type:text"`
	Price                float64              `json:"price" gorm:"not null"`
	Category             Category             `json:"category" gorm:"not null"`
	ImageURL             string               `json:"image_url"`
	Available            bool                 `json:"available" gorm:"default:true"`
	PreparationTime      int                  `json:"preparation_time"` // minutes
	Ingredients          []string             `json:"ingredients" gorm:"serializer:json"`
	Allergens            []string             `json:"allergens" gorm:"serializer:json"`
	Vegetarian           bool                 `json:"vegetarian"`
	Vegan                bool                 `json:"vegan"`
	GlutenFree           bool                 `json:"gluten_free"`
	AllowAdditionals     bool                 `json:"allow_additionals"`
	AdditionalCategories []AdditionalCategory `json:"additional_categories" gorm:"serializer:json"`
	Featured             bool                 `json:"featured"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
	DeletedAt            gorm.DeletedAt       `json:"deleted_at" gorm:"index"`
}

type Category string

const (
	CategoryLanches Category = "Lanches"
	CategoryPorcoes Category = "Porções"
	CategoryPizzas  Category = "Pizzas"
	CategoryBebidas Category = "Bebidas"
	CategoryCombos  Category = "Combos"
)

func Categories() []Category {
	return []Category{CategoryLanches, CategoryPorcoes, CategoryPizzas, CategoryBebidas, CategoryCombos}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// AllowsAdditionalCategory reports whether extras of the given category may be
// attached to this product.
func (p *Product) AllowsAdditionalCategory(category AdditionalCategory) bool {
	if !p.AllowAdditionals {
		return false
	}
	for _, allowed := range p.AdditionalCategories {
		if allowed == category {
			return true
		}
	}
	return false
}
