package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	CPF          string         `json:"cpf"`
	Phone        string         `json:"phone"`
	PhotoURL     string         `json:"photo_url"`
	PasswordHash string         `json:"-"`
	Address      *Address       `json:"address,omitempty" gorm:"serializer:json"`
	IsAdmin      bool           `json:"is_admin" gorm:"default:false"`
	Favorites    []string       `json:"favorites" gorm:"serializer:json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

// ToggleFavorite adds the product id to the favorites list when absent and
// removes it when present. A missing list is treated as empty.
func (c *Customer) ToggleFavorite(productID string) {
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	for i, id := range c.Favorites {
		if id == productID {
			c.Favorites = append(c.Favorites[:i], c.Favorites[i+1:]...)
			return
		}
	}
	c.Favorites = append(c.Favorites, productID)
}

func (c *Customer) IsFavorite(productID string) bool {
	for _, id := range c.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}
