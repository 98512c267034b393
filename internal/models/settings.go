package models

import "time"

// Settings is the single-row store and WhatsApp configuration managed from
// the admin dashboard.
type Settings struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	WhatsAppNumber    string        `json:"whatsapp_number"`
	MessageTemplate   string        `json:"message_template" gorm:"type:text"`
	PickupAddress     PickupAddress `json:"pickup_address" gorm:"serializer:json"`
	StoreSubtitle     string        `json:"store_subtitle"`
	ShowProductImages bool          `json:"show_product_images" gorm:"default:true"`
	InstagramURL      string        `json:"instagram_url"`
	BusinessHours     BusinessHours `json:"business_hours" gorm:"serializer:json"`
	SpecialDates      []SpecialDate `json:"special_dates" gorm:"serializer:json"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type PickupAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
}

type BusinessHours map[string]DayHours

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

type SpecialDate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Open        string `json:"open"`
	Close       string `json:"close"`
	Closed      bool   `json:"closed,omitempty"`
}
