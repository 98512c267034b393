package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	CustomerID    string          `json:"customer_id" gorm:"index"`
	Items         []LineItem      `json:"items" gorm:"serializer:json"`
	Total         float64         `json:"total" gorm:"not null"`
	CustomerName  string          `json:"customer_name" gorm:"not null"`
	CustomerPhone string          `json:"customer_phone"`
	Address       *Address        `json:"address,omitempty" gorm:"serializer:json"`
	DeliveryType  FulfillmentType `json:"delivery_type" gorm:"not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"not null"`
	ChangeFor     *float64        `json:"change_for,omitempty"`
	Status        OrderStatus     `json:"status" gorm:"default:'pending'"`
	Notes         string          `json:"notes" gorm:"type:text"`
	TableNumber   string          `json:"table_number"`
	ComandaNumber string          `json:"comanda_number" gorm:"index"`
	EstimatedTime int             `json:"estimated_time"` // minutes
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "delivery"
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentLocal    FulfillmentType = "local" // dine-in, identified by comanda
)

func (t FulfillmentType) Valid() bool {
	switch t {
	case FulfillmentDelivery, FulfillmentPickup, FulfillmentLocal:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentPix    PaymentMethod = "pix"
	PaymentCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentDebit, PaymentPix, PaymentCash:
		return true
	}
	return false
}

// Label is the customer-facing payment method name used in order summaries.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCredit:
		return "Cartão de Crédito"
	case PaymentDebit:
		return "Cartão de Débito"
	case PaymentPix:
		return "PIX"
	case PaymentCash:
		return "Dinheiro"
	}
	return string(m)
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPreparing  OrderStatus = "preparing"
	OrderReady      OrderStatus = "ready"
	OrderDelivering OrderStatus = "delivering"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// statusRank orders the non-cancelled lifecycle:
// pending -> preparing -> ready -> delivering -> completed.
var statusRank = map[OrderStatus]int{
	OrderPending:    0,
	OrderPreparing:  1,
	OrderReady:      2,
	OrderDelivering: 3,
	OrderCompleted:  4,
}

func (s OrderStatus) Valid() bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

var ErrInvalidTransition = errors.New("invalid status transition")

// NextStatus validates a requested lifecycle move. The status may only move
// forward along the ordered lifecycle; cancelled is reachable from any
// non-terminal state; completed and cancelled accept no further transitions.
// Pickup and dine-in orders may skip delivering, so any forward move is legal.
func NextStatus(current, requested OrderStatus) (OrderStatus, error) {
	if !current.Valid() || !requested.Valid() {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
	}
	if current.Terminal() {
		return "", fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, current)
	}
	if requested == OrderCancelled {
		return OrderCancelled, nil
	}
	if statusRank[requested] <= statusRank[current] {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
	}
	return requested, nil
}

// Transition applies NextStatus to the order in place.
func (o *Order) Transition(requested OrderStatus) error {
	next, err := NextStatus(o.Status, requested)
	if err != nil {
		return err
	}
	o.Status = next
	return nil
}
