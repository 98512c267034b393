package repository

import (
	"time"

	"cardapio/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByCustomerID(customerID string) ([]models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	GetActiveByComanda(comandaNumber string) ([]models.Order, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	Update(order *models.Order) error
	GetAll() ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCustomerID(customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status = ?", status).Order("created_at").Find(&orders).Error
	return orders, err
}

// GetActiveByComanda returns the open dine-in orders on a comanda, for the
// table tab check.
func (r *orderRepository) GetActiveByComanda(comandaNumber string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Where("delivery_type = ? AND comanda_number = ? AND status NOT IN ?",
			models.FulfillmentLocal, comandaNumber,
			[]models.OrderStatus{models.OrderCompleted, models.OrderCancelled}).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("created_at BETWEEN ? AND ?", startDate, endDate).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}
