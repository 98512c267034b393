package services

import (
	"log"
	"time"

	"cardapio/internal/models"
	"cardapio/internal/rabbitmq"
	"cardapio/internal/repository"
)

type OrderService interface {
	GetOrderByID(id string) (*models.Order, error)
	GetOrdersByCustomer(customerID string) ([]models.Order, error)
	GetOrdersByStatus(status models.OrderStatus) ([]models.Order, error)
	GetActiveByComanda(comandaNumber string) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateStatus(id string, requested models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	publisher EventPublisher
}

func NewOrderService(orderRepo repository.OrderRepository, publisher EventPublisher) OrderService {
	return &orderService{orderRepo: orderRepo, publisher: publisher}
}

func (s *orderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrdersByCustomer(customerID string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerID(customerID)
}

func (s *orderService) GetOrdersByStatus(status models.OrderStatus) ([]models.Order, error) {
	return s.orderRepo.GetByStatus(status)
}

func (s *orderService) GetActiveByComanda(comandaNumber string) ([]models.Order, error) {
	return s.orderRepo.GetActiveByComanda(comandaNumber)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateStatus is the fulfillment side of the lifecycle. Legality is decided
// by the transition function on the order model; the service never invents
// transitions of its own.
func (s *orderService) UpdateStatus(id string, requested models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := order.Transition(requested); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := rabbitmq.OrderEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Type:       "status_updated",
			Status:     string(order.Status),
			Total:      order.Total,
			Occurred:   time.Now(),
		}
		if err := s.publisher.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish status event for %s: %v", order.ID, err)
		}
	}

	return order, nil
}
