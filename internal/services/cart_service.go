package services

import (
	"errors"
	"fmt"

	"cardapio/internal/models"
	"cardapio/internal/repository"
)

// CartStore is the session-scoped persistence port for carts. The Redis
// client implements it in production; tests use an in-memory fake.
type CartStore interface {
	GetCart(sessionID string) (*models.Cart, error)
	SaveCart(sessionID string, cart *models.Cart) error
	DeleteCart(sessionID string) error
}

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductUnavailable   = errors.New("product is not available")
	ErrAdditionalNotFound   = errors.New("additional not found")
	ErrAdditionalNotAllowed = errors.New("additional not allowed for this product")
	ErrAdditionalQuantity   = errors.New("invalid additional quantity")
)

// ExtraSelection identifies a chosen extra by id and quantity. Name and price
// are snapshotted from the catalog at selection time.
type ExtraSelection struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CartView is what the cart display renders: the lines plus the derived
// aggregates.
type CartView struct {
	Items         []models.LineItem `json:"items"`
	Total         float64           `json:"total"`
	ItemCount     int               `json:"item_count"`
	EstimatedTime int               `json:"estimated_time"`
}

type CartService interface {
	Get(sessionID string) (*CartView, error)
	AddItem(sessionID, productID string, extras []ExtraSelection, notes string) (*CartView, error)
	QuickAdd(sessionID, productID string) (*CartView, error)
	SetQuantity(sessionID, productID string, quantity int, extras []ExtraSelection, notes string) (*CartView, error)
	RemoveItem(sessionID, productID string, extras []ExtraSelection, notes string) (*CartView, error)
	Clear(sessionID string) error
}

type cartService struct {
	store          CartStore
	productRepo    repository.ProductRepository
	additionalRepo repository.AdditionalRepository
}

func NewCartService(store CartStore, productRepo repository.ProductRepository, additionalRepo repository.AdditionalRepository) CartService {
	return &cartService{store: store, productRepo: productRepo, additionalRepo: additionalRepo}
}

func (s *cartService) Get(sessionID string) (*CartView, error) {
	cart, err := s.store.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

func (s *cartService) AddItem(sessionID, productID string, extras []ExtraSelection, notes string) (*CartView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !product.Available {
		return nil, ErrProductUnavailable
	}

	selected, err := s.snapshotExtras(product, extras)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart.AddLine(*product, selected, notes)

	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

func (s *cartService) QuickAdd(sessionID, productID string) (*CartView, error) {
	return s.AddItem(sessionID, productID, nil, "")
}

func (s *cartService) SetQuantity(sessionID, productID string, quantity int, extras []ExtraSelection, notes string) (*CartView, error) {
	cart, err := s.store.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity, notes, identityExtras(extras))

	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

func (s *cartService) RemoveItem(sessionID, productID string, extras []ExtraSelection, notes string) (*CartView, error) {
	cart, err := s.store.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(productID, notes, identityExtras(extras))

	if err := s.store.SaveCart(sessionID, cart); err != nil {
		return nil, err
	}
	return viewOf(cart), nil
}

func (s *cartService) Clear(sessionID string) error {
	return s.store.DeleteCart(sessionID)
}

// snapshotExtras resolves each selection against the catalog and captures
// name and price by value, keeping the caller's selection order.
func (s *cartService) snapshotExtras(product *models.Product, extras []ExtraSelection) ([]models.SelectedExtra, error) {
	if len(extras) == 0 {
		return nil, nil
	}

	selected := make([]models.SelectedExtra, 0, len(extras))
	for _, sel := range extras {
		quantity := sel.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: %d", ErrAdditionalQuantity, quantity)
		}

		additional, err := s.additionalRepo.GetByID(sel.ID)
		if err != nil {
			return nil, ErrAdditionalNotFound
		}
		if !additional.Available {
			return nil, fmt.Errorf("%w: %s", ErrAdditionalNotFound, additional.Name)
		}
		if !product.AllowsAdditionalCategory(additional.Category) {
			return nil, fmt.Errorf("%w: %s", ErrAdditionalNotAllowed, additional.Name)
		}
		if additional.MaxQuantity > 0 && quantity > additional.MaxQuantity {
			return nil, fmt.Errorf("%w: %s limited to %d", ErrAdditionalQuantity, additional.Name, additional.MaxQuantity)
		}

		selected = append(selected, models.SelectedExtra{
			ID:       additional.ID,
			Name:     additional.Name,
			Price:    additional.Price,
			Quantity: quantity,
		})
	}
	return selected, nil
}

// identityExtras builds the identity key for remove/update lookups; only ids
// and quantities take part in line identity.
func identityExtras(extras []ExtraSelection) []models.SelectedExtra {
	if len(extras) == 0 {
		return nil
	}
	key := make([]models.SelectedExtra, 0, len(extras))
	for _, sel := range extras {
		quantity := sel.Quantity
		if quantity == 0 {
			quantity = 1
		}
		key = append(key, models.SelectedExtra{ID: sel.ID, Quantity: quantity})
	}
	return key
}

func viewOf(cart *models.Cart) *CartView {
	return &CartView{
		Items:         cart.Items,
		Total:         cart.Total(),
		ItemCount:     cart.ItemCount(),
		EstimatedTime: cart.EstimatedTime(),
	}
}
