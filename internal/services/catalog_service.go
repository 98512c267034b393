package services

import (
	"errors"

	"cardapio/internal/models"
	"cardapio/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidCategory = errors.New("invalid category")

type CatalogService interface {
	ListProducts(category models.Category, onlyAvailable bool) ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	ListAdditionals() ([]models.Additional, error)
	AdditionalsForProduct(productID string) ([]models.Additional, error)

	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id string) error
	CreateAdditional(additional *models.Additional) error
	UpdateAdditional(additional *models.Additional) error
	DeleteAdditional(id string) error
}

type catalogService struct {
	productRepo    repository.ProductRepository
	additionalRepo repository.AdditionalRepository
}

func NewCatalogService(productRepo repository.ProductRepository, additionalRepo repository.AdditionalRepository) CatalogService {
	return &catalogService{productRepo: productRepo, additionalRepo: additionalRepo}
}

func (s *catalogService) ListProducts(category models.Category, onlyAvailable bool) ([]models.Product, error) {
	if category != "" {
		if !category.Valid() {
			return nil, ErrInvalidCategory
		}
		products, err := s.productRepo.GetByCategory(category)
		if err != nil {
			return nil, err
		}
		if !onlyAvailable {
			return products, nil
		}
		available := products[:0]
		for _, p := range products {
			if p.Available {
				available = append(available, p)
			}
		}
		return available, nil
	}

	if onlyAvailable {
		return s.productRepo.GetAvailable()
	}
	return s.productRepo.GetAll()
}

func (s *catalogService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) ListAdditionals() ([]models.Additional, error) {
	return s.additionalRepo.GetAll()
}

// AdditionalsForProduct returns the available extras whose category the
// product declares on its allowed list.
func (s *catalogService) AdditionalsForProduct(productID string) ([]models.Additional, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !product.AllowAdditionals || len(product.AdditionalCategories) == 0 {
		return []models.Additional{}, nil
	}
	return s.additionalRepo.GetAvailableByCategories(product.AdditionalCategories)
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if !product.Category.Valid() {
		return ErrInvalidCategory
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	if !product.Category.Valid() {
		return ErrInvalidCategory
	}
	if _, err := s.productRepo.GetByID(product.ID); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Update(product)
}

func (s *catalogService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

func (s *catalogService) CreateAdditional(additional *models.Additional) error {
	if !additional.Category.Valid() {
		return ErrInvalidCategory
	}
	if additional.ID == "" {
		additional.ID = uuid.NewString()
	}
	return s.additionalRepo.Create(additional)
}

func (s *catalogService) UpdateAdditional(additional *models.Additional) error {
	if !additional.Category.Valid() {
		return ErrInvalidCategory
	}
	if _, err := s.additionalRepo.GetByID(additional.ID); err != nil {
		return ErrAdditionalNotFound
	}
	return s.additionalRepo.Update(additional)
}

func (s *catalogService) DeleteAdditional(id string) error {
	return s.additionalRepo.Delete(id)
}
