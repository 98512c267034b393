package repository

import (
	"cardapio/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetAvailable() ([]models.Product, error)
	GetByCategory(category models.Category) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("category, name").Find(&products).Error
	return products, err
}

func (r *productRepository) GetAvailable() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("available = ?", true).Order("category, name").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCategory(category models.Category) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("category = ?", category).Order("name").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id string) error {
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
