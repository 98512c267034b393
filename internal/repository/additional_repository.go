package repository

import (
	"cardapio/internal/models"

	"gorm.io/gorm"
)

type AdditionalRepository interface {
	Create(additional *models.Additional) error
	GetByID(id string) (*models.Additional, error)
	GetByIDs(ids []string) ([]models.Additional, error)
	GetAll() ([]models.Additional, error)
	GetAvailableByCategories(categories []models.AdditionalCategory) ([]models.Additional, error)
	Update(additional *models.Additional) error
	Delete(id string) error
	Count() (int64, error)
}

type additionalRepository struct {
	db *gorm.DB
}

func NewAdditionalRepository(db *gorm.DB) AdditionalRepository {
	return &additionalRepository{db: db}
}

func (r *additionalRepository) Create(additional *models.Additional) error {
	return r.db.Create(additional).Error
}

func (r *additionalRepository) GetByID(id string) (*models.Additional, error) {
	var additional models.Additional
	err := r.db.First(&additional, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &additional, nil
}

func (r *additionalRepository) GetByIDs(ids []string) ([]models.Additional, error) {
	var additionals []models.Additional
	err := r.db.Where("id IN ?", ids).Find(&additionals).Error
	return additionals, err
}

func (r *additionalRepository) GetAll() ([]models.Additional, error) {
	var additionals []models.Additional
	err := r.db.Order("category, name").Find(&additionals).Error
	return additionals, err
}

func (r *additionalRepository) GetAvailableByCategories(categories []models.AdditionalCategory) ([]models.Additional, error) {
	var additionals []models.Additional
	err := r.db.Where("available = ? AND category IN ?", true, categories).Order("name").Find(&additionals).Error
	return additionals, err
}

func (r *additionalRepository) Update(additional *models.Additional) error {
	return r.db.Save(additional).Error
}

func (r *additionalRepository) Delete(id string) error {
	return r.db.Delete(&models.Additional{}, "id = ?", id).Error
}

func (r *additionalRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Additional{}).Count(&count).Error
	return count, err
}
