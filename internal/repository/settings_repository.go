package repository

import (
	"errors"

	"cardapio/internal/models"

	"gorm.io/gorm"
)

// Settings live on a single row so the admin dashboard always reads and
// writes the same record.
const settingsRowID = 1

type SettingsRepository interface {
	Get() (*models.Settings, error)
	Save(settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Settings{ID: settingsRowID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(settings *models.Settings) error {
	settings.ID = settingsRowID
	return r.db.Save(settings).Error
}
