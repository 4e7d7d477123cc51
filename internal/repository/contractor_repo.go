package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ContractorRepository struct {
	logger *logrus.Logger
}

func NewContractorRepository(db *gorm.DB) (*ContractorRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Contractor{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate contractors table")
		return nil, err
	}

	return &ContractorRepository{logger: logger}, nil
}

func (r *ContractorRepository) GetByID(tx *gorm.DB, id uint) (*models.Contractor, error) {
	var contractor models.Contractor
	result := tx.First(&contractor, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Contractor not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get contractor by ID")
		return nil, result.Error
	}

	return &contractor, nil
}

func (r *ContractorRepository) GetByName(tx *gorm.DB, name string) (*models.Contractor, error) {
	var contractor models.Contractor
	result := tx.Where("name = ?", name).First(&contractor)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get contractor by name")
		return nil, result.Error
	}

	return &contractor, nil
}

func (r *ContractorRepository) GetAll(tx *gorm.DB, onlyActive bool) ([]*models.Contractor, error) {
	var contractors []*models.Contractor

	query := tx.Order("name ASC")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	result := query.Find(&contractors)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get contractors")
		return nil, result.Error
	}

	return contractors, nil
}

func (r *ContractorRepository) Create(tx *gorm.DB, contractor *models.Contractor) error {
	result := tx.Create(contractor)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create contractor")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":   contractor.ID,
		"name": contractor.Name,
	}).Info("Contractor created")

	return nil
}

func (r *ContractorRepository) Update(tx *gorm.DB, contractor *models.Contractor) error {
	result := tx.Save(contractor)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update contractor")
		return result.Error
	}

	return nil
}

// Disable soft-deletes the contractor by clearing the active flag.
func (r *ContractorRepository) Disable(tx *gorm.DB, id uint) error {
	result := tx.Model(&models.Contractor{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to disable contractor")
		return result.Error
	}

	r.logger.WithField("id", id).Info("Contractor disabled")
	return nil
}
