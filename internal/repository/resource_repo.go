package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ResourceRepository struct {
	logger *logrus.Logger
}

func NewResourceRepository(db *gorm.DB) (*ResourceRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Resource{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate resources table")
		return nil, err
	}

	return &ResourceRepository{logger: logger}, nil
}

// GetByID loads the resource with its owning company; the engines branch on
// the company's is_main flag.
func (r *ResourceRepository) GetByID(tx *gorm.DB, id uint) (*models.Resource, error) {
	var resource models.Resource
	result := tx.Preload("Company").First(&resource, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Resource not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get resource by ID")
		return nil, result.Error
	}

	return &resource, nil
}

func (r *ResourceRepository) GetByCompany(tx *gorm.DB, companyID uint, onlyActive bool) ([]*models.Resource, error) {
	var resources []*models.Resource

	query := tx.Preload("Company").
		Where("company_id = ?", companyID).
		Order("resource_type DESC, name ASC")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	result := query.Find(&resources)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company resources")
		return nil, result.Error
	}

	return resources, nil
}

func (r *ResourceRepository) GetAll(tx *gorm.DB, onlyActive bool) ([]*models.Resource, error) {
	var resources []*models.Resource

	query := tx.Preload("Company").Order("name ASC")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	result := query.Find(&resources)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get resources")
		return nil, result.Error
	}

	return resources, nil
}

func (r *ResourceRepository) Create(tx *gorm.DB, resource *models.Resource) error {
	result := tx.Create(resource)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create resource")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":         resource.ID,
		"company_id": resource.CompanyID,
	}).Info("Resource created")

	return nil
}

func (r *ResourceRepository) Update(tx *gorm.DB, resource *models.Resource) error {
	result := tx.Save(resource)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update resource")
		return result.Error
	}

	return nil
}

// Disable soft-deletes the resource by clearing the active flag.
func (r *ResourceRepository) Disable(tx *gorm.DB, id uint) error {
	result := tx.Model(&models.Resource{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to disable resource")
		return result.Error
	}

	r.logger.WithField("id", id).Info("Resource disabled")
	return nil
}
