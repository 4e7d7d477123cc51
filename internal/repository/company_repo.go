package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	logger *logrus.Logger
}

func NewCompanyRepository(db *gorm.DB) (*CompanyRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Company{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate companies table")
		return nil, err
	}

	return &CompanyRepository{logger: logger}, nil
}

func (r *CompanyRepository) GetByID(tx *gorm.DB, id uint) (*models.Company, error) {
	var company models.Company
	result := tx.First(&company, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Company not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company by ID")
		return nil, result.Error
	}

	return &company, nil
}

func (r *CompanyRepository) GetByName(tx *gorm.DB, name string) (*models.Company, error) {
	var company models.Company
	result := tx.Where("name = ?", name).First(&company)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company by name")
		return nil, result.Error
	}

	return &company, nil
}

func (r *CompanyRepository) GetAll(tx *gorm.DB, onlyActive bool) ([]*models.Company, error) {
	var companies []*models.Company

	query := tx.Order("is_main DESC, name ASC")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	result := query.Find(&companies)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get companies")
		return nil, result.Error
	}

	return companies, nil
}

func (r *CompanyRepository) Create(tx *gorm.DB, company *models.Company) error {
	result := tx.Create(company)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create company")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":   company.ID,
		"name": company.Name,
	}).Info("Company created")

	return nil
}

func (r *CompanyRepository) Update(tx *gorm.DB, company *models.Company) error {
	result := tx.Save(company)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update company")
		return result.Error
	}

	return nil
}

// Disable soft-deletes the company by clearing the active flag.
func (r *CompanyRepository) Disable(tx *gorm.DB, id uint) error {
	result := tx.Model(&models.Company{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to disable company")
		return result.Error
	}

	r.logger.WithField("id", id).Info("Company disabled")
	return nil
}
