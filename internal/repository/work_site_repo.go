package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkSiteRepository struct {
	logger *logrus.Logger
}

func NewWorkSiteRepository(db *gorm.DB) (*WorkSiteRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.WorkSite{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_sites table")
		return nil, err
	}

	return &WorkSiteRepository{logger: logger}, nil
}

func (r *WorkSiteRepository) GetByID(tx *gorm.DB, id uint) (*models.WorkSite, error) {
	var site models.WorkSite
	result := tx.Preload("Users").First(&site, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Work site not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work site by ID")
		return nil, result.Error
	}

	return &site, nil
}

func (r *WorkSiteRepository) GetByCode(tx *gorm.DB, code string) (*models.WorkSite, error) {
	var site models.WorkSite
	result := tx.Where("code = ?", code).First(&site)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work site by code")
		return nil, result.Error
	}

	return &site, nil
}

func (r *WorkSiteRepository) GetAll(tx *gorm.DB, onlyOpen bool) ([]*models.WorkSite, error) {
	var sites []*models.WorkSite

	query := tx.Order("name ASC")
	if onlyOpen {
		query = query.Where("open = ?", true)
	}

	result := query.Find(&sites)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work sites")
		return nil, result.Error
	}

	return sites, nil
}

func (r *WorkSiteRepository) Create(tx *gorm.DB, site *models.WorkSite) error {
	result := tx.Create(site)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create work site")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":   site.ID,
		"code": site.Code,
	}).Info("Work site created")

	return nil
}

func (r *WorkSiteRepository) Update(tx *gorm.DB, site *models.WorkSite) error {
	result := tx.Save(site)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update work site")
		return result.Error
	}

	return nil
}

// ReplaceUsers syncs the site's assigned-user set.
func (r *WorkSiteRepository) ReplaceUsers(tx *gorm.DB, site *models.WorkSite, users []*models.User) error {
	if err := tx.Model(site).Association("Users").Replace(users); err != nil {
		r.logger.WithError(err).Error("Failed to replace work site users")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":    site.ID,
		"users": len(users),
	}).Debug("Work site users replaced")

	return nil
}

// FindMyWorkSites returns the sites the user is assigned to. The result backs
// the non-admin authorization check.
func (r *WorkSiteRepository) FindMyWorkSites(tx *gorm.DB, userID uint) ([]*models.WorkSite, error) {
	var sites []*models.WorkSite

	result := tx.
		Joins("JOIN work_site_users wsu ON wsu.work_site_id = work_sites.id").
		Where("wsu.user_id = ?", userID).
		Order("work_sites.name ASC").
		Find(&sites)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to find user work sites")
		return nil, result.Error
	}

	return sites, nil
}
