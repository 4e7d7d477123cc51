package repository

import (
	"errors"
	"time"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WorkRuleFilters narrows the rule listing.
type WorkRuleFilters struct {
	WorkSiteID uint
	CompanyID  uint
	Period     *models.Period
	OnlyActive bool
}

type WorkRuleRepository struct {
	logger *logrus.Logger
}

func NewWorkRuleRepository(db *gorm.DB) (*WorkRuleRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.WorkRule{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_site_company_rules table")
		return nil, err
	}

	return &WorkRuleRepository{logger: logger}, nil
}

func (r *WorkRuleRepository) GetByID(tx *gorm.DB, id uint) (*models.WorkRule, error) {
	var rule models.WorkRule
	result := tx.Preload("WorkSite").Preload("Company").First(&rule, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Work rule not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work rule by ID")
		return nil, result.Error
	}

	return &rule, nil
}

// ValidAt returns the rules of a (work site, company) pair whose validity
// window contains date, newest window first. Ordering is part of the
// resolver's contract: valid_from DESC, id DESC, so a tie between
// simultaneously-valid rules resolves to the most recent one.
func (r *WorkRuleRepository) ValidAt(tx *gorm.DB, workSiteID, companyID uint, date time.Time) ([]*models.WorkRule, error) {
	var rules []*models.WorkRule

	result := tx.
		Where("work_site_id = ? AND company_id = ?", workSiteID, companyID).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", date, date).
		Order("valid_from DESC, id DESC").
		Find(&rules)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get rules valid at date")
		return nil, result.Error
	}

	return rules, nil
}

func (r *WorkRuleRepository) GetAll(tx *gorm.DB, filters WorkRuleFilters) ([]*models.WorkRule, error) {
	var rules []*models.WorkRule

	query := tx.Preload("WorkSite").Preload("Company").
		Order("valid_from DESC")

	if filters.WorkSiteID != 0 {
		query = query.Where("work_site_id = ?", filters.WorkSiteID)
	}
	if filters.CompanyID != 0 {
		query = query.Where("company_id = ?", filters.CompanyID)
	}
	if filters.OnlyActive {
		query = query.Joins("JOIN companies c ON c.id = work_site_company_rules.company_id").
			Where("c.active = ?", true)
	}
	if filters.Period != nil {
		query = query.Where(
			"valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)",
			filters.Period.To, filters.Period.From,
		)
	}

	result := query.Find(&rules)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work rules")
		return nil, result.Error
	}

	return rules, nil
}

func (r *WorkRuleRepository) Create(tx *gorm.DB, rule *models.WorkRule) error {
	result := tx.Create(rule)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create work rule")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":           rule.ID,
		"work_site_id": rule.WorkSiteID,
		"company_id":   rule.CompanyID,
	}).Info("Work rule created")

	return nil
}

func (r *WorkRuleRepository) Update(tx *gorm.DB, rule *models.WorkRule) error {
	result := tx.Save(rule)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update work rule")
		return result.Error
	}

	return nil
}

func (r *WorkRuleRepository) Delete(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Delete(&models.WorkRule{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete work rule")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
