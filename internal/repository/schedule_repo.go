package repository

import (
	"errors"
	"time"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	logger *logrus.Logger
}

func NewScheduleRepository(db *gorm.DB) (*ScheduleRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Schedule{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate schedules table")
		return nil, err
	}

	return &ScheduleRepository{logger: logger}, nil
}

func (r *ScheduleRepository) GetByID(tx *gorm.DB, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	result := tx.First(&schedule, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Schedule not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule by ID")
		return nil, result.Error
	}

	return &schedule, nil
}

// ActiveFor returns the schedule active for the company on date, or nil.
// Same deterministic ordering as rule resolution.
func (r *ScheduleRepository) ActiveFor(tx *gorm.DB, companyID uint, date time.Time) (*models.Schedule, error) {
	var schedules []*models.Schedule

	result := tx.
		Where("company_id = ?", companyID).
		Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", date, date).
		Order("valid_from DESC, id DESC").
		Find(&schedules)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active schedule")
		return nil, result.Error
	}

	if len(schedules) == 0 {
		return nil, nil
	}

	if len(schedules) > 1 {
		r.logger.WithFields(logrus.Fields{
			"company_id": companyID,
			"date":       date.Format("2006-01-02"),
			"matches":    len(schedules),
		}).Warn("More than one schedule valid for date, taking the newest")
	}

	return schedules[0], nil
}

func (r *ScheduleRepository) GetByCompany(tx *gorm.DB, companyID uint) ([]*models.Schedule, error) {
	var schedules []*models.Schedule

	result := tx.Where("company_id = ?", companyID).
		Order("valid_from DESC").
		Find(&schedules)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get company schedules")
		return nil, result.Error
	}

	return schedules, nil
}

func (r *ScheduleRepository) Create(tx *gorm.DB, schedule *models.Schedule) error {
	result := tx.Create(schedule)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create schedule")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":         schedule.ID,
		"company_id": schedule.CompanyID,
	}).Info("Schedule created")

	return nil
}

func (r *ScheduleRepository) Update(tx *gorm.DB, schedule *models.Schedule) error {
	result := tx.Save(schedule)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update schedule")
		return result.Error
	}

	return nil
}

func (r *ScheduleRepository) Delete(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete schedule")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
