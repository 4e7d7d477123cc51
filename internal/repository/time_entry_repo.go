package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TimeEntryFilters narrows the entry listing.
type TimeEntryFilters struct {
	WorkSiteID uint
	CompanyID  uint
	Period     *models.Period
}

type TimeEntryRepository struct {
	logger *logrus.Logger
}

func NewTimeEntryRepository(db *gorm.DB) (*TimeEntryRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.TimeEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate time_entries table")
		return nil, err
	}

	return &TimeEntryRepository{logger: logger}, nil
}

// GetByID loads the entry with work site, resource and owning company joined.
func (r *TimeEntryRepository) GetByID(tx *gorm.DB, id uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	result := tx.
		Preload("WorkSite").
		Preload("Resource").
		Preload("Resource.Company").
		First(&entry, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Time entry not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time entry by ID")
		return nil, result.Error
	}

	return &entry, nil
}

// GetAllBy lists entries with the same joins, filtered by site, company of the
// resource, and an inclusive work-date period.
func (r *TimeEntryRepository) GetAllBy(tx *gorm.DB, filters TimeEntryFilters) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry

	query := tx.
		Preload("WorkSite").
		Preload("Resource").
		Preload("Resource.Company").
		Order("work_date DESC, id ASC")

	if filters.WorkSiteID != 0 {
		query = query.Where("time_entries.work_site_id = ?", filters.WorkSiteID)
	}
	if filters.CompanyID != 0 {
		query = query.
			Joins("JOIN resources res ON res.id = time_entries.resource_id").
			Where("res.company_id = ?", filters.CompanyID)
	}
	if filters.Period != nil {
		query = query.Where(
			"time_entries.work_date BETWEEN ? AND ?",
			filters.Period.From, filters.Period.To,
		)
	}

	result := query.Find(&entries)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time entries")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"count":        len(entries),
		"work_site_id": filters.WorkSiteID,
		"company_id":   filters.CompanyID,
	}).Debug("Retrieved time entries")

	return entries, nil
}

func (r *TimeEntryRepository) Create(tx *gorm.DB, entry *models.TimeEntry) error {
	result := tx.Create(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create time entry")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":           entry.ID,
		"work_site_id": entry.WorkSiteID,
		"resource_id":  entry.ResourceID,
		"work_date":    entry.WorkDate.Format("2006-01-02"),
	}).Info("Time entry created")

	return nil
}

func (r *TimeEntryRepository) Update(tx *gorm.DB, entry *models.TimeEntry) error {
	result := tx.Save(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update time entry")
		return result.Error
	}

	return nil
}

// FixWorkedMinutes overrides worked_minutes and pins the mode to manual.
func (r *TimeEntryRepository) FixWorkedMinutes(tx *gorm.DB, id uint, workedMinutes int) error {
	result := tx.Model(&models.TimeEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"worked_minutes":      workedMinutes,
			"worked_minutes_mode": models.WorkedMinutesManual,
		})

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to fix worked minutes")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":             id,
		"worked_minutes": workedMinutes,
	}).Info("Worked minutes fixed manually")

	return nil
}

func (r *TimeEntryRepository) Delete(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Delete(&models.TimeEntry{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete time entry")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
