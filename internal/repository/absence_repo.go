package repository

import (
	"errors"
	"time"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// absencePtr constrains the generic repository to the vacation and sick-leave
// tables.
type absencePtr[T any] interface {
	*T
	models.AbsenceRecord
}

// AbsenceFilters narrows the absence listing.
type AbsenceFilters struct {
	ResourceID uint
	OnlyActive bool
	Period     *models.Period
}

// AbsenceRepository serves both vacations and sick leaves. Period non-overlap
// per resource is asserted with HasOverlap inside the caller's transaction;
// sqlite's single-writer serialization makes that check equivalent to an
// exclusion constraint evaluated at commit.
type AbsenceRepository[T any, PT absencePtr[T]] struct {
	logger *logrus.Logger
}

func NewAbsenceRepository[T any, PT absencePtr[T]](db *gorm.DB) (*AbsenceRepository[T, PT], error) {
	logger := newLogger()

	if err := db.AutoMigrate(PT(new(T))); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate absence table")
		return nil, err
	}

	return &AbsenceRepository[T, PT]{logger: logger}, nil
}

func (r *AbsenceRepository[T, PT]) GetByID(tx *gorm.DB, id uint) (PT, error) {
	record := PT(new(T))
	result := tx.Preload("Resource").First(record, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Absence period not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get absence period by ID")
		return nil, result.Error
	}

	return record, nil
}

func (r *AbsenceRepository[T, PT]) GetAllBy(tx *gorm.DB, filters AbsenceFilters) ([]PT, error) {
	var records []PT

	query := tx.Model(PT(new(T))).Preload("Resource").
		Order("start_date DESC, id ASC")

	if filters.ResourceID != 0 {
		query = query.Where("resource_id = ?", filters.ResourceID)
	}
	if filters.OnlyActive {
		query = query.
			Joins("JOIN resources res ON res.id = resource_id").
			Where("res.active = ?", true)
	}
	if filters.Period != nil {
		query = query.Where(
			"start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			filters.Period.To, filters.Period.From,
		)
	}

	result := query.Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get absence periods")
		return nil, result.Error
	}

	return records, nil
}

// HasOverlap reports whether the resource already has a period sharing a day
// with [start, end]. A nil end is open-ended. excludeID skips the record
// being updated.
func (r *AbsenceRepository[T, PT]) HasOverlap(tx *gorm.DB, resourceID uint, start time.Time, end *time.Time, excludeID uint) (bool, error) {
	var count int64

	query := tx.Model(PT(new(T))).
		Where("resource_id = ?", resourceID).
		Where("end_date IS NULL OR end_date >= ?", start)

	if end != nil {
		query = query.Where("start_date <= ?", *end)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	result := query.Count(&count)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to check absence overlap")
		return false, result.Error
	}

	return count > 0, nil
}

func (r *AbsenceRepository[T, PT]) Create(tx *gorm.DB, record PT) error {
	result := tx.Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create absence period")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          record.GetID(),
		"resource_id": record.GetResourceID(),
	}).Info("Absence period created")

	return nil
}

func (r *AbsenceRepository[T, PT]) Update(tx *gorm.DB, record PT) error {
	result := tx.Save(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update absence period")
		return result.Error
	}

	return nil
}

func (r *AbsenceRepository[T, PT]) Delete(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Delete(PT(new(T)), id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete absence period")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
