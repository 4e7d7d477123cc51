package repository

import (
	"errors"

	"time-control-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// attendancePtr constrains the generic repository to the two attendance
// tables while giving it the shared record accessors.
type attendancePtr[T any] interface {
	*T
	models.AttendanceRecord
}

// AttendanceFilters narrows the attendance listing.
type AttendanceFilters struct {
	WorkSiteID uint
	PartyID    uint
	Period     *models.Period
}

// AttendanceRepository serves both the company and the contractor attendance
// tables; the two variants differ only in the party column and association.
type AttendanceRepository[T any, PT attendancePtr[T]] struct {
	logger       *logrus.Logger
	partyColumn  string
	partyPreload string
}

func NewAttendanceRepository[T any, PT attendancePtr[T]](db *gorm.DB, partyColumn, partyPreload string) (*AttendanceRepository[T, PT], error) {
	logger := newLogger()

	if err := db.AutoMigrate(PT(new(T))); err != nil {
		logger.WithError(err).WithField("party", partyColumn).Error("Failed to auto-migrate attendance table")
		return nil, err
	}

	return &AttendanceRepository[T, PT]{
		logger:       logger,
		partyColumn:  partyColumn,
		partyPreload: partyPreload,
	}, nil
}

func (r *AttendanceRepository[T, PT]) GetByID(tx *gorm.DB, id uint) (PT, error) {
	record := PT(new(T))
	result := tx.Preload("WorkSite").Preload(r.partyPreload).First(record, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Attendance record not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance record by ID")
		return nil, result.Error
	}

	return record, nil
}

func (r *AttendanceRepository[T, PT]) GetAllBy(tx *gorm.DB, filters AttendanceFilters) ([]PT, error) {
	var records []PT

	query := tx.Preload("WorkSite").Preload(r.partyPreload).
		Order("date DESC, id ASC")

	if filters.WorkSiteID != 0 {
		query = query.Where("work_site_id = ?", filters.WorkSiteID)
	}
	if filters.PartyID != 0 {
		query = query.Where(r.partyColumn+" = ?", filters.PartyID)
	}
	if filters.Period != nil {
		query = query.Where("date BETWEEN ? AND ?", filters.Period.From, filters.Period.To)
	}

	result := query.Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records")
		return nil, result.Error
	}

	return records, nil
}

func (r *AttendanceRepository[T, PT]) Create(tx *gorm.DB, record PT) error {
	result := tx.Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create attendance record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":           record.GetID(),
		"work_site_id": record.GetWorkSiteID(),
		"date":         record.GetDate().Format("2006-01-02"),
	}).Info("Attendance record created")

	return nil
}

// UpdateWorkersCount is the only mutation attendance records support.
func (r *AttendanceRepository[T, PT]) UpdateWorkersCount(tx *gorm.DB, id uint, workersCount int) error {
	result := tx.Model(PT(new(T))).
		Where("id = ?", id).
		Update("workers_count", workersCount)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update workers count")
		return result.Error
	}

	return nil
}

func (r *AttendanceRepository[T, PT]) Delete(tx *gorm.DB, id uint) (bool, error) {
	result := tx.Delete(PT(new(T)), id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete attendance record")
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
