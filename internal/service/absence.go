package service

import (
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"
	"time-control-api/pkg/clock"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	msgAbsencePeriod = "La fecha de finalización debe ser posterior a la de comienzo."

	msgVacationNotFound = "No se encuentran las vacaciones en el registro."
	msgVacationOverlap  = "El trabajador ya tiene vacaciones en ese periodo."

	msgSickLeaveNotFound = "No se encuentra la baja en el registro."
	msgSickLeaveOverlap  = "El trabajador ya tiene una baja en ese periodo."
)

type absenceRecordPtr[T any] interface {
	*T
	models.AbsenceRecord
}

// AbsenceCreate is the input for opening a vacation or sick-leave period.
type AbsenceCreate struct {
	ResourceID uint
	StartDate  time.Time
	EndDate    *time.Time
}

// AbsencePatch is a partial update; a null EndDate makes the period
// open-ended again.
type AbsencePatch struct {
	ResourceID models.Optional[uint]
	StartDate  models.Optional[time.Time]
	EndDate    models.Optional[time.Time]
}

// AbsenceService serves vacations and sick leaves through one engine. Two
// concurrent inserts for overlapping periods on the same resource race at the
// storage layer; the loser surfaces as a conflict, never as a partial write.
type AbsenceService[T any, PT absenceRecordPtr[T]] struct {
	db          *gorm.DB
	repo        *repository.AbsenceRepository[T, PT]
	exists      *Existence
	build       func(data AbsenceCreate) PT
	notFoundMsg string
	overlapMsg  string
	logger      *logrus.Logger
}

func NewVacationService(
	db *gorm.DB,
	repo *repository.AbsenceRepository[models.Vacation, *models.Vacation],
	exists *Existence,
) *AbsenceService[models.Vacation, *models.Vacation] {
	return &AbsenceService[models.Vacation, *models.Vacation]{
		db:     db,
		repo:   repo,
		exists: exists,
		build: func(data AbsenceCreate) *models.Vacation {
			return &models.Vacation{
				ResourceID: data.ResourceID,
				StartDate:  clock.DateOnly(data.StartDate),
				EndDate:    data.EndDate,
			}
		},
		notFoundMsg: msgVacationNotFound,
		overlapMsg:  msgVacationOverlap,
		logger:      newLogger(),
	}
}

func NewSickLeaveService(
	db *gorm.DB,
	repo *repository.AbsenceRepository[models.SickLeave, *models.SickLeave],
	exists *Existence,
) *AbsenceService[models.SickLeave, *models.SickLeave] {
	return &AbsenceService[models.SickLeave, *models.SickLeave]{
		db:     db,
		repo:   repo,
		exists: exists,
		build: func(data AbsenceCreate) *models.SickLeave {
			return &models.SickLeave{
				ResourceID: data.ResourceID,
				StartDate:  clock.DateOnly(data.StartDate),
				EndDate:    data.EndDate,
			}
		},
		notFoundMsg: msgSickLeaveNotFound,
		overlapMsg:  msgSickLeaveOverlap,
		logger:      newLogger(),
	}
}

func (s *AbsenceService[T, PT]) Create(data AbsenceCreate) (*models.AbsenceView, error) {
	var view *models.AbsenceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.exists.Resource(tx, data.ResourceID); err != nil {
			return err
		}

		start := clock.DateOnly(data.StartDate)
		end := data.EndDate
		if end != nil {
			normalized := clock.DateOnly(*end)
			end = &normalized
			if normalized.Before(start) {
				return apperr.NewValidation(msgAbsencePeriod)
			}
		}

		overlaps, err := s.repo.HasOverlap(tx, data.ResourceID, start, end, 0)
		if err != nil {
			return err
		}
		if overlaps {
			return apperr.NewConflict(s.overlapMsg)
		}

		record := s.build(AbsenceCreate{ResourceID: data.ResourceID, StartDate: start, EndDate: end})
		if err := s.repo.Create(tx, record); err != nil {
			return s.mapWriteError(err)
		}

		full, err := s.repo.GetByID(tx, record.GetID())
		if err != nil {
			return err
		}

		view = buildAbsenceView[T, PT](full)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *AbsenceService[T, PT]) Get(id uint) (*models.AbsenceView, error) {
	var view *models.AbsenceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NewNotFound(s.notFoundMsg)
		}

		view = buildAbsenceView[T, PT](record)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *AbsenceService[T, PT]) GetAllBy(resourceID uint, onlyActive bool, period *models.Period) ([]*models.AbsenceView, error) {
	var views []*models.AbsenceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if resourceID != 0 {
			if _, err := s.exists.Resource(tx, resourceID); err != nil {
				return err
			}
		}

		records, err := s.repo.GetAllBy(tx, repository.AbsenceFilters{
			ResourceID: resourceID,
			OnlyActive: onlyActive,
			Period:     period,
		})
		if err != nil {
			return err
		}

		views = make([]*models.AbsenceView, 0, len(records))
		for _, record := range records {
			views = append(views, buildAbsenceView[T, PT](record))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return views, nil
}

func (s *AbsenceService[T, PT]) Update(id uint, patch AbsencePatch) (*models.AbsenceView, error) {
	var view *models.AbsenceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NewNotFound(s.notFoundMsg)
		}

		resourceID := record.GetResourceID()
		if patch.ResourceID.Set && patch.ResourceID.Valid {
			if _, err := s.exists.Resource(tx, patch.ResourceID.Value); err != nil {
				return err
			}
			resourceID = patch.ResourceID.Value
		}

		start := record.GetStartDate()
		if patch.StartDate.Set && patch.StartDate.Valid {
			start = clock.DateOnly(patch.StartDate.Value)
		}

		end := record.GetEndDate()
		if patch.EndDate.Set {
			if patch.EndDate.Valid {
				normalized := clock.DateOnly(patch.EndDate.Value)
				end = &normalized
			} else {
				end = nil
			}
		}

		if end != nil && end.Before(start) {
			return apperr.NewValidation(msgAbsencePeriod)
		}

		overlaps, err := s.repo.HasOverlap(tx, resourceID, start, end, id)
		if err != nil {
			return err
		}
		if overlaps {
			return apperr.NewConflict(s.overlapMsg)
		}

		record.SetResourceID(resourceID)
		record.SetPeriod(start, end)

		if err := s.repo.Update(tx, record); err != nil {
			return s.mapWriteError(err)
		}

		full, err := s.repo.GetByID(tx, id)
		if err != nil {
			return err
		}

		view = buildAbsenceView[T, PT](full)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *AbsenceService[T, PT]) Delete(id uint) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.repo.Delete(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NewNotFound(s.notFoundMsg)
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	s.logger.WithField("id", id).Info("Absence period deleted")
	return id, nil
}

func (s *AbsenceService[T, PT]) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.CheckFailed:
		return apperr.NewValidation(msgAbsencePeriod)
	case repository.ExclusionViolated, repository.UniqueViolated:
		return apperr.NewConflict(s.overlapMsg)
	default:
		return err
	}
}

func buildAbsenceView[T any, PT absenceRecordPtr[T]](record PT) *models.AbsenceView {
	var endDate *string
	if record.GetEndDate() != nil {
		formatted := clock.FormatDate(*record.GetEndDate())
		endDate = &formatted
	}

	return &models.AbsenceView{
		ID:        record.GetID(),
		StartDate: clock.FormatDate(record.GetStartDate()),
		EndDate:   endDate,
		Resource:  record.ResourceRef(),
	}
}
