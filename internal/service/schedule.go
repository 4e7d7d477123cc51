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
	msgScheduleNotFound = "No se encuentra este horario."
	msgScheduleMainOnly = "Solo la empresa principal puede tener horarios."
	msgScheduleTimes    = "Las horas del horario no son válidas."
)

// ScheduleCreate carries a new fixed working day for the main company.
type ScheduleCreate struct {
	CompanyID            uint
	StartTime            string
	EndTime              string
	DayCorrectionMinutes int
	ValidFrom            time.Time
	ValidTo              *time.Time
}

// SchedulePatch is a partial update.
type SchedulePatch struct {
	StartTime            models.Optional[string]
	EndTime              models.Optional[string]
	DayCorrectionMinutes models.Optional[int]
	ValidFrom            models.Optional[time.Time]
	ValidTo              models.Optional[time.Time]
}

type ScheduleService struct {
	db        *gorm.DB
	schedules *repository.ScheduleRepository
	exists    *Existence
	logger    *logrus.Logger
}

func NewScheduleService(
	db *gorm.DB,
	schedules *repository.ScheduleRepository,
	exists *Existence,
) *ScheduleService {
	return &ScheduleService{
		db:        db,
		schedules: schedules,
		exists:    exists,
		logger:    newLogger(),
	}
}

func (s *ScheduleService) Get(id uint) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(s.db, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperr.NewNotFound(msgScheduleNotFound)
	}
	return schedule, nil
}

func (s *ScheduleService) GetByCompany(companyID uint) ([]*models.Schedule, error) {
	var schedules []*models.Schedule

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.exists.Company(tx, companyID, models.CompanyMain); err != nil {
			return err
		}

		found, err := s.schedules.GetByCompany(tx, companyID)
		if err != nil {
			return err
		}

		schedules = found
		return nil
	})

	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (s *ScheduleService) Create(input ScheduleCreate) (*models.Schedule, error) {
	var schedule *models.Schedule

	err := s.db.Transaction(func(tx *gorm.DB) error {
		company, err := s.exists.Company(tx, input.CompanyID, models.CompanyAny)
		if err != nil {
			return err
		}
		if !company.IsMain {
			return apperr.NewValidation(msgScheduleMainOnly)
		}

		if !clock.IsTimeOfDay(input.StartTime) || !clock.IsTimeOfDay(input.EndTime) {
			return apperr.NewValidation(msgScheduleTimes)
		}

		schedule = &models.Schedule{
			CompanyID:            company.ID,
			StartTime:            input.StartTime,
			EndTime:              input.EndTime,
			DayCorrectionMinutes: input.DayCorrectionMinutes,
			ValidFrom:            clock.DateOnly(input.ValidFrom),
		}
		if input.ValidTo != nil {
			validTo := clock.DateOnly(*input.ValidTo)
			schedule.ValidTo = &validTo
		}

		if err := validateRuleWindow(schedule.ValidFrom, schedule.ValidTo); err != nil {
			return err
		}

		if err := s.schedules.Create(tx, schedule); err != nil {
			return s.mapWriteError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (s *ScheduleService) Update(id uint, patch SchedulePatch) (*models.Schedule, error) {
	var schedule *models.Schedule

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.schedules.GetByID(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NewNotFound(msgScheduleNotFound)
		}

		if patch.StartTime.Set && patch.StartTime.Valid {
			existing.StartTime = patch.StartTime.Value
		}
		if patch.EndTime.Set && patch.EndTime.Valid {
			existing.EndTime = patch.EndTime.Value
		}
		if patch.DayCorrectionMinutes.Set && patch.DayCorrectionMinutes.Valid {
			existing.DayCorrectionMinutes = patch.DayCorrectionMinutes.Value
		}
		if patch.ValidFrom.Set && patch.ValidFrom.Valid {
			existing.ValidFrom = clock.DateOnly(patch.ValidFrom.Value)
		}
		if patch.ValidTo.Set {
			if patch.ValidTo.Valid {
				validTo := clock.DateOnly(patch.ValidTo.Value)
				existing.ValidTo = &validTo
			} else {
				existing.ValidTo = nil
			}
		}

		if !clock.IsTimeOfDay(existing.StartTime) || !clock.IsTimeOfDay(existing.EndTime) {
			return apperr.NewValidation(msgScheduleTimes)
		}
		if err := validateRuleWindow(existing.ValidFrom, existing.ValidTo); err != nil {
			return err
		}

		if err := s.schedules.Update(tx, existing); err != nil {
			return s.mapWriteError(err)
		}

		schedule = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (s *ScheduleService) Delete(id uint) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.schedules.Delete(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NewNotFound(msgScheduleNotFound)
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *ScheduleService) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.CheckFailed:
		return apperr.NewValidation(msgEndAfterStart)
	case repository.ForeignKeyViolated:
		return apperr.NewValidation(msgScheduleTimes)
	default:
		return err
	}
}
