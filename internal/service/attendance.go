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
	msgAttendanceNotFound  = "No se encuentra este registro de asistencia."
	msgAttendanceMain      = "No se permite registrar asistencia para la empresa principal."
	msgAttendanceCount     = "La cantidad de trabajadores no puede ser negativa."
	msgAttendanceDuplicate = "Ya existe un registro de asistencia para esa obra y fecha."
)

// attendanceRecordPtr mirrors the repository constraint so the service can be
// instantiated for either attendance table.
type attendanceRecordPtr[T any] interface {
	*T
	models.AttendanceRecord
}

// AttendanceParty asserts the reported party. AssertReportable additionally
// rejects parties that may not report attendance: for the company variant the
// main company's headcount is implicit from the schedule, so reporting it is
// invalid. Listing filters only need AssertExists.
type AttendanceParty interface {
	AssertExists(tx *gorm.DB, id uint) error
	AssertReportable(tx *gorm.DB, id uint) error
}

type companyParty struct {
	exists      *Existence
	excludeMain bool
}

func (p companyParty) AssertExists(tx *gorm.DB, id uint) error {
	_, err := p.exists.Company(tx, id, models.CompanyAny)
	return err
}

func (p companyParty) AssertReportable(tx *gorm.DB, id uint) error {
	company, err := p.exists.Company(tx, id, models.CompanyAny)
	if err != nil {
		return err
	}
	if p.excludeMain && company.IsMain {
		return apperr.NewValidation(msgAttendanceMain)
	}
	return nil
}

type contractorParty struct {
	exists *Existence
}

func (p contractorParty) AssertExists(tx *gorm.DB, id uint) error {
	_, err := p.exists.Contractor(tx, id)
	return err
}

func (p contractorParty) AssertReportable(tx *gorm.DB, id uint) error {
	return p.AssertExists(tx, id)
}

// AttendanceCreate is the input for reporting a headcount.
type AttendanceCreate struct {
	WorkSiteID   uint
	PartyID      uint
	Date         time.Time
	WorkersCount int
	UserID       uint
}

// AttendanceService is the one engine behind both attendance variants;
// company and contractor instances differ only in their party gateway and
// record constructor.
type AttendanceService[T any, PT attendanceRecordPtr[T]] struct {
	db     *gorm.DB
	repo   *repository.AttendanceRepository[T, PT]
	guard  *AuthorizationGuard
	exists *Existence
	party  AttendanceParty
	build  func(data AttendanceCreate) PT
	logger *logrus.Logger
}

// NewCompanyAttendanceService wires the company variant with the
// main-company exclusion enabled.
func NewCompanyAttendanceService(
	db *gorm.DB,
	repo *repository.AttendanceRepository[models.CompanyAttendance, *models.CompanyAttendance],
	guard *AuthorizationGuard,
	exists *Existence,
) *AttendanceService[models.CompanyAttendance, *models.CompanyAttendance] {
	return &AttendanceService[models.CompanyAttendance, *models.CompanyAttendance]{
		db:     db,
		repo:   repo,
		guard:  guard,
		exists: exists,
		party:  companyParty{exists: exists, excludeMain: true},
		build: func(data AttendanceCreate) *models.CompanyAttendance {
			return &models.CompanyAttendance{
				WorkSiteID:   data.WorkSiteID,
				CompanyID:    data.PartyID,
				Date:         clock.DateOnly(data.Date),
				WorkersCount: data.WorkersCount,
				CreatedBy:    data.UserID,
			}
		},
		logger: newLogger(),
	}
}

// NewContractorAttendanceService wires the subcontractor variant.
func NewContractorAttendanceService(
	db *gorm.DB,
	repo *repository.AttendanceRepository[models.ContractorAttendance, *models.ContractorAttendance],
	guard *AuthorizationGuard,
	exists *Existence,
) *AttendanceService[models.ContractorAttendance, *models.ContractorAttendance] {
	return &AttendanceService[models.ContractorAttendance, *models.ContractorAttendance]{
		db:     db,
		repo:   repo,
		guard:  guard,
		exists: exists,
		party:  contractorParty{exists: exists},
		build: func(data AttendanceCreate) *models.ContractorAttendance {
			return &models.ContractorAttendance{
				WorkSiteID:   data.WorkSiteID,
				ContractorID: data.PartyID,
				Date:         clock.DateOnly(data.Date),
				WorkersCount: data.WorkersCount,
				CreatedBy:    data.UserID,
			}
		},
		logger: newLogger(),
	}
}

func (s *AttendanceService[T, PT]) Create(data AttendanceCreate) (*models.AttendanceView, error) {
	var view *models.AttendanceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.exists.WorkSite(tx, data.WorkSiteID); err != nil {
			return err
		}
		if err := s.party.AssertReportable(tx, data.PartyID); err != nil {
			return err
		}
		if data.WorkersCount < 0 {
			return apperr.NewValidation(msgAttendanceCount)
		}

		record := s.build(data)
		if err := s.repo.Create(tx, record); err != nil {
			return s.mapWriteError(err)
		}

		// Re-read for the joined names.
		full, err := s.repo.GetByID(tx, record.GetID())
		if err != nil {
			return err
		}

		view = buildAttendanceView[T, PT](full)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *AttendanceService[T, PT]) Get(id uint) (*models.AttendanceView, error) {
	var view *models.AttendanceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NewNotFound(msgAttendanceNotFound)
		}

		view = buildAttendanceView[T, PT](record)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// GetAllBy applies the same authorization rule as the time-entry listing.
func (s *AttendanceService[T, PT]) GetAllBy(user *models.User, workSiteID, partyID uint, period *models.Period) ([]*models.AttendanceView, error) {
	var views []*models.AttendanceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if !user.IsAdmin() {
			allowed, err := s.guard.IsAuthorizedForSite(tx, user.ID, workSiteID)
			if err != nil {
				return err
			}
			if !allowed {
				return apperr.NewForbidden(msgSiteForbidden)
			}
		} else if workSiteID != 0 {
			if _, err := s.exists.WorkSite(tx, workSiteID); err != nil {
				return err
			}
		}
		if partyID != 0 {
			if err := s.party.AssertExists(tx, partyID); err != nil {
				return err
			}
		}

		records, err := s.repo.GetAllBy(tx, repository.AttendanceFilters{
			WorkSiteID: workSiteID,
			PartyID:    partyID,
			Period:     period,
		})
		if err != nil {
			return err
		}

		views = make([]*models.AttendanceView, 0, len(records))
		for _, record := range records {
			views = append(views, buildAttendanceView[T, PT](record))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return views, nil
}

// Update mutates the workers count only.
func (s *AttendanceService[T, PT]) Update(id uint, workersCount int) (*models.AttendanceView, error) {
	var view *models.AttendanceView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.GetByID(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return apperr.NewNotFound(msgAttendanceNotFound)
		}

		if workersCount < 0 {
			return apperr.NewValidation(msgAttendanceCount)
		}

		if err := s.repo.UpdateWorkersCount(tx, id, workersCount); err != nil {
			return s.mapWriteError(err)
		}

		record.SetWorkersCount(workersCount)
		view = buildAttendanceView[T, PT](record)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *AttendanceService[T, PT]) Delete(id uint) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.repo.Delete(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NewNotFound(msgAttendanceNotFound)
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	s.logger.WithField("id", id).Info("Attendance record deleted")
	return id, nil
}

func (s *AttendanceService[T, PT]) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.UniqueViolated:
		return apperr.NewConflict(msgAttendanceDuplicate)
	case repository.CheckFailed:
		return apperr.NewValidation(msgAttendanceCount)
	case repository.ForeignKeyViolated:
		return apperr.NewValidation(msgAttendanceNotFound)
	default:
		return err
	}
}

func buildAttendanceView[T any, PT attendanceRecordPtr[T]](record PT) *models.AttendanceView {
	return &models.AttendanceView{
		ID:           record.GetID(),
		Date:         clock.FormatDate(record.GetDate()),
		WorkersCount: record.GetWorkersCount(),
		CreatedBy:    record.GetCreatedBy(),
		WorkSite:     record.SiteRef(),
		Party:        record.PartyRef(),
	}
}
