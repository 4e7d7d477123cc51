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
	msgTimeEntryNotFound  = "No se encuentra este registro horario."
	msgEndAfterStart      = "La hora de fin debe ser posterior a la de comienzo."
	msgCrossCompany       = "Al actualizar un registro no se puede elegir un trabajador o recurso de otra empresa."
	msgTimeEntryInvalid   = "Los datos del registro horario no son válidos."
	msgWorkedMinutesRange = "Los minutos trabajados no pueden ser negativos."
)

// TimeEntryCreate is the input for creating an entry.
type TimeEntryCreate struct {
	WorkSiteID uint
	ResourceID uint
	WorkDate   time.Time
	StartTime  string
	EndTime    *string
	Comment    *string
	UserID     uint
}

// TimeEntryPatch is a partial update. Fields distinguish absent from
// explicitly null: null EndTime reopens the entry, null AppliedRuleID removes
// the applied correction.
type TimeEntryPatch struct {
	ResourceID    models.Optional[uint]
	AppliedRuleID models.Optional[uint]
	StartTime     models.Optional[string]
	EndTime       models.Optional[string]
	Comment       models.Optional[string]
}

// TimeEntryService orchestrates creation, update and manual correction of
// time entries.
type TimeEntryService struct {
	db       *gorm.DB
	entries  *repository.TimeEntryRepository
	resolver *RuleResolver
	guard    *AuthorizationGuard
	exists   *Existence
	logger   *logrus.Logger
}

func NewTimeEntryService(
	db *gorm.DB,
	entries *repository.TimeEntryRepository,
	resolver *RuleResolver,
	guard *AuthorizationGuard,
	exists *Existence,
) *TimeEntryService {
	return &TimeEntryService{
		db:       db,
		entries:  entries,
		resolver: resolver,
		guard:    guard,
		exists:   exists,
		logger:   newLogger(),
	}
}

// Create resolves the governing rule and persists the entry. For a
// main-company resource, start/end are forced to the schedule's times and
// worked minutes are computed eagerly in manual mode; caller-supplied times
// are ignored. For regular companies the resolved rule id (or nil) is stored
// and worked minutes stay unset until fixed or derived on read.
func (s *TimeEntryService) Create(data TimeEntryCreate) (*models.TimeEntryView, error) {
	var view *models.TimeEntryView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		site, err := s.exists.WorkSite(tx, data.WorkSiteID)
		if err != nil {
			return err
		}

		resource, err := s.exists.Resource(tx, data.ResourceID)
		if err != nil {
			return err
		}

		workDate := clock.DateOnly(data.WorkDate)
		resolution, err := s.resolver.Resolve(tx, &resource.Company, data.WorkSiteID, workDate)
		if err != nil {
			return err
		}

		entry := &models.TimeEntry{
			WorkSiteID:        data.WorkSiteID,
			ResourceID:        data.ResourceID,
			WorkDate:          workDate,
			StartTime:         data.StartTime,
			EndTime:           data.EndTime,
			WorkedMinutesMode: models.WorkedMinutesAuto,
			Comment:           data.Comment,
			CreatedBy:         data.UserID,
		}

		if resource.Company.IsMain {
			schedule := resolution.Schedule
			worked, err := clock.MinutesBetween(schedule.StartTime, schedule.EndTime)
			if err != nil {
				return err
			}
			worked += schedule.DayCorrectionMinutes

			endTime := schedule.EndTime
			entry.AppliedRuleID = nil
			entry.StartTime = schedule.StartTime
			entry.EndTime = &endTime
			entry.WorkedMinutes = &worked
			entry.WorkedMinutesMode = models.WorkedMinutesManual
		} else {
			entry.AppliedRuleID = resolution.AppliedRuleID
		}

		if !entry.IsValid() {
			return apperr.NewValidation(msgTimeEntryInvalid)
		}

		if err := s.entries.Create(tx, entry); err != nil {
			return s.mapWriteError(err)
		}

		entry.WorkSite = *site
		entry.Resource = *resource

		view, err = s.buildView(tx, entry)
		return err
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// Update patches an entry. Reassigning the resource across companies is
// rejected; for main-company entries only the resource and the comment are
// mutable, times and rule stay pinned to the schedule they were created from.
func (s *TimeEntryService) Update(id uint, patch TimeEntryPatch) (*models.TimeEntryView, error) {
	var view *models.TimeEntryView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.entries.GetByID(tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperr.NewNotFound(msgTimeEntryNotFound)
		}

		if patch.ResourceID.Set && patch.ResourceID.Valid {
			newResource, err := s.exists.Resource(tx, patch.ResourceID.Value)
			if err != nil {
				return err
			}
			if newResource.Company.Name != entry.Resource.Company.Name {
				return apperr.NewValidation(msgCrossCompany)
			}
			entry.ResourceID = newResource.ID
			entry.Resource = *newResource
		}

		if !entry.Resource.Company.IsMain {
			if patch.AppliedRuleID.Set {
				if patch.AppliedRuleID.Valid {
					if _, err := s.exists.WorkRule(tx, patch.AppliedRuleID.Value); err != nil {
						return err
					}
					ruleID := patch.AppliedRuleID.Value
					entry.AppliedRuleID = &ruleID
				} else {
					entry.AppliedRuleID = nil
				}
			}

			if patch.StartTime.Set && patch.StartTime.Valid {
				entry.StartTime = patch.StartTime.Value
			}

			if patch.EndTime.Set {
				if patch.EndTime.Valid {
					endTime := patch.EndTime.Value
					entry.EndTime = &endTime
				} else {
					// Explicit null reopens the entry.
					entry.EndTime = nil
				}
			}
		}

		if patch.Comment.Set && patch.Comment.Valid {
			comment := patch.Comment.Value
			entry.Comment = &comment
		}

		if !entry.IsValid() {
			return apperr.NewValidation(msgTimeEntryInvalid)
		}

		if err := s.entries.Update(tx, entry); err != nil {
			return s.mapWriteError(err)
		}

		view, err = s.buildView(tx, entry)
		return err
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// FixWorkedMinutes is the administrative override: it sets worked minutes
// unconditionally and forces manual mode. Start/end are not recomputed.
func (s *TimeEntryService) FixWorkedMinutes(id uint, workedMinutes int) (*models.TimeEntryView, error) {
	var view *models.TimeEntryView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.entries.GetByID(tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperr.NewNotFound(msgTimeEntryNotFound)
		}

		if workedMinutes < 0 {
			return apperr.NewValidation(msgWorkedMinutesRange)
		}

		if err := s.entries.FixWorkedMinutes(tx, id, workedMinutes); err != nil {
			return s.mapWriteError(err)
		}

		entry.WorkedMinutes = &workedMinutes
		entry.WorkedMinutesMode = models.WorkedMinutesManual

		view, err = s.buildView(tx, entry)
		return err
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// Get returns a single joined entry.
func (s *TimeEntryService) Get(id uint) (*models.TimeEntryView, error) {
	var view *models.TimeEntryView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.entries.GetByID(tx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperr.NewNotFound(msgTimeEntryNotFound)
		}

		view, err = s.buildView(tx, entry)
		return err
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// GetAllBy lists entries. Non-admin callers must be assigned to the requested
// site; admins may omit the site but any explicit filter must resolve.
func (s *TimeEntryService) GetAllBy(user *models.User, workSiteID, companyID uint, period *models.Period) ([]*models.TimeEntryView, error) {
	var views []*models.TimeEntryView

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
		if companyID != 0 {
			if _, err := s.exists.Company(tx, companyID, models.CompanyRegular); err != nil {
				return err
			}
		}

		entries, err := s.entries.GetAllBy(tx, repository.TimeEntryFilters{
			WorkSiteID: workSiteID,
			CompanyID:  companyID,
			Period:     period,
		})
		if err != nil {
			return err
		}

		views = make([]*models.TimeEntryView, 0, len(entries))
		for _, entry := range entries {
			view, err := s.buildView(tx, entry)
			if err != nil {
				return err
			}
			views = append(views, view)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return views, nil
}

// Delete hard-deletes the entry and returns its id.
func (s *TimeEntryService) Delete(id uint) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.entries.Delete(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NewNotFound(msgTimeEntryNotFound)
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	s.logger.WithField("id", id).Info("Time entry deleted")
	return id, nil
}

// buildView assembles the joined read shape. The correction is re-joined at
// read time from whichever rule or schedule applies to the entry's date; it
// is not stored redundantly.
func (s *TimeEntryService) buildView(tx *gorm.DB, entry *models.TimeEntry) (*models.TimeEntryView, error) {
	resolution, err := s.resolver.Resolve(tx, &entry.Resource.Company, entry.WorkSiteID, entry.WorkDate)
	if err != nil {
		// A main-company entry whose schedule was removed afterwards still
		// has its eagerly computed minutes; surface it without a correction.
		if apperr.IsKind(err, apperr.KindConfiguration) {
			resolution = &RuleResolution{}
		} else {
			return nil, err
		}
	}

	var correction *int
	if resolution.Schedule != nil {
		corr := resolution.Schedule.DayCorrectionMinutes
		correction = &corr
	} else if resolution.AppliedRuleID != nil {
		rule, err := s.exists.workRules.GetByID(tx, *resolution.AppliedRuleID)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			corr := rule.DayCorrectionMinutes
			correction = &corr
		}
	}

	return &models.TimeEntryView{
		ID:                entry.ID,
		WorkDate:          clock.FormatDate(entry.WorkDate),
		StartTime:         entry.StartTime,
		EndTime:           entry.EndTime,
		WorkedMinutes:     entry.WorkedMinutes,
		WorkedMinutesMode: entry.WorkedMinutesMode,
		AppliedRuleID:     entry.AppliedRuleID,
		Correction:        correction,
		Comment:           entry.Comment,
		CreatedBy:         entry.CreatedBy,
		WorkSite:          models.Ref{ID: entry.WorkSite.ID, Name: entry.WorkSite.Name},
		Company:           models.Ref{ID: entry.Resource.Company.ID, Name: entry.Resource.Company.Name},
		Resource:          models.Ref{ID: entry.Resource.ID, Name: entry.Resource.Name},
	}, nil
}

// mapWriteError translates normalized constraint kinds into the taxonomy;
// anything else propagates unchanged after rollback.
func (s *TimeEntryService) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.CheckFailed:
		return apperr.NewValidation(msgEndAfterStart)
	case repository.ForeignKeyViolated:
		return apperr.NewValidation(msgTimeEntryInvalid)
	default:
		return err
	}
}
