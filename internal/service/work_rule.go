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
	msgWorkRuleNotFound = "No se encuentra esta regla de horario."
	msgWorkRulePeriod   = "La fecha de finalización debe ser posterior a la de comienzo."
)

// WorkRuleCreate carries a new correction rule for a (work site, company) pair.
type WorkRuleCreate struct {
	WorkSiteID           uint
	CompanyID            uint
	DayCorrectionMinutes int
	ValidFrom            time.Time
	ValidTo              *time.Time
}

// WorkRulePatch is a partial update. ValidTo accepts an explicit null to
// reopen the validity window.
type WorkRulePatch struct {
	DayCorrectionMinutes models.Optional[int]
	ValidFrom            models.Optional[time.Time]
	ValidTo              models.Optional[time.Time]
}

// RuleResolutionView is what a client sees before recording a day: which rule
// (if any) governs the date, or the schedule times for the main company.
type RuleResolutionView struct {
	AppliedRuleID        *uint   `json:"applied_rule_id"`
	DayCorrectionMinutes int     `json:"day_correction_minutes"`
	StartTime            *string `json:"start_time,omitempty"`
	EndTime              *string `json:"end_time,omitempty"`
}

type WorkRuleService struct {
	db        *gorm.DB
	workRules *repository.WorkRuleRepository
	resolver  *RuleResolver
	exists    *Existence
	logger    *logrus.Logger
}

func NewWorkRuleService(
	db *gorm.DB,
	workRules *repository.WorkRuleRepository,
	resolver *RuleResolver,
	exists *Existence,
) *WorkRuleService {
	return &WorkRuleService{
		db:        db,
		workRules: workRules,
		resolver:  resolver,
		exists:    exists,
		logger:    newLogger(),
	}
}

func (s *WorkRuleService) Get(id uint) (*models.WorkRuleView, error) {
	rule, err := s.exists.WorkRule(s.db, id)
	if err != nil {
		return nil, err
	}
	return buildWorkRuleView(rule), nil
}

func (s *WorkRuleService) GetAllBy(filters repository.WorkRuleFilters) ([]*models.WorkRuleView, error) {
	var views []*models.WorkRuleView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if filters.WorkSiteID != 0 {
			if _, err := s.exists.WorkSite(tx, filters.WorkSiteID); err != nil {
				return err
			}
		}
		if filters.CompanyID != 0 {
			if _, err := s.exists.Company(tx, filters.CompanyID, models.CompanyRegular); err != nil {
				return err
			}
		}

		rules, err := s.workRules.GetAll(tx, filters)
		if err != nil {
			return err
		}

		views = make([]*models.WorkRuleView, 0, len(rules))
		for _, rule := range rules {
			views = append(views, buildWorkRuleView(rule))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return views, nil
}

// Resolve previews which rule governs a (work site, company, date) tuple so a
// client can pre-fill a day before recording it.
func (s *WorkRuleService) Resolve(workSiteID, companyID uint, date time.Time) (*RuleResolutionView, error) {
	var view *RuleResolutionView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.exists.WorkSite(tx, workSiteID); err != nil {
			return err
		}
		company, err := s.exists.Company(tx, companyID, models.CompanyAny)
		if err != nil {
			return err
		}

		resolution, err := s.resolver.Resolve(tx, company, workSiteID, clock.DateOnly(date))
		if err != nil {
			return err
		}

		view = &RuleResolutionView{}
		if resolution.Schedule != nil {
			view.DayCorrectionMinutes = resolution.Schedule.DayCorrectionMinutes
			view.StartTime = &resolution.Schedule.StartTime
			view.EndTime = &resolution.Schedule.EndTime
			return nil
		}
		if resolution.AppliedRuleID != nil {
			rule, err := s.exists.WorkRule(tx, *resolution.AppliedRuleID)
			if err != nil {
				return err
			}
			view.AppliedRuleID = resolution.AppliedRuleID
			view.DayCorrectionMinutes = rule.DayCorrectionMinutes
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *WorkRuleService) Create(input WorkRuleCreate) (*models.WorkRuleView, error) {
	var view *models.WorkRuleView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		site, err := s.exists.WorkSite(tx, input.WorkSiteID)
		if err != nil {
			return err
		}
		company, err := s.exists.Company(tx, input.CompanyID, models.CompanyRegular)
		if err != nil {
			return err
		}

		rule := &models.WorkRule{
			WorkSiteID:           site.ID,
			CompanyID:            company.ID,
			DayCorrectionMinutes: input.DayCorrectionMinutes,
			ValidFrom:            clock.DateOnly(input.ValidFrom),
		}
		if input.ValidTo != nil {
			validTo := clock.DateOnly(*input.ValidTo)
			rule.ValidTo = &validTo
		}

		if err := validateRuleWindow(rule.ValidFrom, rule.ValidTo); err != nil {
			return err
		}

		if err := s.workRules.Create(tx, rule); err != nil {
			return s.mapWriteError(err)
		}

		rule.WorkSite = *site
		rule.Company = *company
		view = buildWorkRuleView(rule)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *WorkRuleService) Update(id uint, patch WorkRulePatch) (*models.WorkRuleView, error) {
	var view *models.WorkRuleView

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.WorkRule(tx, id)
		if err != nil {
			return err
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

		if err := validateRuleWindow(existing.ValidFrom, existing.ValidTo); err != nil {
			return err
		}

		if err := s.workRules.Update(tx, existing); err != nil {
			return s.mapWriteError(err)
		}

		view = buildWorkRuleView(existing)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// Delete removes the rule. Time entries that applied it keep their pointer
// nulled by the schema, and their correction simply disappears from derived
// worked minutes.
func (s *WorkRuleService) Delete(id uint) (uint, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deleted, err := s.workRules.Delete(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NewNotFound(msgWorkRuleNotFound)
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	return id, nil
}

func validateRuleWindow(from time.Time, to *time.Time) error {
	if to != nil && to.Before(from) {
		return apperr.NewValidation(msgWorkRulePeriod)
	}
	return nil
}

func (s *WorkRuleService) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.CheckFailed, repository.ForeignKeyViolated:
		return apperr.NewValidation(msgWorkRulePeriod)
	default:
		return err
	}
}

func buildWorkRuleView(rule *models.WorkRule) *models.WorkRuleView {
	view := &models.WorkRuleView{
		ID:                   rule.ID,
		DayCorrectionMinutes: rule.DayCorrectionMinutes,
		ValidFrom:            clock.FormatDate(rule.ValidFrom),
		WorkSite:             models.Ref{ID: rule.WorkSiteID, Name: rule.WorkSite.Name},
		Company:              models.Ref{ID: rule.CompanyID, Name: rule.Company.Name},
	}
	if rule.ValidTo != nil {
		formatted := clock.FormatDate(*rule.ValidTo)
		view.ValidTo = &formatted
	}
	return view
}
