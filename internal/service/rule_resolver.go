package service

import (
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const msgMainNeedsSchedule = "La empresa principal debe tener siempre un horario activo. Avise a un administrador."

// RuleResolution is the outcome of resolving a (company, site, date) tuple.
// Exactly one of the fields is meaningful: AppliedRuleID for regular
// companies, Schedule for the main company. Callers branch on
// company.IsMain, never on which field is set.
type RuleResolution struct {
	AppliedRuleID *uint
	Schedule      *models.Schedule
}

// RuleResolver decides which business rule governs a work day: an ad-hoc
// correction rule for regular companies, the fixed schedule for the main one.
type RuleResolver struct {
	workRules *repository.WorkRuleRepository
	schedules *repository.ScheduleRepository
	logger    *logrus.Logger
}

func NewRuleResolver(workRules *repository.WorkRuleRepository, schedules *repository.ScheduleRepository) *RuleResolver {
	return &RuleResolver{
		workRules: workRules,
		schedules: schedules,
		logger:    newLogger(),
	}
}

// Resolve never fails for a regular company: an unruled day is legal and the
// correction simply defaults to zero. For the main company a missing active
// schedule is a data-setup defect and resolution fails.
func (rr *RuleResolver) Resolve(tx *gorm.DB, company *models.Company, workSiteID uint, workDate time.Time) (*RuleResolution, error) {
	if !company.IsMain {
		rules, err := rr.workRules.ValidAt(tx, workSiteID, company.ID, workDate)
		if err != nil {
			return nil, err
		}

		if len(rules) == 0 {
			return &RuleResolution{}, nil
		}

		if len(rules) > 1 {
			// Validity windows should never overlap; flag the data problem
			// and keep the deterministic first match.
			rr.logger.WithFields(logrus.Fields{
				"work_site_id": workSiteID,
				"company_id":   company.ID,
				"work_date":    workDate.Format("2006-01-02"),
				"matches":      len(rules),
			}).Warn("More than one work rule valid for date, taking the newest")
		}

		ruleID := rules[0].ID
		return &RuleResolution{AppliedRuleID: &ruleID}, nil
	}

	schedule, err := rr.schedules.ActiveFor(tx, company.ID, workDate)
	if err != nil {
		return nil, err
	}

	if schedule == nil {
		rr.logger.WithFields(logrus.Fields{
			"company_id": company.ID,
			"work_date":  workDate.Format("2006-01-02"),
		}).Error("Main company has no active schedule")
		return nil, apperr.NewConfiguration(msgMainNeedsSchedule)
	}

	return &RuleResolution{Schedule: schedule}, nil
}
