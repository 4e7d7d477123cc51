package service

import (
	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"gorm.io/gorm"
)

// Existence bundles the existence assertions the engines share. Each assert
// doubles as a fetch: callers use the returned entity instead of looking it
// up again.
type Existence struct {
	workSites   *repository.WorkSiteRepository
	companies   *repository.CompanyRepository
	contractors *repository.ContractorRepository
	resources   *repository.ResourceRepository
	workRules   *repository.WorkRuleRepository
}

func NewExistence(
	workSites *repository.WorkSiteRepository,
	companies *repository.CompanyRepository,
	contractors *repository.ContractorRepository,
	resources *repository.ResourceRepository,
	workRules *repository.WorkRuleRepository,
) *Existence {
	return &Existence{
		workSites:   workSites,
		companies:   companies,
		contractors: contractors,
		resources:   resources,
		workRules:   workRules,
	}
}

func (e *Existence) WorkSite(tx *gorm.DB, id uint) (*models.WorkSite, error) {
	site, err := e.workSites.GetByID(tx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperr.NewNotFound("No se encuentra esta obra.")
	}
	return site, nil
}

func (e *Existence) Company(tx *gorm.DB, id uint, kind models.CompanyKind) (*models.Company, error) {
	company, err := e.companies.GetByID(tx, id)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Matches(kind) {
		return nil, apperr.NewNotFound("No se encuentra esta empresa.")
	}
	return company, nil
}

func (e *Existence) Contractor(tx *gorm.DB, id uint) (*models.Contractor, error) {
	contractor, err := e.contractors.GetByID(tx, id)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, apperr.NewNotFound("No se encuentra esta subcontrata.")
	}
	return contractor, nil
}

// Resource loads the resource with its owning company preloaded.
func (e *Existence) Resource(tx *gorm.DB, id uint) (*models.Resource, error) {
	resource, err := e.resources.GetByID(tx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, apperr.NewNotFound("No se encuentra este trabajador o recurso.")
	}
	return resource, nil
}

func (e *Existence) WorkRule(tx *gorm.DB, id uint) (*models.WorkRule, error) {
	rule, err := e.workRules.GetByID(tx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperr.NewNotFound("No se encuentra esta regla de horario.")
	}
	return rule, nil
}
