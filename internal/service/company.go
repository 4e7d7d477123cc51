package service

import (
	"strings"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	msgCompanyDuplicate   = "Ya hay una empresa registrada con este nombre."
	msgCompanyMainProtect = "No tiene permiso para modificar la empresa principal."
	msgCompanyMainDisable = "No se puede deshabilitar la empresa principal."
	msgCompanyAlreadyOff  = "La empresa ya está deshabilitada."
	msgCompanyNoResources = "La empresa no tiene trabajadores."
)

// CompanyPatch is a partial update.
type CompanyPatch struct {
	Name   models.Optional[string]
	IsMain models.Optional[bool]
	Active models.Optional[bool]
}

type CompanyService struct {
	db        *gorm.DB
	companies *repository.CompanyRepository
	resources *repository.ResourceRepository
	exists    *Existence
	logger    *logrus.Logger
}

func NewCompanyService(
	db *gorm.DB,
	companies *repository.CompanyRepository,
	resources *repository.ResourceRepository,
	exists *Existence,
) *CompanyService {
	return &CompanyService{
		db:        db,
		companies: companies,
		resources: resources,
		exists:    exists,
		logger:    newLogger(),
	}
}

func (s *CompanyService) GetAll(onlyActive bool) ([]*models.Company, error) {
	return s.companies.GetAll(s.db, onlyActive)
}

func (s *CompanyService) Get(id uint) (*models.Company, error) {
	return s.exists.Company(s.db, id, models.CompanyAny)
}

// GetResources lists a company's resources; a company with none is a data
// problem the caller must hear about.
func (s *CompanyService) GetResources(id uint, onlyActive bool) ([]*models.Resource, error) {
	var resources []*models.Resource

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.exists.Company(tx, id, models.CompanyAny); err != nil {
			return err
		}

		found, err := s.resources.GetByCompany(tx, id, onlyActive)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return apperr.NewValidation(msgCompanyNoResources)
		}

		resources = found
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (s *CompanyService) Create(name string) (*models.Company, error) {
	var company *models.Company

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trimmed := strings.TrimSpace(name)

		existing, err := s.companies.GetByName(tx, trimmed)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.NewValidation(msgCompanyDuplicate)
		}

		company = &models.Company{Name: trimmed, Active: true}
		return s.companies.Create(tx, company)
	})

	if err != nil {
		return nil, err
	}

	return company, nil
}

// Update patches the company. Only admins may touch the main company.
func (s *CompanyService) Update(id uint, patch CompanyPatch, isAdmin bool) (*models.Company, error) {
	var company *models.Company

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Company(tx, id, models.CompanyAny)
		if err != nil {
			return err
		}

		if existing.IsMain && !isAdmin {
			return apperr.NewForbidden(msgCompanyMainProtect)
		}

		if patch.Name.Set && patch.Name.Valid {
			existing.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.IsMain.Set && patch.IsMain.Valid {
			existing.IsMain = patch.IsMain.Value
		}
		if patch.Active.Set && patch.Active.Valid {
			existing.Active = patch.Active.Value
		}

		if err := s.companies.Update(tx, existing); err != nil {
			if repository.ViolationKind(err) == repository.UniqueViolated {
				return apperr.NewValidation(msgCompanyDuplicate)
			}
			return err
		}

		company = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return company, nil
}

// Delete disables the company instead of removing it; history keeps pointing
// at it.
func (s *CompanyService) Delete(id uint) (*models.Company, error) {
	var company *models.Company

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Company(tx, id, models.CompanyAny)
		if err != nil {
			return err
		}

		if existing.IsMain {
			return apperr.NewValidation(msgCompanyMainDisable)
		}
		if !existing.Active {
			return apperr.NewValidation(msgCompanyAlreadyOff)
		}

		if err := s.companies.Disable(tx, id); err != nil {
			return err
		}

		existing.Active = false
		company = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return company, nil
}
