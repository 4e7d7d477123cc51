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
	msgResourceInvalid    = "Datos del trabajador o recurso no válidos."
	msgResourceAlreadyOff = "El trabajador o recurso ya está deshabilitado."
)

// ResourceCreate carries a new worker or equipment entry.
type ResourceCreate struct {
	Name         string
	CompanyID    uint
	ResourceType string
	Category     *string
}

// ResourcePatch is a partial update. Moving a resource to another company is
// allowed; existing time entries keep their history.
type ResourcePatch struct {
	Name         models.Optional[string]
	CompanyID    models.Optional[uint]
	ResourceType models.Optional[string]
	Category     models.Optional[string]
	Active       models.Optional[bool]
}

type ResourceService struct {
	db        *gorm.DB
	resources *repository.ResourceRepository
	exists    *Existence
	logger    *logrus.Logger
}

func NewResourceService(
	db *gorm.DB,
	resources *repository.ResourceRepository,
	exists *Existence,
) *ResourceService {
	return &ResourceService{
		db:        db,
		resources: resources,
		exists:    exists,
		logger:    newLogger(),
	}
}

func (s *ResourceService) GetAll(onlyActive bool) ([]*models.Resource, error) {
	return s.resources.GetAll(s.db, onlyActive)
}

func (s *ResourceService) Get(id uint) (*models.Resource, error) {
	return s.exists.Resource(s.db, id)
}

func (s *ResourceService) Create(input ResourceCreate) (*models.Resource, error) {
	var resource *models.Resource

	err := s.db.Transaction(func(tx *gorm.DB) error {
		company, err := s.exists.Company(tx, input.CompanyID, models.CompanyAny)
		if err != nil {
			return err
		}

		resource = &models.Resource{
			Name:         strings.TrimSpace(input.Name),
			CompanyID:    company.ID,
			ResourceType: input.ResourceType,
			Category:     input.Category,
			Active:       true,
		}
		if !resource.IsValid() {
			return apperr.NewValidation(msgResourceInvalid)
		}

		if err := s.resources.Create(tx, resource); err != nil {
			return s.mapWriteError(err)
		}

		resource.Company = *company
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *ResourceService) Update(id uint, patch ResourcePatch) (*models.Resource, error) {
	var resource *models.Resource

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Resource(tx, id)
		if err != nil {
			return err
		}

		if patch.Name.Set && patch.Name.Valid {
			existing.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.CompanyID.Set && patch.CompanyID.Valid {
			company, err := s.exists.Company(tx, patch.CompanyID.Value, models.CompanyAny)
			if err != nil {
				return err
			}
			existing.CompanyID = company.ID
			existing.Company = *company
		}
		if patch.ResourceType.Set && patch.ResourceType.Valid {
			existing.ResourceType = patch.ResourceType.Value
		}
		if patch.Category.Set {
			if patch.Category.Valid {
				category := patch.Category.Value
				existing.Category = &category
			} else {
				existing.Category = nil
			}
		}
		if patch.Active.Set && patch.Active.Valid {
			existing.Active = patch.Active.Value
		}

		if !existing.IsValid() {
			return apperr.NewValidation(msgResourceInvalid)
		}

		if err := s.resources.Update(tx, existing); err != nil {
			return s.mapWriteError(err)
		}

		resource = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *ResourceService) Delete(id uint) (*models.Resource, error) {
	var resource *models.Resource

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Resource(tx, id)
		if err != nil {
			return err
		}

		if !existing.Active {
			return apperr.NewValidation(msgResourceAlreadyOff)
		}

		if err := s.resources.Disable(tx, id); err != nil {
			return err
		}

		existing.Active = false
		resource = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *ResourceService) mapWriteError(err error) error {
	switch repository.ViolationKind(err) {
	case repository.CheckFailed, repository.ForeignKeyViolated:
		return apperr.NewValidation(msgResourceInvalid)
	default:
		return err
	}
}
