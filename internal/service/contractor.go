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
	msgContractorDuplicate  = "Ya hay una subcontrata registrada con este nombre."
	msgContractorAlreadyOff = "La subcontrata ya está deshabilitada."
)

// ContractorPatch is a partial update.
type ContractorPatch struct {
	Name   models.Optional[string]
	Active models.Optional[bool]
}

type ContractorService struct {
	db          *gorm.DB
	contractors *repository.ContractorRepository
	exists      *Existence
	logger      *logrus.Logger
}

func NewContractorService(
	db *gorm.DB,
	contractors *repository.ContractorRepository,
	exists *Existence,
) *ContractorService {
	return &ContractorService{
		db:          db,
		contractors: contractors,
		exists:      exists,
		logger:      newLogger(),
	}
}

func (s *ContractorService) GetAll(onlyActive bool) ([]*models.Contractor, error) {
	return s.contractors.GetAll(s.db, onlyActive)
}

func (s *ContractorService) Get(id uint) (*models.Contractor, error) {
	return s.exists.Contractor(s.db, id)
}

func (s *ContractorService) Create(name string) (*models.Contractor, error) {
	var contractor *models.Contractor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trimmed := strings.TrimSpace(name)

		existing, err := s.contractors.GetByName(tx, trimmed)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.NewValidation(msgContractorDuplicate)
		}

		contractor = &models.Contractor{Name: trimmed, Active: true}
		return s.contractors.Create(tx, contractor)
	})

	if err != nil {
		return nil, err
	}

	return contractor, nil
}

func (s *ContractorService) Update(id uint, patch ContractorPatch) (*models.Contractor, error) {
	var contractor *models.Contractor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Contractor(tx, id)
		if err != nil {
			return err
		}

		if patch.Name.Set && patch.Name.Valid {
			existing.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.Active.Set && patch.Active.Valid {
			existing.Active = patch.Active.Value
		}

		if err := s.contractors.Update(tx, existing); err != nil {
			if repository.ViolationKind(err) == repository.UniqueViolated {
				return apperr.NewValidation(msgContractorDuplicate)
			}
			return err
		}

		contractor = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return contractor, nil
}

func (s *ContractorService) Delete(id uint) (*models.Contractor, error) {
	var contractor *models.Contractor

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.Contractor(tx, id)
		if err != nil {
			return err
		}

		if !existing.Active {
			return apperr.NewValidation(msgContractorAlreadyOff)
		}

		if err := s.contractors.Disable(tx, id); err != nil {
			return err
		}

		existing.Active = false
		contractor = existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	return contractor, nil
}
