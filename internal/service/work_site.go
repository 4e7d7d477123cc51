package service

import (
	"strings"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	msgWorkSiteDuplicate   = "Ya hay una obra registrada con este código."
	msgWorkSiteUserUnknown = "Uno de los usuarios que se intenta asignar no existe."
)

// WorkSiteCreate is the input for registering a site.
type WorkSiteCreate struct {
	Name      string
	Code      string
	UserIDs   []uint
	StartDate *time.Time
}

// WorkSitePatch is a partial update; a null EndDate reopens the site.
type WorkSitePatch struct {
	Name      models.Optional[string]
	Code      models.Optional[string]
	UserIDs   models.Optional[[]uint]
	StartDate models.Optional[time.Time]
	EndDate   models.Optional[time.Time]
}

type WorkSiteService struct {
	db     *gorm.DB
	sites  *repository.WorkSiteRepository
	users  *repository.UserRepository
	exists *Existence
	logger *logrus.Logger
}

func NewWorkSiteService(
	db *gorm.DB,
	sites *repository.WorkSiteRepository,
	users *repository.UserRepository,
	exists *Existence,
) *WorkSiteService {
	return &WorkSiteService{
		db:     db,
		sites:  sites,
		users:  users,
		exists: exists,
		logger: newLogger(),
	}
}

func (s *WorkSiteService) GetAll(onlyOpen bool) ([]*models.WorkSite, error) {
	return s.sites.GetAll(s.db, onlyOpen)
}

func (s *WorkSiteService) Get(id uint) (*models.WorkSite, error) {
	return s.exists.WorkSite(s.db, id)
}

// GetMine lists the sites the user is assigned to.
func (s *WorkSiteService) GetMine(userID uint) ([]*models.WorkSite, error) {
	return s.sites.FindMyWorkSites(s.db, userID)
}

func (s *WorkSiteService) Create(data WorkSiteCreate) (*models.WorkSite, error) {
	var site *models.WorkSite

	err := s.db.Transaction(func(tx *gorm.DB) error {
		code := strings.TrimSpace(data.Code)

		existing, err := s.sites.GetByCode(tx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.NewValidation(msgWorkSiteDuplicate)
		}

		site = &models.WorkSite{
			Name:      strings.TrimSpace(data.Name),
			Code:      code,
			Open:      true,
			StartDate: data.StartDate,
		}

		if err := s.sites.Create(tx, site); err != nil {
			return err
		}

		return s.assignUsers(tx, site, data.UserIDs)
	})

	if err != nil {
		return nil, err
	}

	return site, nil
}

func (s *WorkSiteService) Update(id uint, patch WorkSitePatch) (*models.WorkSite, error) {
	var site *models.WorkSite

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.exists.WorkSite(tx, id)
		if err != nil {
			return err
		}
		site = existing

		if patch.Name.Set && patch.Name.Valid {
			site.Name = strings.TrimSpace(patch.Name.Value)
		}
		if patch.Code.Set && patch.Code.Valid {
			code := strings.TrimSpace(patch.Code.Value)
			if code != site.Code {
				other, err := s.sites.GetByCode(tx, code)
				if err != nil {
					return err
				}
				if other != nil {
					return apperr.NewValidation(msgWorkSiteDuplicate)
				}
				site.Code = code
			}
		}
		if patch.StartDate.Set {
			if patch.StartDate.Valid {
				start := patch.StartDate.Value
				site.StartDate = &start
			} else {
				site.StartDate = nil
			}
		}
		if patch.EndDate.Set {
			if patch.EndDate.Valid {
				end := patch.EndDate.Value
				site.EndDate = &end
				site.Open = false
			} else {
				// Explicit null reopens the site.
				site.EndDate = nil
				site.Open = true
			}
		}

		if err := s.sites.Update(tx, site); err != nil {
			return err
		}

		if patch.UserIDs.Set && patch.UserIDs.Valid {
			if err := s.assignUsers(tx, site, patch.UserIDs.Value); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return site, nil
}

// assignUsers syncs the assigned-user set, rejecting unknown ids the way a
// foreign-key violation would.
func (s *WorkSiteService) assignUsers(tx *gorm.DB, site *models.WorkSite, userIDs []uint) error {
	if userIDs == nil {
		return nil
	}

	users, err := s.users.GetByIDs(tx, userIDs)
	if err != nil {
		return err
	}
	if len(users) != len(userIDs) {
		return apperr.NewValidation(msgWorkSiteUserUnknown)
	}

	if err := s.sites.ReplaceUsers(tx, site, users); err != nil {
		return err
	}

	site.Users = make([]models.User, 0, len(users))
	for _, user := range users {
		site.Users = append(site.Users, *user)
	}

	return nil
}
