package service

import (
	"time-control-api/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Forbidden message shared by every site-scoped listing.
const msgSiteForbidden = "Solo estás autorizado a obtener registros de obras en las que estás asignado."

// AuthorizationGuard decides whether a non-admin caller may touch a site's
// records. A missing site id is always unauthorized: the system never hands a
// non-admin an unscoped view.
type AuthorizationGuard struct {
	workSites *repository.WorkSiteRepository
	logger    *logrus.Logger
}

func NewAuthorizationGuard(workSites *repository.WorkSiteRepository) *AuthorizationGuard {
	return &AuthorizationGuard{
		workSites: workSites,
		logger:    newLogger(),
	}
}

func (g *AuthorizationGuard) IsAuthorizedForSite(tx *gorm.DB, userID, workSiteID uint) (bool, error) {
	if workSiteID == 0 {
		return false, nil
	}

	sites, err := g.workSites.FindMyWorkSites(tx, userID)
	if err != nil {
		return false, err
	}

	for _, site := range sites {
		if site.ID == workSiteID {
			return true, nil
		}
	}

	g.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"work_site_id": workSiteID,
	}).Debug("User not assigned to work site")

	return false, nil
}
