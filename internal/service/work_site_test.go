package service

import (
	"testing"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestCreateWorkSite(t *testing.T) {
	env := newTestEnv(t)
	worker := env.createUser(t, "capataz@obra.es", models.RoleUser)

	site, err := env.workSiteService.Create(WorkSiteCreate{
		Name:    "North yard",
		Code:    "WS1",
		UserIDs: []uint{worker.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !site.Open {
		t.Fatal("new sites must start open")
	}
	if len(site.Users) != 1 || site.Users[0].ID != worker.ID {
		t.Fatalf("expected assigned user, got %+v", site.Users)
	}

	t.Run("duplicate code is rejected", func(t *testing.T) {
		_, err := env.workSiteService.Create(WorkSiteCreate{Name: "Other", Code: "WS1"})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown user id is rejected", func(t *testing.T) {
		_, err := env.workSiteService.Create(WorkSiteCreate{
			Name:    "Other",
			Code:    "WS2",
			UserIDs: []uint{999},
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUpdateWorkSiteEndDate(t *testing.T) {
	env := newTestEnv(t)

	site, err := env.workSiteService.Create(WorkSiteCreate{Name: "North yard", Code: "WS1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	closed, err := env.workSiteService.Update(site.ID, WorkSitePatch{
		EndDate: models.Some(date(t, "2024-12-31")),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if closed.Open || closed.EndDate == nil {
		t.Fatalf("setting an end date must close the site, got %+v", closed)
	}

	reopened, err := env.workSiteService.Update(site.ID, WorkSitePatch{
		EndDate: models.Null[time.Time](),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reopened.Open || reopened.EndDate != nil {
		t.Fatalf("null end date must reopen the site, got %+v", reopened)
	}
}

func TestGetMyWorkSites(t *testing.T) {
	env := newTestEnv(t)
	worker := env.createUser(t, "capataz@obra.es", models.RoleUser)
	env.createSite(t, "North yard", "WS1", worker)
	env.createSite(t, "South yard", "WS2")

	mine, err := env.workSiteService.GetMine(worker.ID)
	if err != nil {
		t.Fatalf("get mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Code != "WS1" {
		t.Fatalf("expected only the assigned site, got %+v", mine)
	}
}
