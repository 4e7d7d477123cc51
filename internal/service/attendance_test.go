package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestCreateCompanyAttendance(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "jefe@obra.es", models.RoleAdmin)
	site := env.createSite(t, "North yard", "WS1")
	company := env.createCompany(t, "Encofrados SL", false)
	main := env.createCompany(t, "Construcciones Principal", true)

	t.Run("main company may not report attendance", func(t *testing.T) {
		_, err := env.companyAttendance.Create(AttendanceCreate{
			WorkSiteID:   site.ID,
			PartyID:      main.ID,
			Date:         date(t, "2024-03-01"),
			WorkersCount: 5,
			UserID:       user.ID,
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("regular company reports a headcount", func(t *testing.T) {
		view, err := env.companyAttendance.Create(AttendanceCreate{
			WorkSiteID:   site.ID,
			PartyID:      company.ID,
			Date:         date(t, "2024-03-01"),
			WorkersCount: 5,
			UserID:       user.ID,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if view.WorkersCount != 5 || view.Party.ID != company.ID || view.WorkSite.ID != site.ID {
			t.Fatalf("unexpected view %+v", view)
		}
	})

	t.Run("same site and day is a conflict", func(t *testing.T) {
		_, err := env.companyAttendance.Create(AttendanceCreate{
			WorkSiteID:   site.ID,
			PartyID:      company.ID,
			Date:         date(t, "2024-03-01"),
			WorkersCount: 7,
			UserID:       user.ID,
		})
		if !apperr.IsKind(err, apperr.KindConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("negative headcount is rejected", func(t *testing.T) {
		_, err := env.companyAttendance.Create(AttendanceCreate{
			WorkSiteID:   site.ID,
			PartyID:      company.ID,
			Date:         date(t, "2024-03-02"),
			WorkersCount: -1,
			UserID:       user.ID,
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestContractorAttendance(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "jefe@obra.es", models.RoleAdmin)
	site := env.createSite(t, "North yard", "WS1")
	contractor := env.createContractor(t, "Andamios Norte")

	view, err := env.contractorAttendance.Create(AttendanceCreate{
		WorkSiteID:   site.ID,
		PartyID:      contractor.ID,
		Date:         date(t, "2024-03-01"),
		WorkersCount: 3,
		UserID:       user.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Party.Name != contractor.Name {
		t.Fatalf("expected contractor ref, got %+v", view.Party)
	}

	updated, err := env.contractorAttendance.Update(view.ID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.WorkersCount != 4 {
		t.Fatalf("expected 4 workers, got %d", updated.WorkersCount)
	}

	if _, err := env.contractorAttendance.Update(view.ID, -2); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := env.contractorAttendance.Delete(view.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.contractorAttendance.Get(view.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestAttendanceListingAuthorization(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@obra.es", models.RoleAdmin)
	worker := env.createUser(t, "capataz@obra.es", models.RoleUser)
	site := env.createSite(t, "North yard", "WS1", worker)
	company := env.createCompany(t, "Encofrados SL", false)

	if _, err := env.companyAttendance.Create(AttendanceCreate{
		WorkSiteID:   site.ID,
		PartyID:      company.ID,
		Date:         date(t, "2024-03-01"),
		WorkersCount: 5,
		UserID:       admin.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.companyAttendance.GetAllBy(worker, 0, 0, nil); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden without a site, got %v", err)
	}

	views, err := env.companyAttendance.GetAllBy(worker, site.ID, 0, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 record, got %d", len(views))
	}

	period := &models.Period{From: date(t, "2024-03-02"), To: date(t, "2024-03-31")}
	views, err = env.companyAttendance.GetAllBy(admin, site.ID, company.ID, period)
	if err != nil {
		t.Fatalf("list with period: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected period filter to exclude the record, got %d", len(views))
	}
}
