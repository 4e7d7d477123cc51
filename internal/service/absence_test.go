package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestCreateVacation(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)
	resource := env.createResource(t, "Luis", company)

	view, err := env.vacations.Create(AbsenceCreate{
		ResourceID: resource.ID,
		StartDate:  date(t, "2024-08-01"),
		EndDate:    timePtr(date(t, "2024-08-15")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.StartDate != "2024-08-01" || view.EndDate == nil || *view.EndDate != "2024-08-15" {
		t.Fatalf("unexpected period %s-%v", view.StartDate, view.EndDate)
	}
	if view.Resource.ID != resource.ID {
		t.Fatalf("expected resource ref, got %+v", view.Resource)
	}

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := env.vacations.Create(AbsenceCreate{
			ResourceID: resource.ID,
			StartDate:  date(t, "2024-09-10"),
			EndDate:    timePtr(date(t, "2024-09-01")),
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("overlapping period is a conflict", func(t *testing.T) {
		_, err := env.vacations.Create(AbsenceCreate{
			ResourceID: resource.ID,
			StartDate:  date(t, "2024-08-10"),
			EndDate:    timePtr(date(t, "2024-08-20")),
		})
		if !apperr.IsKind(err, apperr.KindConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("disjoint period is accepted", func(t *testing.T) {
		if _, err := env.vacations.Create(AbsenceCreate{
			ResourceID: resource.ID,
			StartDate:  date(t, "2024-09-01"),
			EndDate:    timePtr(date(t, "2024-09-10")),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	})

	t.Run("open-ended period overlaps everything after it", func(t *testing.T) {
		if _, err := env.vacations.Create(AbsenceCreate{
			ResourceID: resource.ID,
			StartDate:  date(t, "2024-10-01"),
		}); err != nil {
			t.Fatalf("create open-ended: %v", err)
		}

		_, err := env.vacations.Create(AbsenceCreate{
			ResourceID: resource.ID,
			StartDate:  date(t, "2024-12-01"),
			EndDate:    timePtr(date(t, "2024-12-15")),
		})
		if !apperr.IsKind(err, apperr.KindConflict) {
			t.Fatalf("expected conflict against open-ended period, got %v", err)
		}
	})
}

func TestUpdateVacation(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)
	resource := env.createResource(t, "Luis", company)

	first, err := env.vacations.Create(AbsenceCreate{
		ResourceID: resource.ID,
		StartDate:  date(t, "2024-08-01"),
		EndDate:    timePtr(date(t, "2024-08-15")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := env.vacations.Create(AbsenceCreate{
		ResourceID: resource.ID,
		StartDate:  date(t, "2024-09-01"),
		EndDate:    timePtr(date(t, "2024-09-10")),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Its own period never conflicts with itself.
	if _, err := env.vacations.Update(first.ID, AbsencePatch{
		EndDate: models.Some(date(t, "2024-08-20")),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err = env.vacations.Update(second.ID, AbsencePatch{
		StartDate: models.Some(date(t, "2024-08-18")),
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSickLeaveSeparateFromVacations(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)
	resource := env.createResource(t, "Luis", company)

	if _, err := env.vacations.Create(AbsenceCreate{
		ResourceID: resource.ID,
		StartDate:  date(t, "2024-08-01"),
		EndDate:    timePtr(date(t, "2024-08-15")),
	}); err != nil {
		t.Fatalf("create vacation: %v", err)
	}

	// A sick leave may overlap a vacation; the overlap rule is per table.
	if _, err := env.sickLeaves.Create(AbsenceCreate{
		ResourceID: resource.ID,
		StartDate:  date(t, "2024-08-10"),
		EndDate:    timePtr(date(t, "2024-08-12")),
	}); err != nil {
		t.Fatalf("create sick leave: %v", err)
	}

	views, err := env.sickLeaves.GetAllBy(resource.ID, false, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 sick leave, got %d", len(views))
	}
}
