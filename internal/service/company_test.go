package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestCreateCompany(t *testing.T) {
	env := newTestEnv(t)

	company, err := env.companyService.Create("Encofrados SL")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !company.Active || company.IsMain {
		t.Fatalf("new companies start active and regular, got %+v", company)
	}

	if _, err := env.companyService.Create("Encofrados SL"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error on duplicate name, got %v", err)
	}
}

func TestUpdateMainCompanyRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	main := env.createCompany(t, "Construcciones Principal", true)

	_, err := env.companyService.Update(main.ID, CompanyPatch{
		Name: models.Some("Otro nombre"),
	}, false)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}

	updated, err := env.companyService.Update(main.ID, CompanyPatch{
		Name: models.Some("Otro nombre"),
	}, true)
	if err != nil {
		t.Fatalf("update as admin: %v", err)
	}
	if updated.Name != "Otro nombre" {
		t.Fatalf("expected renamed company, got %q", updated.Name)
	}
}

func TestDeleteCompany(t *testing.T) {
	env := newTestEnv(t)
	main := env.createCompany(t, "Construcciones Principal", true)
	regular := env.createCompany(t, "Encofrados SL", false)

	if _, err := env.companyService.Delete(main.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("main company must not be disableable, got %v", err)
	}

	disabled, err := env.companyService.Delete(regular.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if disabled.Active {
		t.Fatal("delete must disable, not remove")
	}

	if _, err := env.companyService.Delete(regular.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error on double disable, got %v", err)
	}

	// The disabled company is still readable; history keeps pointing at it.
	if _, err := env.companyService.Get(regular.ID); err != nil {
		t.Fatalf("get after disable: %v", err)
	}
}

func TestGetCompanyResources(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)

	if _, err := env.companyService.GetResources(company.ID, false); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for a company without resources, got %v", err)
	}

	env.createResource(t, "Luis", company)

	resources, err := env.companyService.GetResources(company.ID, false)
	if err != nil {
		t.Fatalf("get resources: %v", err)
	}
	if len(resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(resources))
	}
}
