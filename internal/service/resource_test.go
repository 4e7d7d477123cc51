package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestCreateResource(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)

	resource, err := env.resourceService.Create(ResourceCreate{
		Name:         "  Luis  ",
		CompanyID:    company.ID,
		ResourceType: models.ResourceWorker,
		Category:     strPtr("oficial"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resource.Name != "Luis" {
		t.Fatalf("expected trimmed name, got %q", resource.Name)
	}
	if resource.Category == nil || *resource.Category != "oficial" {
		t.Fatalf("expected category oficial, got %v", resource.Category)
	}
	if !resource.Active {
		t.Fatal("new resource must start active")
	}

	t.Run("category is optional", func(t *testing.T) {
		uncategorized, err := env.resourceService.Create(ResourceCreate{
			Name:         "Grúa torre",
			CompanyID:    company.ID,
			ResourceType: models.ResourceEquipment,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if uncategorized.Category != nil {
			t.Fatalf("expected no category, got %q", *uncategorized.Category)
		}
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := env.resourceService.Create(ResourceCreate{
			Name:         "Luisa",
			CompanyID:    company.ID,
			ResourceType: "contraption",
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUpdateResourceCategory(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)
	resource, err := env.resourceService.Create(ResourceCreate{
		Name:         "Luis",
		CompanyID:    company.ID,
		ResourceType: models.ResourceWorker,
		Category:     strPtr("peón"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.resourceService.Update(resource.ID, ResourcePatch{
		Category: models.Some("oficial"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Category == nil || *updated.Category != "oficial" {
		t.Fatalf("expected category oficial, got %v", updated.Category)
	}

	t.Run("explicit null clears the category", func(t *testing.T) {
		cleared, err := env.resourceService.Update(resource.ID, ResourcePatch{
			Category: models.Null[string](),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if cleared.Category != nil {
			t.Fatalf("expected cleared category, got %q", *cleared.Category)
		}
	})

	t.Run("absent field leaves the name alone", func(t *testing.T) {
		same, err := env.resourceService.Update(resource.ID, ResourcePatch{
			Active: models.Some(true),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if same.Name != "Luis" {
			t.Fatalf("name must be untouched, got %q", same.Name)
		}
	})
}

func TestDeleteResource(t *testing.T) {
	env := newTestEnv(t)
	company := env.createCompany(t, "Encofrados SL", false)
	resource := env.createResource(t, "Luis", company)

	disabled, err := env.resourceService.Delete(resource.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if disabled.Active {
		t.Fatal("delete must disable the resource")
	}

	if _, err := env.resourceService.Delete(resource.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation on second delete, got %v", err)
	}
}
