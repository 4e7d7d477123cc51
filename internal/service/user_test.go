package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid with number", "Seguro123", true},
		{"valid with symbol", "Seguro!!!", true},
		{"too short", "Ab1!", false},
		{"missing uppercase", "seguro123", false},
		{"missing lowercase", "SEGURO123", false},
		{"missing number or symbol", "SeguroSeguro", false},
		{"space forbidden", "Seguro 123", false},
		{"quote forbidden", "Seguro'123", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db, env.users)

	user, err := users.Create(UserCreate{
		Email:    "Capataz@Obra.es",
		Name:     "Capataz",
		Password: "Seguro123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "capataz@obra.es" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("default role must be user, got %q", user.Role)
	}
	if user.PasswordHash == "Seguro123" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := users.Create(UserCreate{
			Email:    "capataz@obra.es",
			Name:     "Otro",
			Password: "Seguro123",
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := users.Create(UserCreate{
			Email:    "otro@obra.es",
			Name:     "Otro",
			Password: "Seguro123",
			Role:     "superuser",
		})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.db, env.users)

	user, err := users.Create(UserCreate{
		Email:    "capataz@obra.es",
		Name:     "Capataz",
		Password: "Seguro123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := users.Update(user.ID, UserPatch{
		Role:   models.Some(models.RoleAdmin),
		Active: models.Some(false),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsAdmin() || updated.Active {
		t.Fatalf("unexpected state after update: %+v", updated)
	}

	if _, err := users.Update(user.ID, UserPatch{
		Password: models.Some("corta"),
	}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for weak password, got %v", err)
	}

	if _, err := users.Update(999, UserPatch{}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
