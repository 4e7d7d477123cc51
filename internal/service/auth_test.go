package service

import (
	"testing"

	"time-control-api/internal/apperr"
	"time-control-api/internal/config"
	"time-control-api/internal/models"
)

func newAuth(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	return NewAuthService(env.db, env.users, &config.AppConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuth(t, env)
	users := NewUserService(env.db, env.users)

	if _, err := users.Create(UserCreate{
		Email:    "capataz@obra.es",
		Name:     "Capataz",
		Password: "Seguro123",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		token, user, err := auth.Login("capataz@obra.es", "Seguro123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" {
			t.Fatal("expected a token")
		}

		session, err := auth.ValidateToken(token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if session.ID != user.ID {
			t.Fatalf("token resolves to user %d, want %d", session.ID, user.ID)
		}
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		if _, _, err := auth.Login("Capataz@Obra.es", "Seguro123"); err != nil {
			t.Fatalf("login: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.Login("capataz@obra.es", "Incorrecta1")
		if !apperr.IsKind(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := auth.Login("nadie@obra.es", "Seguro123")
		if !apperr.IsKind(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := auth.ValidateToken("not-a-token"); !apperr.IsKind(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestLoginDisabledUser(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuth(t, env)
	users := NewUserService(env.db, env.users)

	user, err := users.Create(UserCreate{
		Email:    "capataz@obra.es",
		Name:     "Capataz",
		Password: "Seguro123",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, _, err := auth.Login("capataz@obra.es", "Seguro123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := users.Update(user.ID, UserPatch{Active: models.Some(false)}); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	if _, _, err := auth.Login("capataz@obra.es", "Seguro123"); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized after disable, got %v", err)
	}

	// A live token dies with its user.
	if _, err := auth.ValidateToken(token); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized token, got %v", err)
	}
}

func TestSeedAdmin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuth(t, env)
	cfg := &config.AppConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		AdminEmail:    "admin@obra.es",
		AdminPassword: "Seguro123",
	}

	if err := auth.SeedAdmin(cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Idempotent.
	if err := auth.SeedAdmin(cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	_, user, err := auth.Login("admin@obra.es", "Seguro123")
	if err != nil {
		t.Fatalf("login as seeded admin: %v", err)
	}
	if !user.IsAdmin() {
		t.Fatalf("seeded user must be admin, got role %q", user.Role)
	}
}
