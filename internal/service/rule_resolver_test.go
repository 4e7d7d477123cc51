package service

import (
	"testing"

	"time-control-api/internal/apperr"
)

func TestResolveRegularCompany(t *testing.T) {
	env := newTestEnv(t)
	site := env.createSite(t, "North yard", "WS1")
	company := env.createCompany(t, "Encofrados SL", false)

	t.Run("unruled day resolves to nothing", func(t *testing.T) {
		resolution, err := env.resolver.Resolve(env.db, company, site.ID, date(t, "2024-03-01"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.AppliedRuleID != nil || resolution.Schedule != nil {
			t.Fatalf("expected empty resolution, got %+v", resolution)
		}
	})

	rule := env.createRule(t, site, company, -15, "2024-01-01", nil)

	t.Run("valid rule is applied", func(t *testing.T) {
		resolution, err := env.resolver.Resolve(env.db, company, site.ID, date(t, "2024-03-01"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.AppliedRuleID == nil || *resolution.AppliedRuleID != rule.ID {
			t.Fatalf("expected rule %d, got %+v", rule.ID, resolution.AppliedRuleID)
		}
	})

	t.Run("date before window resolves to nothing", func(t *testing.T) {
		resolution, err := env.resolver.Resolve(env.db, company, site.ID, date(t, "2023-12-31"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.AppliedRuleID != nil {
			t.Fatal("expected no applied rule before validity window")
		}
	})

	t.Run("overlapping windows pick the newest", func(t *testing.T) {
		newer := env.createRule(t, site, company, 30, "2024-02-01", nil)

		resolution, err := env.resolver.Resolve(env.db, company, site.ID, date(t, "2024-03-01"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.AppliedRuleID == nil || *resolution.AppliedRuleID != newer.ID {
			t.Fatalf("expected newest rule %d, got %+v", newer.ID, resolution.AppliedRuleID)
		}
	})

	t.Run("closed window excludes later dates", func(t *testing.T) {
		env2 := newTestEnv(t)
		site2 := env2.createSite(t, "South yard", "WS2")
		company2 := env2.createCompany(t, "Ferrallas SA", false)
		env2.createRule(t, site2, company2, -10, "2024-01-01", strPtr("2024-01-31"))

		resolution, err := env2.resolver.Resolve(env2.db, company2, site2.ID, date(t, "2024-02-15"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.AppliedRuleID != nil {
			t.Fatal("expected no applied rule after valid_to")
		}
	})
}

func TestResolveMainCompany(t *testing.T) {
	env := newTestEnv(t)
	site := env.createSite(t, "North yard", "WS1")
	main := env.createCompany(t, "Construcciones Principal", true)

	t.Run("missing schedule is a configuration error", func(t *testing.T) {
		_, err := env.resolver.Resolve(env.db, main, site.ID, date(t, "2024-03-01"))
		if !apperr.IsKind(err, apperr.KindConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})

	schedule := env.createSchedule(t, main, "08:00", "16:00", 0, "2024-01-01")

	t.Run("active schedule is returned", func(t *testing.T) {
		resolution, err := env.resolver.Resolve(env.db, main, site.ID, date(t, "2024-03-01"))
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if resolution.Schedule == nil || resolution.Schedule.ID != schedule.ID {
			t.Fatalf("expected schedule %d, got %+v", schedule.ID, resolution.Schedule)
		}
		if resolution.AppliedRuleID != nil {
			t.Fatal("main company resolution must not carry a rule id")
		}
	})
}
