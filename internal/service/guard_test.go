package service

import (
	"testing"

	"time-control-api/internal/models"
)

func TestIsAuthorizedForSite(t *testing.T) {
	env := newTestEnv(t)
	worker := env.createUser(t, "capataz@obra.es", models.RoleUser)
	assigned := env.createSite(t, "North yard", "WS1", worker)
	unassigned := env.createSite(t, "South yard", "WS2")

	cases := []struct {
		name       string
		workSiteID uint
		want       bool
	}{
		{"zero site id is never authorized", 0, false},
		{"assigned site", assigned.ID, true},
		{"unassigned site", unassigned.ID, false},
		{"unknown site", 999, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.guard.IsAuthorizedForSite(env.db, worker.ID, tc.workSiteID)
			if err != nil {
				t.Fatalf("guard: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
