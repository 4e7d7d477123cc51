package clock

import (
	"testing"
	"time"
)

func TestParseToMinutes(t *testing.T) {
	cases := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"17:30", 1050, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"8", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseToMinutes(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseToMinutes(%q): expected error, got %d", tc.value, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseToMinutes(%q): unexpected error: %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseToMinutes(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestMinutesBetween(t *testing.T) {
	got, err := MinutesBetween("08:00", "17:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 540 {
		t.Errorf("MinutesBetween(08:00, 17:00) = %d, want 540", got)
	}

	if _, err := MinutesBetween("bad", "17:00"); err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", date, want)
	}

	if _, err := ParseDate("01/03/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 3, 1, 15, 42, 7, 12, time.FixedZone("CET", 3600))
	got := DateOnly(in)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
