package dates_test

import (
	"testing"
	"time"

	"github.com/dalemusser/labhub/internal/app/system/dates"
)

func TestParse(t *testing.T) {
	got, err := dates.Parse("2021-06-01")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = dates.Parse("2021-06-01T10:30:00Z")
	if err != nil {
		t.Fatalf("Parse RFC3339 failed: %v", err)
	}
	if got.Hour() != 10 {
		t.Errorf("got %v, want 10:30 UTC", got)
	}

	for _, bad := range []string{"", "06/01/2021", "yesterday"} {
		if _, err := dates.Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}

func TestParseOptional(t *testing.T) {
	got, err := dates.ParseOptional("  ")
	if err != nil || got != nil {
		t.Errorf("blank input: got (%v, %v), want (nil, nil)", got, err)
	}

	got, err = dates.ParseOptional("2021-06-01")
	if err != nil || got == nil {
		t.Fatalf("got (%v, %v)", got, err)
	}

	if _, err := dates.ParseOptional("junk"); err == nil {
		t.Error("expected error for junk input")
	}
}
