package pipeline

import (
	"testing"
	"time"

	"github.com/tyler180/rb-matchups/internal/nfl"
)

func TestTeamSubset(t *testing.T) {
	all := nfl.AllTeams()

	if got := teamSubset(all, "", false); len(got) != len(all) {
		t.Fatalf("empty filter should keep all %d teams, got %d", len(all), len(got))
	}

	got := teamSubset(all, "SEA, tb ,bogus", false)
	if len(got) != 2 {
		t.Fatalf("got %d teams, want 2 (unknown token dropped)", len(got))
	}
	// subset preserves the batch's canonical team order
	want := map[nfl.TeamKey]bool{"sea": true, "tb": true}
	for _, k := range got {
		if !want[k] {
			t.Errorf("unexpected team %q in subset", k)
		}
	}
}

func TestSleepRange(t *testing.T) {
	t.Setenv("SLEEP_MIN_MS", "300")
	t.Setenv("SLEEP_MAX_MS", "100") // inverted bounds collapse to min
	lo, hi := sleepRange()
	if lo != 300*time.Millisecond || hi != 300*time.Millisecond {
		t.Errorf("sleepRange = %v,%v", lo, hi)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "  v  ")
	if envStr("X_STR", "d") != "v" {
		t.Error("envStr should trim")
	}
	if envStr("X_UNSET", "d") != "d" {
		t.Error("envStr default")
	}
	t.Setenv("X_BOOL", "yes")
	if !envBool("X_BOOL", false) {
		t.Error("envBool yes")
	}
	t.Setenv("X_INT", "nope")
	if envInt("X_INT", 7) != 7 {
		t.Error("envInt falls back on parse failure")
	}
}
