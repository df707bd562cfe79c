package store

import (
	"strings"
	"testing"

	"github.com/tyler180/rb-matchups/internal/analysis"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

func TestMatchupCSV(t *testing.T) {
	avg := 4.45
	rows := []analysis.MatchupAggregate{
		{PlayerName: "A Back", Team: "atl", Tier: analysis.TierTop, Games: 3,
			RushAtt: 40, RushYds: 178, RushTD: 2, RecYds: 35, Receptions: 6, RushAvg: &avg},
		{PlayerName: "B Back", Team: "chi", Tier: analysis.TierTop, Games: 1,
			RushAtt: 0, RushYds: 0},
	}

	b, err := MatchupCSV(rows)
	if err != nil {
		t.Fatalf("MatchupCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "player_name,team,tier,games_count,rushing_attempts,rushing_yards,rushing_avg,rushing_td,receiving_receptions,receiving_yards" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "A Back,atl,top,3,40,178,4.45,2,6,35" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// no attempts: average column stays empty, not 0.00
	if lines[2] != "B Back,chi,top,1,0,0,,0,0,0" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestTierCSV(t *testing.T) {
	tiers := analysis.NewDefenseTiers(
		[]nfl.TeamKey{"sea", "kc"},
		[]nfl.TeamKey{"car"},
	)
	b, err := TierCSV(tiers)
	if err != nil {
		t.Fatalf("TierCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	want := []string{
		"team,tier,rank_in_tier",
		"sea,top,1",
		"kc,top,2",
		"car,bottom,1",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
