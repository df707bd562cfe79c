package analysis

import (
	"fmt"
	"testing"

	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

// 32 rows with yards 80, 90, ... 390, assigned to teams in scrape order.
func rankedFixture() []espn.DefenseStatRow {
	keys := nfl.AllTeams()
	rows := make([]espn.DefenseStatRow, len(keys))
	for i, k := range keys {
		rows[i] = espn.DefenseStatRow{
			Team:         nfl.DisplayName(k),
			RushingYards: fmt.Sprintf("%d", 80+i*10),
		}
	}
	return rows
}

func TestRankDefenses_Partition(t *testing.T) {
	rows := rankedFixture()
	tiers, err := RankDefenses(rows)
	if err != nil {
		t.Fatalf("RankDefenses: %v", err)
	}
	if len(tiers.Top) != 16 || len(tiers.Bottom) != 16 {
		t.Fatalf("tier sizes = %d/%d, want 16/16", len(tiers.Top), len(tiers.Bottom))
	}

	seen := make(map[nfl.TeamKey]struct{})
	for _, k := range append(append([]nfl.TeamKey{}, tiers.Top...), tiers.Bottom...) {
		if _, dup := seen[k]; dup {
			t.Errorf("team %q in both tiers", k)
		}
		seen[k] = struct{}{}
	}
	if len(seen) != 32 {
		t.Errorf("union covers %d teams, want 32", len(seen))
	}

	// lowest value is the best defense
	if tiers.Top[0] != nfl.CanonicalTeam(rows[0].Team) {
		t.Errorf("Top[0] = %q, want %q", tiers.Top[0], rows[0].Team)
	}
	if tiers.Bottom[15] != nfl.CanonicalTeam(rows[31].Team) {
		t.Errorf("Bottom[15] = %q, want %q", tiers.Bottom[15], rows[31].Team)
	}
	if tiers.Tier(tiers.Top[3]) != TierTop || tiers.Tier(tiers.Bottom[3]) != TierBottom {
		t.Error("membership lookup disagrees with slices")
	}
	if tiers.Tier("zzz") != TierNeither {
		t.Error("unranked key should be neither")
	}
}

func TestRankDefenses_ThousandsSeparators(t *testing.T) {
	rows := rankedFixture()
	rows[0].RushingYards = "1,713"
	if _, err := RankDefenses(rows); err != nil {
		t.Fatalf("comma-separated value should parse: %v", err)
	}
}

func TestRankDefenses_StableTies(t *testing.T) {
	rows := rankedFixture()
	// Give the first two rows the same value; source order must hold.
	rows[0].RushingYards = "100"
	rows[1].RushingYards = "100"
	tiers, err := RankDefenses(rows)
	if err != nil {
		t.Fatalf("RankDefenses: %v", err)
	}
	if tiers.Top[0] != nfl.CanonicalTeam(rows[0].Team) || tiers.Top[1] != nfl.CanonicalTeam(rows[1].Team) {
		t.Errorf("tie broke source order: %q, %q", tiers.Top[0], tiers.Top[1])
	}
}

func TestRankDefenses_Defects(t *testing.T) {
	bad := rankedFixture()
	bad[5].RushingYards = "n/a"
	if _, err := RankDefenses(bad); err == nil {
		t.Error("unparsable yards must fail the run")
	}

	bad = rankedFixture()
	bad[9].Team = "London Monarchs"
	if _, err := RankDefenses(bad); err == nil {
		t.Error("uncanonicalizable team must fail the run")
	}

	if _, err := RankDefenses(rankedFixture()[:31]); err == nil {
		t.Error("row count other than 32 must fail the run")
	}
}
