package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

// Tier is a team's run-defense bucket for the season window.
type Tier string

const (
	TierTop     Tier = "top"     // 16 fewest rushing yards allowed
	TierBottom  Tier = "bottom"  // 16 most
	TierNeither Tier = "neither" // only possible for inputs outside the ranked 32
)

const (
	leagueSize = 32
	tierSize   = 16
)

// DefenseTiers holds tier membership derived from one ranking pass.
type DefenseTiers struct {
	Top    []nfl.TeamKey
	Bottom []nfl.TeamKey

	membership map[nfl.TeamKey]Tier
}

// NewDefenseTiers builds membership from explicit tier slices. Mostly a
// test seam; RankDefenses is the production constructor.
func NewDefenseTiers(top, bottom []nfl.TeamKey) DefenseTiers {
	t := DefenseTiers{Top: top, Bottom: bottom,
		membership: make(map[nfl.TeamKey]Tier, len(top)+len(bottom))}
	for _, k := range top {
		t.membership[k] = TierTop
	}
	for _, k := range bottom {
		t.membership[k] = TierBottom
	}
	return t
}

// Tier reports which bucket a team landed in.
func (t DefenseTiers) Tier(k nfl.TeamKey) Tier {
	if tier, ok := t.membership[k]; ok {
		return tier
	}
	return TierNeither
}

// RankDefenses sorts teams by rushing yards allowed (ascending, stable) and
// splits them into the best and worst 16. This input is authoritative and
// seeds every downstream join, so unlike the page extractors it fails the
// run on any defect: a value that will not parse, a team name that will not
// canonicalize, or a row count other than 32.
func RankDefenses(rows []espn.DefenseStatRow) (DefenseTiers, error) {
	if len(rows) != leagueSize {
		return DefenseTiers{}, fmt.Errorf("expected %d defense rows, got %d", leagueSize, len(rows))
	}

	type ranked struct {
		key nfl.TeamKey
		yds int
	}
	all := make([]ranked, 0, len(rows))
	for _, r := range rows {
		raw := strings.ReplaceAll(strings.TrimSpace(r.RushingYards), ",", "")
		yds, err := strconv.Atoi(raw)
		if err != nil {
			return DefenseTiers{}, fmt.Errorf("rushing yards for %q: %w", r.Team, err)
		}
		key := nfl.CanonicalTeam(r.Team)
		if !key.Resolved() {
			return DefenseTiers{}, fmt.Errorf("unknown team %q in defense rankings", r.Team)
		}
		all = append(all, ranked{key: key, yds: yds})
	}

	// Stable keeps source order among equal values.
	sort.SliceStable(all, func(i, j int) bool { return all[i].yds < all[j].yds })

	top := make([]nfl.TeamKey, 0, tierSize)
	bottom := make([]nfl.TeamKey, 0, tierSize)
	for i, r := range all {
		if i < tierSize {
			top = append(top, r.key)
		} else {
			bottom = append(bottom, r.key)
		}
	}
	return NewDefenseTiers(top, bottom), nil
}
