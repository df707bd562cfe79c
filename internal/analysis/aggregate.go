package analysis

import (
	"math"
	"sort"

	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

// MatchupAggregate is one player's combined line against one defense tier.
type MatchupAggregate struct {
	PlayerName string
	Team       nfl.TeamKey
	Tier       Tier
	Games      int

	RushAtt    int
	RushYds    int
	RushTD     int
	RecYds     int
	Receptions int

	// RushYds/RushAtt rounded to 2 places; nil when there were no attempts.
	RushAvg *float64
}

// Aggregate joins game records to tier membership and sums per player.
//
// Grouping is by display name, matching the upstream data set; two players
// sharing a name would alias together. Games whose opponent token cannot be
// canonicalized are excluded from both tiers and counted in unresolved. A
// player with no qualifying games against a tier gets no row for it.
// Pure function of its inputs: same games and tiers, same output.
func Aggregate(games []espn.GameRecord, tiers DefenseTiers) (vsTop, vsBottom []MatchupAggregate, unresolved int) {
	var order []string
	byPlayer := make(map[string][]espn.GameRecord)
	for _, g := range games {
		if _, ok := byPlayer[g.PlayerName]; !ok {
			order = append(order, g.PlayerName)
		}
		byPlayer[g.PlayerName] = append(byPlayer[g.PlayerName], g)
	}

	for _, name := range order {
		playerGames := byPlayer[name]
		// Assumes no mid-window team change; the first game's team stands
		// for the player.
		team := playerGames[0].Team

		var topGames, bottomGames []espn.GameRecord
		for _, g := range playerGames {
			opp := nfl.CanonicalOpponent(g.Opponent)
			if !opp.Resolved() {
				unresolved++
				continue
			}
			switch tiers.Tier(opp) {
			case TierTop:
				topGames = append(topGames, g)
			case TierBottom:
				bottomGames = append(bottomGames, g)
			}
		}

		if len(topGames) > 0 {
			vsTop = append(vsTop, sumGames(name, team, TierTop, topGames))
		}
		if len(bottomGames) > 0 {
			vsBottom = append(vsBottom, sumGames(name, team, TierBottom, bottomGames))
		}
	}

	sort.SliceStable(vsTop, func(i, j int) bool { return vsTop[i].RushYds > vsTop[j].RushYds })
	sort.SliceStable(vsBottom, func(i, j int) bool { return vsBottom[i].RushYds > vsBottom[j].RushYds })
	return vsTop, vsBottom, unresolved
}

// sumGames sums over present values only; an absent field contributes
// nothing rather than a fabricated zero.
func sumGames(name string, team nfl.TeamKey, tier Tier, games []espn.GameRecord) MatchupAggregate {
	agg := MatchupAggregate{PlayerName: name, Team: team, Tier: tier, Games: len(games)}
	for _, g := range games {
		agg.RushAtt += orZero(g.RushAtt)
		agg.RushYds += orZero(g.RushYds)
		agg.RushTD += orZero(g.RushTD)
		agg.RecYds += orZero(g.RecYds)
		agg.Receptions += orZero(g.Receptions)
	}
	if agg.RushAtt > 0 {
		avg := math.Round(float64(agg.RushYds)/float64(agg.RushAtt)*100) / 100
		agg.RushAvg = &avg
	}
	return agg
}

func orZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
