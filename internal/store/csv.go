package store

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/tyler180/rb-matchups/internal/analysis"
	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

// RosterCSV renders roster entries one row per player.
func RosterCSV(rows []espn.RosterEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"player_id", "player_name", "team", "position"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.PlayerID, r.PlayerName, string(r.Team), r.Position}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// StarterCSV renders one row per team that resolved a starter.
func StarterCSV(rows []espn.DepthChartEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"player_id", "player_name", "team", "depth_rank"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{r.PlayerID, r.PlayerName, string(r.Team), r.DepthRank}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// MatchupCSV renders aggregates in the order given; callers pass the tier
// outputs already sorted by rushing yards.
func MatchupCSV(rows []analysis.MatchupAggregate) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"player_name", "team", "tier", "games_count",
		"rushing_attempts", "rushing_yards", "rushing_avg", "rushing_td",
		"receiving_receptions", "receiving_yards",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		avg := ""
		if r.RushAvg != nil {
			avg = strconv.FormatFloat(*r.RushAvg, 'f', 2, 64)
		}
		rec := []string{
			r.PlayerName, string(r.Team), string(r.Tier), strconv.Itoa(r.Games),
			strconv.Itoa(r.RushAtt), strconv.Itoa(r.RushYds), avg, strconv.Itoa(r.RushTD),
			strconv.Itoa(r.Receptions), strconv.Itoa(r.RecYds),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// TierCSV renders the ranked tier membership, one row per team.
func TierCSV(tiers analysis.DefenseTiers) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"team", "tier", "rank_in_tier"}); err != nil {
		return nil, err
	}
	write := func(keys []nfl.TeamKey, tier analysis.Tier) error {
		for i, k := range keys {
			if err := w.Write([]string{string(k), string(tier), strconv.Itoa(i + 1)}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write(tiers.Top, analysis.TierTop); err != nil {
		return nil, err
	}
	if err := write(tiers.Bottom, analysis.TierBottom); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
