package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/tyler180/rb-matchups/internal/espn"
)

// GameLogRow is the parquet shape of one per-game record. Stat columns are
// optional so an absent value survives the round trip instead of becoming 0.
type GameLogRow struct {
	Season     string   `parquet:"season"`
	Team       string   `parquet:"team"`
	PlayerID   string   `parquet:"player_id"`
	PlayerName string   `parquet:"player_name"`
	Date       string   `parquet:"date"`
	Opponent   string   `parquet:"opponent"`
	Result     string   `parquet:"result"`
	RushAtt    *int     `parquet:"rushing_attempts,optional"`
	RushYds    *int     `parquet:"rushing_yards,optional"`
	RushAvg    *float64 `parquet:"rushing_avg,optional"`
	RushTD     *int     `parquet:"rushing_td,optional"`
	RushLong   *int     `parquet:"rushing_long,optional"`
	Receptions *int     `parquet:"receiving_receptions,optional"`
	Targets    *int     `parquet:"receiving_targets,optional"`
	RecYds     *int     `parquet:"receiving_yards,optional"`
}

func nowStamp() string { return time.Now().UTC().Format("20060102T150405Z") }

// WriteGameLogs exports game records as parquet, partitioned by team so the
// external table can prune on season/team. Returns the number of rows
// written.
func WriteGameLogs(ctx context.Context, up *Uploader, season string, games []espn.GameRecord) (int, error) {
	buckets := map[string][]GameLogRow{}
	for _, g := range games {
		team := string(g.Team)
		if team == "" {
			continue
		}
		buckets[team] = append(buckets[team], GameLogRow{
			Season:     season,
			Team:       team,
			PlayerID:   g.PlayerID,
			PlayerName: g.PlayerName,
			Date:       g.Date,
			Opponent:   g.Opponent,
			Result:     g.Result,
			RushAtt:    g.RushAtt,
			RushYds:    g.RushYds,
			RushAvg:    g.RushAvg,
			RushTD:     g.RushTD,
			RushLong:   g.RushLong,
			Receptions: g.Receptions,
			Targets:    g.Targets,
			RecYds:     g.RecYds,
		})
	}

	schema := parquet.SchemaOf(new(GameLogRow))
	total := 0
	for team, part := range buckets {
		key := fmt.Sprintf("gamelogs/season=%s/team=%s/part-%s.parquet", season, team, nowStamp())
		if err := writeParquetAndUpload(ctx, part, key, schema, up); err != nil {
			return total, err
		}
		total += len(part)
	}
	return total, nil
}

func writeParquetAndUpload[T any](ctx context.Context, rows []T, key string, schema *parquet.Schema, up *Uploader) error {
	if len(rows) == 0 {
		return nil
	}
	tmp := filepath.Join(os.TempDir(), "parq-"+nowStamp()+"-"+filepath.Base(key))
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := parquet.NewWriter(f, schema, parquet.Compression(&parquet.Snappy))
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			_ = f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	b, err := os.ReadFile(tmp)
	if err != nil {
		return err
	}
	if err := up.Put(ctx, key, b); err != nil {
		return err
	}
	_ = os.Remove(tmp)
	return nil
}
