package materializer

import "fmt"

const (
	MatchupTable = "rb_matchups"
	GamelogTable = "rb_gamelogs"
)

// BuildDropMatchups returns a DROP TABLE IF EXISTS for the matchup table.
func BuildDropMatchups(db string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %s.%s`, db, MatchupTable)
}

func BuildDropGamelogs(db string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %s.%s`, db, GamelogTable)
}

// BuildMatchupTable maps the exported matchup CSVs. OpenCSVSerde reads every
// column as string; casts happen at query time.
func BuildMatchupTable(db, bucket, prefix string) string {
	return fmt.Sprintf(`
CREATE EXTERNAL TABLE IF NOT EXISTS %s.%s (
  player_name          string,
  team                 string,
  tier                 string,
  games_count          string,
  rushing_attempts     string,
  rushing_yards        string,
  rushing_avg          string,
  rushing_td           string,
  receiving_receptions string,
  receiving_yards      string
)
ROW FORMAT SERDE 'org.apache.hadoop.hive.serde2.OpenCSVSerde'
LOCATION 's3://%s/%s/matchups/'
TBLPROPERTIES ('skip.header.line.count'='1')`, db, MatchupTable, bucket, prefix)
}

// BuildGamelogTable maps the parquet game log export, partitioned the same
// way the writer lays out keys (season=.../team=...).
func BuildGamelogTable(db, bucket, prefix string) string {
	return fmt.Sprintf(`
CREATE EXTERNAL TABLE IF NOT EXISTS %s.%s (
  player_id            string,
  player_name          string,
  date                 string,
  opponent             string,
  result               string,
  rushing_attempts     int,
  rushing_yards        int,
  rushing_avg          double,
  rushing_td           int,
  rushing_long         int,
  receiving_receptions int,
  receiving_targets    int,
  receiving_yards      int
)
PARTITIONED BY (season string, team string)
STORED AS PARQUET
LOCATION 's3://%s/%s/gamelogs/'`, db, GamelogTable, bucket, prefix)
}

// BuildRepairGamelogs picks up newly written season/team partitions.
func BuildRepairGamelogs(db string) string {
	return fmt.Sprintf(`MSCK REPAIR TABLE %s.%s`, db, GamelogTable)
}

// Light QA queries to log after the tables exist.
func BuildMatchupCount(db string) string {
	return fmt.Sprintf(`SELECT COUNT(*) AS rows FROM %s.%s`, db, MatchupTable)
}

func BuildPerTierCounts(db string) string {
	return fmt.Sprintf(`
SELECT tier, COUNT(*) AS players
FROM %s.%s
GROUP BY tier
ORDER BY tier`, db, MatchupTable)
}

func BuildMatchupSample(db string) string {
	return fmt.Sprintf(`
SELECT player_name, team, tier, games_count, rushing_yards, rushing_avg
FROM %s.%s
ORDER BY CAST(rushing_yards AS INTEGER) DESC
LIMIT 25`, db, MatchupTable)
}
