package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/rb-matchups/internal/analysis"
	"github.com/tyler180/rb-matchups/internal/ath"
	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/materializer"
	"github.com/tyler180/rb-matchups/internal/nfl"
	"github.com/tyler180/rb-matchups/internal/store"
)

// runtime bundles the AWS clients one invocation needs.
type runtime struct {
	ddb *dynamodb.Client
	s3  *s3.Client
	ath *athena.Client
}

func (rt *runtime) uploader() *store.Uploader {
	bucket := envStr("EXPORT_BUCKET", "")
	if bucket == "" {
		return nil
	}
	return &store.Uploader{
		Client: rt.s3,
		Bucket: bucket,
		Prefix: strings.Trim(envStr("EXPORT_PREFIX", "rb_matchups"), "/"),
	}
}

// LambdaEntrypoint is the single Lambda handler exported from this package.
func LambdaEntrypoint(ctx context.Context, raw Raw) (string, error) {
	var e Event
	_ = json.Unmarshal(raw, &e)

	// Season override is non-sticky in spirit but harmless to pin per invoke.
	if e.Season != "" {
		os.Setenv("SEASON", e.Season)
	}
	season := envStr("SEASON", "2025")
	mode := strings.TrimSpace(e.Mode)
	if mode == "" {
		mode = envStr("MODE", "all")
	}
	debug := envBool("DEBUG", false)

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("aws config: %w", err)
	}
	rt := &runtime{
		ddb: dynamodb.NewFromConfig(awsCfg),
		s3:  s3.NewFromConfig(awsCfg),
		ath: athena.NewFromConfig(awsCfg),
	}

	switch mode {
	case "rosters":
		return runRosters(ctx, rt, e, season, debug)
	case "starters":
		return runStarters(ctx, rt, e, season, debug)
	case "gamelogs":
		return runGamelogs(ctx, rt, season, debug)
	case "compare":
		return runCompare(ctx, rt, season, debug)
	case "materialize":
		return runMaterialize(ctx, rt, season)
	case "all":
		parts := make([]string, 0, 4)
		for _, step := range []func() (string, error){
			func() (string, error) { return runRosters(ctx, rt, e, season, debug) },
			func() (string, error) { return runStarters(ctx, rt, e, season, debug) },
			func() (string, error) { return runGamelogs(ctx, rt, season, debug) },
			func() (string, error) { return runCompare(ctx, rt, season, debug) },
		} {
			s, err := step()
			if err != nil {
				return strings.Join(parts, " "), err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// ------------------ rosters ------------------

func runRosters(ctx context.Context, rt *runtime, e Event, season string, debug bool) (string, error) {
	pos := envStr("TARGET_POSITION", "RB")
	teams := teamSubset(nfl.AllTeams(), e.TeamList, debug)

	minD, maxD := sleepRange()
	sess, err := espn.NewSession(minD, maxD)
	if err != nil {
		return "", fmt.Errorf("fetch session: %w", err)
	}

	var all []espn.RosterEntry
	failed := 0
	for _, team := range teams {
		doc, err := sess.RosterDocument(ctx, team)
		if err != nil {
			failed++
			log.Printf("rosters: %s failed: %v", team, err)
			continue
		}
		rows := espn.ExtractRoster(doc, team, pos)
		if debug {
			log.Printf("rosters: %s kept %d %s entries", team, len(rows), pos)
		}
		all = append(all, rows...)
	}

	table := envStr("ROSTER_TABLE_NAME", "rb_roster_rows")
	if err := store.PutRosterRows(ctx, rt.ddb, table, season, all); err != nil {
		return "", err
	}
	if up := rt.uploader(); up != nil {
		b, err := store.RosterCSV(all)
		if err != nil {
			return "", fmt.Errorf("roster csv: %w", err)
		}
		key := fmt.Sprintf("rosters/season=%s/rosters.csv", season)
		if err := up.Put(ctx, key, b); err != nil {
			return "", err
		}
	}

	log.Printf("OK rosters: wrote %d rows to %s for %s (teams=%d failed=%d)",
		len(all), table, season, len(teams), failed)
	return fmt.Sprintf("rosters=%d", len(all)), nil
}

// ------------------ starters ------------------

func runStarters(ctx context.Context, rt *runtime, e Event, season string, debug bool) (string, error) {
	pos := envStr("TARGET_POSITION", "RB")
	teams := teamSubset(nfl.AllTeams(), e.TeamList, debug)

	minD, maxD := sleepRange()
	sess, err := espn.NewSession(minD, maxD)
	if err != nil {
		return "", fmt.Errorf("fetch session: %w", err)
	}

	var starters []espn.DepthChartEntry
	missing := 0
	for _, team := range teams {
		doc, err := sess.DepthDocument(ctx, team)
		if err != nil {
			missing++
			log.Printf("starters: %s failed: %v", team, err)
			continue
		}
		entry, ok := espn.ResolveStarter(doc, team, pos)
		if !ok {
			// No confident signal on this page; not an error.
			missing++
			if debug {
				log.Printf("starters: %s no %s starter resolved", team, pos)
			}
			continue
		}
		starters = append(starters, entry)
	}

	table := envStr("STARTER_TABLE_NAME", "rb_starters")
	if err := store.PutStarterRows(ctx, rt.ddb, table, season, starters); err != nil {
		return "", err
	}
	if up := rt.uploader(); up != nil {
		b, err := store.StarterCSV(starters)
		if err != nil {
			return "", fmt.Errorf("starter csv: %w", err)
		}
		key := fmt.Sprintf("starters/season=%s/starters.csv", season)
		if err := up.Put(ctx, key, b); err != nil {
			return "", err
		}
	}

	log.Printf("OK starters: wrote %d rows to %s for %s (missing=%d)",
		len(starters), table, season, missing)
	return fmt.Sprintf("starters=%d", len(starters)), nil
}

// ------------------ gamelogs ------------------

func runGamelogs(ctx context.Context, rt *runtime, season string, debug bool) (string, error) {
	starterTable := envStr("STARTER_TABLE_NAME", "rb_starters")
	starters, err := store.LoadStarters(ctx, rt.ddb, starterTable, season)
	if err != nil {
		return "", fmt.Errorf("load starters: %w", err)
	}
	if len(starters) == 0 {
		return "", fmt.Errorf("no starters stored for %s; run starters mode first", season)
	}

	minD, maxD := sleepRange()
	sess, err := espn.NewSession(minD, maxD)
	if err != nil {
		return "", fmt.Errorf("fetch session: %w", err)
	}

	var games []espn.GameRecord
	failed := 0
	for _, st := range starters {
		doc, err := sess.GamelogDocument(ctx, st.PlayerID)
		if err != nil {
			failed++
			log.Printf("gamelogs: %s (%s) failed: %v", st.PlayerName, st.PlayerID, err)
			continue
		}
		rows := espn.ExtractGameLog(doc, st.PlayerIdentity)
		if debug {
			log.Printf("gamelogs: %s parsed %d games", st.PlayerName, len(rows))
		}
		games = append(games, rows...)
	}

	table := envStr("GAME_TABLE_NAME", "rb_game_rows")
	if err := store.PutGameRows(ctx, rt.ddb, table, season, games); err != nil {
		return "", err
	}
	exported := 0
	if up := rt.uploader(); up != nil {
		n, err := store.WriteGameLogs(ctx, up, season, games)
		if err != nil {
			return "", fmt.Errorf("export gamelogs: %w", err)
		}
		exported = n
	}

	log.Printf("OK gamelogs: wrote %d rows to %s for %s (players=%d failed=%d exported=%d)",
		len(games), table, season, len(starters), failed, exported)
	return fmt.Sprintf("games=%d", len(games)), nil
}

// ------------------ compare ------------------

func runCompare(ctx context.Context, rt *runtime, season string, debug bool) (string, error) {
	minD, maxD := sleepRange()
	sess, err := espn.NewSession(minD, maxD)
	if err != nil {
		return "", fmt.Errorf("fetch session: %w", err)
	}

	// The ranking page is the one input the whole comparison hinges on, so
	// a defect here fails the run instead of being skipped.
	doc, err := sess.DefenseDocument(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch defense stats: %w", err)
	}
	rows, err := espn.ExtractDefenseStats(doc)
	if err != nil {
		return "", fmt.Errorf("extract defense stats: %w", err)
	}
	tiers, err := analysis.RankDefenses(rows)
	if err != nil {
		return "", fmt.Errorf("rank defenses: %w", err)
	}
	if debug {
		log.Printf("compare: top16=%v", tiers.Top)
		log.Printf("compare: bottom16=%v", tiers.Bottom)
	}

	gameTable := envStr("GAME_TABLE_NAME", "rb_game_rows")
	games, err := store.LoadGameRows(ctx, rt.ddb, gameTable, season)
	if err != nil {
		return "", fmt.Errorf("load game rows: %w", err)
	}
	if len(games) == 0 {
		return "", fmt.Errorf("no game rows stored for %s; run gamelogs mode first", season)
	}

	vsTop, vsBottom, unresolved := analysis.Aggregate(games, tiers)
	if unresolved > 0 {
		log.Printf("compare: skipped %d games with unresolvable opponents", unresolved)
	}

	matchupTable := envStr("MATCHUP_TABLE_NAME", "rb_matchup_rows")
	combined := append(append([]analysis.MatchupAggregate{}, vsTop...), vsBottom...)
	if err := store.PutMatchupRows(ctx, rt.ddb, matchupTable, season, combined); err != nil {
		return "", err
	}

	if up := rt.uploader(); up != nil {
		exports := []struct {
			name string
			rows []analysis.MatchupAggregate
		}{
			{"vs_top16.csv", vsTop},
			{"vs_bottom16.csv", vsBottom},
		}
		for _, ex := range exports {
			b, err := store.MatchupCSV(ex.rows)
			if err != nil {
				return "", fmt.Errorf("matchup csv: %w", err)
			}
			key := fmt.Sprintf("matchups/season=%s/%s", season, ex.name)
			if err := up.Put(ctx, key, b); err != nil {
				return "", err
			}
		}
		b, err := store.TierCSV(tiers)
		if err != nil {
			return "", fmt.Errorf("tier csv: %w", err)
		}
		if err := up.Put(ctx, fmt.Sprintf("tiers/season=%s/tiers.csv", season), b); err != nil {
			return "", err
		}
	}

	log.Printf("OK compare: wrote %d matchup rows to %s for %s (vs_top=%d vs_bottom=%d unresolved=%d)",
		len(combined), matchupTable, season, len(vsTop), len(vsBottom), unresolved)
	return fmt.Sprintf("matchups=%d", len(combined)), nil
}

// ------------------ materialize ------------------

func runMaterialize(ctx context.Context, rt *runtime, season string) (string, error) {
	db := envStr("ATHENA_DB", "")
	wg := envStr("ATHENA_WORKGROUP", "")
	outS3 := envStr("ATHENA_OUTPUT_S3", "")
	bucket := envStr("EXPORT_BUCKET", "")
	if db == "" || wg == "" || outS3 == "" || bucket == "" {
		return "", fmt.Errorf("materialize needs ATHENA_DB, ATHENA_WORKGROUP, ATHENA_OUTPUT_S3 and EXPORT_BUCKET")
	}
	prefix := strings.Trim(envStr("EXPORT_PREFIX", "rb_matchups"), "/")

	runner := &ath.Runner{
		Client:    rt.ath,
		Workgroup: wg,
		Database:  db,
		OutputS3:  outS3,
	}

	if _, err := runner.ExecAndWait(ctx, materializer.BuildMatchupTable(db, bucket, prefix)); err != nil {
		return "", fmt.Errorf("create matchup table: %w", err)
	}
	if _, err := runner.ExecAndWait(ctx, materializer.BuildGamelogTable(db, bucket, prefix)); err != nil {
		return "", fmt.Errorf("create gamelog table: %w", err)
	}
	if _, err := runner.ExecAndWait(ctx, materializer.BuildRepairGamelogs(db)); err != nil {
		return "", fmt.Errorf("repair gamelog partitions: %w", err)
	}

	count, err := runner.CountRows(ctx, db+"."+materializer.MatchupTable)
	if err != nil {
		return "", fmt.Errorf("count matchup rows: %w", err)
	}

	// QA queries are best effort; their output lands in the workgroup results.
	if _, err := runner.ExecAndWait(ctx, materializer.BuildPerTierCounts(db)); err != nil {
		log.Printf("materialize: WARN per-tier counts failed: %v", err)
	}
	if _, err := runner.ExecAndWait(ctx, materializer.BuildMatchupSample(db)); err != nil {
		log.Printf("materialize: WARN sample query failed: %v", err)
	}

	log.Printf("OK materialize: %s.%s has %d rows (season=%s)", db, materializer.MatchupTable, count, season)
	return fmt.Sprintf("matchup_rows=%d", count), nil
}
