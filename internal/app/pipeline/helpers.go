package pipeline

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tyler180/rb-matchups/internal/nfl"
)

// ------------------ env helpers ------------------

func envStr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// IMPORTANT: no os.Setenv on TEAM_LIST; warm lambdas would stick to the last value.

// sleepRange reads the courtesy-delay bounds for page fetches.
func sleepRange() (time.Duration, time.Duration) {
	minMs := envInt("SLEEP_MIN_MS", 1000)
	maxMs := envInt("SLEEP_MAX_MS", 2000)
	if maxMs < minMs {
		maxMs = minMs
	}
	return time.Duration(minMs) * time.Millisecond, time.Duration(maxMs) * time.Millisecond
}

// ------------------ team subset ------------------

// teamSubset narrows the 32-team batch to an explicit CSV of team keys.
// Unknown tokens are logged and dropped rather than failing the run.
func teamSubset(all []nfl.TeamKey, teamListCSV string, debug bool) []nfl.TeamKey {
	teamListCSV = strings.TrimSpace(teamListCSV)
	if teamListCSV == "" {
		return all
	}
	want := map[nfl.TeamKey]struct{}{}
	for _, tok := range strings.Split(teamListCSV, ",") {
		k := nfl.CanonicalTeam(tok)
		if !k.Resolved() {
			if debug {
				log.Printf("team filter: skipping unknown token %q", tok)
			}
			continue
		}
		want[k] = struct{}{}
	}
	out := make([]nfl.TeamKey, 0, len(want))
	for _, k := range all {
		if _, ok := want[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
