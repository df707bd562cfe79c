package nfl

import "strings"

// TeamKey is the canonical lowercase short code for one of the 32 teams.
// It matches the abbreviation ESPN uses in team URLs, so scrape-source
// abbreviations canonicalize as identity.
type TeamKey string

// Unresolved marks an input that could not be mapped to a team. It must be
// excluded from joins, never substituted with a default team.
const Unresolved TeamKey = ""

func (k TeamKey) Resolved() bool { return k != Unresolved }

// Display name → key, in scrape order (the order batch runs walk teams).
var teams = []struct {
	Name string
	Key  TeamKey
}{
	{"New York Giants", "nyg"}, {"Cincinnati Bengals", "cin"},
	{"Buffalo Bills", "buf"}, {"Miami Dolphins", "mia"},
	{"Chicago Bears", "chi"}, {"Washington Commanders", "wsh"},
	{"Atlanta Falcons", "atl"}, {"Tennessee Titans", "ten"},
	{"Minnesota Vikings", "min"}, {"New York Jets", "nyj"},
	{"Carolina Panthers", "car"}, {"Dallas Cowboys", "dal"},
	{"New Orleans Saints", "no"}, {"Baltimore Ravens", "bal"},
	{"Philadelphia Eagles", "phi"}, {"Arizona Cardinals", "ari"},
	{"Los Angeles Chargers", "lac"}, {"San Francisco 49ers", "sf"},
	{"Pittsburgh Steelers", "pit"}, {"Las Vegas Raiders", "lv"},
	{"Los Angeles Rams", "lar"}, {"Cleveland Browns", "cle"},
	{"Detroit Lions", "det"}, {"Kansas City Chiefs", "kc"},
	{"Tampa Bay Buccaneers", "tb"}, {"Indianapolis Colts", "ind"},
	{"Green Bay Packers", "gb"}, {"New England Patriots", "ne"},
	{"Houston Texans", "hou"}, {"Seattle Seahawks", "sea"},
	{"Denver Broncos", "den"}, {"Jacksonville Jaguars", "jax"},
}

var (
	nameToKey = make(map[string]TeamKey, len(teams))
	keySet    = make(map[TeamKey]struct{}, len(teams))
)

func init() {
	for _, t := range teams {
		nameToKey[t.Name] = t.Key
		keySet[t.Key] = struct{}{}
	}
}

// AllTeams returns every TeamKey in scrape order.
func AllTeams() []TeamKey {
	out := make([]TeamKey, len(teams))
	for i, t := range teams {
		out[i] = t.Key
	}
	return out
}

// DisplayName returns the full team name for a key, or "" if unknown.
func DisplayName(k TeamKey) string {
	for _, t := range teams {
		if t.Key == k {
			return t.Name
		}
	}
	return ""
}

// CanonicalTeam maps a full display name or a source abbreviation to its
// TeamKey. Unknown inputs come back Unresolved.
func CanonicalTeam(input string) TeamKey {
	s := strings.TrimSpace(input)
	if k, ok := nameToKey[s]; ok {
		return k
	}
	k := TeamKey(strings.ToLower(s))
	if _, ok := keySet[k]; ok {
		return k
	}
	return Unresolved
}

// CanonicalOpponent extracts a TeamKey from a game-log opponent token such
// as "@SEA" or "vsKC". Anything longer than a short code is free text mixed
// into the cell; abstain rather than guess.
func CanonicalOpponent(raw string) TeamKey {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	if len(s) >= 2 && strings.EqualFold(s[:2], "vs") {
		s = s[2:]
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > 3 {
		return Unresolved
	}
	k := TeamKey(s)
	if _, ok := keySet[k]; !ok {
		return Unresolved
	}
	return k
}
