package espn

import "github.com/tyler180/rb-matchups/internal/nfl"

// PlayerIdentity is the de-duplication unit across pages: the numeric id
// from the player's profile URL plus the display name under the link.
type PlayerIdentity struct {
	PlayerID   string
	PlayerName string
	Team       nfl.TeamKey
}

// RosterEntry is one player kept from a roster page after position
// filtering.
type RosterEntry struct {
	PlayerIdentity
	Position string // cell text as found; may be longer than the bare code
}

// DepthChartEntry is the top-listed player at a position on a team's depth
// chart. Only rank 1 is extracted.
type DepthChartEntry struct {
	PlayerIdentity
	DepthRank string // e.g. "RB1"
}

// GameRecord is one row of a player's game log. Numeric fields are nil when
// the source cell was empty or unparsable; they are never defaulted to zero
// so downstream sums stay honest.
type GameRecord struct {
	PlayerID   string
	PlayerName string
	Team       nfl.TeamKey

	Date     string
	Opponent string // raw token, e.g. "@SEA" or "vsKC"
	Result   string

	RushAtt  *int
	RushYds  *int
	RushAvg  *float64
	RushTD   *int
	RushLong *int

	Receptions *int
	Targets    *int
	RecYds     *int
}

// DefenseStatRow is one team's line from the league defense rushing page.
// Values stay as display text ("1,713") until the ranker parses them; that
// input is authoritative and fails the run if it will not parse.
type DefenseStatRow struct {
	Team         string
	RushingYards string
	YardsPerGame string
}
