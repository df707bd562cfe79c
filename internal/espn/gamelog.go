package espn

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Game-log tables are strictly positional: date, opponent, result, then
// five rushing columns; receiving columns follow only on full-width rows.
// Each column declares the cell count a row must have before the column is
// even attempted, and parses with abstain-per-field semantics: a bad cell
// leaves that field nil without discarding the row.
type statColumn struct {
	idx      int
	minCells int
	assign   func(*GameRecord, string)
}

const (
	gamelogMinCells = 8  // date, opp, result + CAR, YDS, AVG, TD, LNG
	gamelogFullRow  = 14 // receiving section present past this width
)

var gamelogColumns = []statColumn{
	{3, gamelogMinCells, func(g *GameRecord, s string) { g.RushAtt = intField(s) }},
	{4, gamelogMinCells, func(g *GameRecord, s string) { g.RushYds = intField(s) }},
	{5, gamelogMinCells, func(g *GameRecord, s string) { g.RushAvg = floatField(s) }},
	{6, gamelogMinCells, func(g *GameRecord, s string) { g.RushTD = intField(s) }},
	// LNG sometimes carries an inline marker; only pure digits count.
	{7, gamelogMinCells, func(g *GameRecord, s string) { g.RushLong = digitsField(s) }},
	{8, gamelogFullRow, func(g *GameRecord, s string) { g.Receptions = intField(s) }},
	{9, gamelogFullRow, func(g *GameRecord, s string) { g.Targets = intField(s) }},
	{10, gamelogFullRow, func(g *GameRecord, s string) { g.RecYds = intField(s) }},
}

// ExtractGameLog reads the first table on a player's game-log page. The
// first two rows are season and column headers. Rows shorter than the
// rushing section are subtotal rows, not games, and are skipped whole.
// Output preserves source row order (most recent first).
func ExtractGameLog(doc *goquery.Document, p PlayerIdentity) []GameRecord {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var out []GameRecord
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i < 2 {
			return
		}
		cells := tr.Find("td")
		n := cells.Length()
		if n < gamelogMinCells {
			return
		}

		texts := make([]string, n)
		cells.Each(func(j int, td *goquery.Selection) {
			texts[j] = strings.TrimSpace(td.Text())
		})

		g := GameRecord{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Team:       p.Team,
			Date:       texts[0],
			Opponent:   texts[1],
			Result:     texts[2],
		}
		for _, col := range gamelogColumns {
			if n >= col.minCells && col.idx < n {
				col.assign(&g, texts[col.idx])
			}
		}
		out = append(out, g)
	})

	return out
}

func intField(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func floatField(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func digitsField(s string) *int {
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	return intField(s)
}
