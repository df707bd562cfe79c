package espn

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/rb-matchups/internal/nfl"
)

// Depth charts render as two side-by-side tables sharing row order: one of
// position labels, one of player links. Row index is the only join key.

// ResolveStarter returns the first-listed player at pos, e.g. the RB1. The
// second return is false when the page has no usable depth table, the
// position row is missing, or the aligned row has no player link. That is a
// missing-data outcome, not an error; callers move on to the next team.
func ResolveStarter(doc *goquery.Document, team nfl.TeamKey, pos string) (DepthChartEntry, bool) {
	wrap := doc.Find("div.nfl-depth-table").First()
	if wrap.Length() == 0 {
		return DepthChartEntry{}, false
	}
	tables := wrap.Find("table")
	if tables.Length() < 2 {
		return DepthChartEntry{}, false
	}

	posRows := dataRows(tables.Eq(0))
	playerRows := dataRows(tables.Eq(1))
	if posRows.Length() == 0 || playerRows.Length() == 0 {
		return DepthChartEntry{}, false
	}
	if posRows.Length() != playerRows.Length() {
		// Alignment by index still gets attempted; flag it for diagnosis.
		log.Printf("depth: %s position/player row counts differ (%d vs %d)",
			team, posRows.Length(), playerRows.Length())
	}

	idx := -1
	posRows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if strings.Contains(tr.Text(), pos) {
			idx = i
			return false
		}
		return true
	})
	if idx < 0 || idx >= playerRows.Length() {
		return DepthChartEntry{}, false
	}

	// Earlier links in the row are higher on the depth chart.
	a := playerRows.Eq(idx).Find(`a[href*="/player/_/id/"]`).First()
	if a.Length() == 0 {
		return DepthChartEntry{}, false
	}
	id, name, ok := playerFromLink(a)
	if !ok {
		return DepthChartEntry{}, false
	}

	return DepthChartEntry{
		PlayerIdentity: PlayerIdentity{PlayerID: id, PlayerName: name, Team: team},
		DepthRank:      pos + "1",
	}, true
}

// dataRows returns a table's rows minus the shared header row.
func dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if rows.Length() < 1 {
		return rows
	}
	return rows.Slice(1, goquery.ToEnd)
}
