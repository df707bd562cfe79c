package espn

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tyler180/rb-matchups/internal/nfl"
)

// Player profile links look like /nfl/player/_/id/4241457/bijan-robinson.
var playerIDRe = regexp.MustCompile(`/player/_/id/(\d+)`)

// playerFromLink extracts the identity carried by a profile link. Abstains
// when the href has no id or the link text is empty.
func playerFromLink(a *goquery.Selection) (id, name string, ok bool) {
	href, _ := a.Attr("href")
	m := playerIDRe.FindStringSubmatch(href)
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSpace(a.Text())
	if name == "" {
		return "", "", false
	}
	return m[1], name, true
}

// Position resolution for a roster link is an ordered fallback chain; each
// strategy either answers definitely or reports no match.
type positionStrategy func(a *goquery.Selection, wordRe *regexp.Regexp) (string, bool)

var positionStrategies = []positionStrategy{
	positionFromRowCell,
	positionFromShortToken,
	positionFromSibling,
}

// Highest confidence: a cell in the link's row contains the target position
// as a whole word. Use the full cell text.
func positionFromRowCell(a *goquery.Selection, wordRe *regexp.Regexp) (string, bool) {
	row := a.Closest("tr")
	if row.Length() == 0 {
		return "", false
	}
	found := ""
	row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		text := strings.TrimSpace(td.Text())
		if text != "" && wordRe.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}

// Lower confidence: the first short token (<=3 chars) in any cell of the
// row. Roster tables usually keep the position in such a cell.
func positionFromShortToken(a *goquery.Selection, _ *regexp.Regexp) (string, bool) {
	row := a.Closest("tr")
	if row.Length() == 0 {
		return "", false
	}
	found := ""
	row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		fields := strings.Fields(td.Text())
		if len(fields) > 0 && len(fields[0]) <= 3 {
			found = fields[0]
			return false
		}
		return true
	})
	return found, found != ""
}

// Last resort for links outside any table row: the next sibling's text.
func positionFromSibling(a *goquery.Selection, _ *regexp.Regexp) (string, bool) {
	if a.Closest("tr").Length() > 0 {
		return "", false
	}
	sib := a.Next()
	if sib.Length() == 0 {
		return "", false
	}
	text := strings.TrimSpace(sib.Text())
	return text, text != ""
}

func resolvePosition(a *goquery.Selection, wordRe *regexp.Regexp) (string, bool) {
	for _, strat := range positionStrategies {
		if pos, ok := strat(a, wordRe); ok {
			return pos, true
		}
	}
	return "", false
}

// ExtractRoster scans a team roster page for player profile links and keeps
// the players whose resolved position text contains pos. De-duplicates by
// player id within the page; first kept occurrence wins.
func ExtractRoster(doc *goquery.Document, team nfl.TeamKey, pos string) []RosterEntry {
	wordRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pos) + `\b`)
	posUpper := strings.ToUpper(pos)

	seen := make(map[string]struct{})
	var out []RosterEntry

	doc.Find(`a[href*="/player/_/id/"]`).Each(func(_ int, a *goquery.Selection) {
		id, name, ok := playerFromLink(a)
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		position, ok := resolvePosition(a, wordRe)
		if !ok || !strings.Contains(strings.ToUpper(position), posUpper) {
			return
		}
		seen[id] = struct{}{}
		out = append(out, RosterEntry{
			PlayerIdentity: PlayerIdentity{PlayerID: id, PlayerName: name, Team: team},
			Position:       position,
		})
	})

	return out
}
