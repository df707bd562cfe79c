package espn

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtractRoster_PositionCellMatch(t *testing.T) {
	html := `<table><tbody>
<tr><td><a href="/nfl/player/_/id/100/a-back">A Back</a></td><td>RB</td><td>25</td></tr>
<tr><td><a href="/nfl/player/_/id/101/b-wide">B Wide</a></td><td>WR</td><td>27</td></tr>
<tr><td><a href="/nfl/player/_/id/102/c-full">C Full</a></td><td>FB/RB</td><td>24</td></tr>
</tbody></table>`
	got := ExtractRoster(mustDoc(t, html), "atl", "RB")
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
	if got[0].PlayerID != "100" || got[0].PlayerName != "A Back" || got[0].Team != "atl" {
		t.Errorf("unexpected first entry: %+v", got[0])
	}
	if got[0].Position != "RB" {
		t.Errorf("Position = %q, want RB", got[0].Position)
	}
	if got[1].PlayerID != "102" || got[1].Position != "FB/RB" {
		t.Errorf("unexpected second entry: %+v", got[1])
	}
}

func TestExtractRoster_DedupeByPlayerID(t *testing.T) {
	html := `<table><tbody>
<tr><td><a href="/nfl/player/_/id/100/a-back">A Back</a></td><td>RB</td></tr>
<tr><td><a href="/nfl/player/_/id/100/a-back">A. Back</a></td><td>RB</td></tr>
</tbody></table>`
	got := ExtractRoster(mustDoc(t, html), "atl", "RB")
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].PlayerName != "A Back" {
		t.Errorf("first occurrence should win, got %q", got[0].PlayerName)
	}
}

func TestExtractRoster_ShortTokenFallback(t *testing.T) {
	// No cell matches \bRB\b, but the first short token of a cell does
	// contain the position substring.
	html := `<table><tbody>
<tr><td><a href="/nfl/player/_/id/200/dual-threat">Dual Threat</a></td><td>RB2 depth</td></tr>
</tbody></table>`
	got := ExtractRoster(mustDoc(t, html), "chi", "RB")
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Position != "RB2" {
		t.Errorf("Position = %q, want RB2", got[0].Position)
	}
}

func TestExtractRoster_SiblingFallback(t *testing.T) {
	html := `<div><a href="/nfl/player/_/id/300/e-loose">E Loose</a><span>RB</span></div>`
	got := ExtractRoster(mustDoc(t, html), "dal", "RB")
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Position != "RB" {
		t.Errorf("Position = %q, want RB", got[0].Position)
	}
}

func TestExtractRoster_Abstains(t *testing.T) {
	html := `<table><tbody>
<tr><td><a href="/nfl/player/profile/no-id">No Id</a></td><td>RB</td></tr>
<tr><td><a href="/nfl/player/_/id/400/empty-name"> </a></td><td>RB</td></tr>
<tr><td><a href="/nfl/player/_/id/401/quincy-back">Quincy Back</a></td><td>QB</td></tr>
</tbody></table>`
	if got := ExtractRoster(mustDoc(t, html), "kc", "RB"); len(got) != 0 {
		t.Fatalf("got %d entries, want 0: %+v", len(got), got)
	}
}
