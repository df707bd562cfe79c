package espn

import (
	"strings"
	"testing"
)

func TestExtractDefenseStats(t *testing.T) {
	page := `<html><body>
<script>var other = 1;</script>
<script>window['__espnfitt__']={"page":{"content":{"stats":{"teamStats":[
{"team":{"displayName":"Seattle Seahawks"},"stats":[
  {"name":"rushingYards","value":1713,"displayValue":"1,713"},
  {"name":"rushingYardsPerGame","value":100.8,"displayValue":"100.8"}]},
{"team":{"displayName":"Chicago Bears"},"stats":[
  {"name":"rushingYards","value":2011,"displayValue":"2,011"},
  {"name":"rushingYardsPerGame","value":118.3,"displayValue":"118.3"}]}
],"dictionary":{}}}}};</script>
</body></html>`

	rows, err := ExtractDefenseStats(mustDoc(t, page))
	if err != nil {
		t.Fatalf("ExtractDefenseStats: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Team != "Seattle Seahawks" || rows[0].RushingYards != "1,713" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].YardsPerGame != "100.8" {
		t.Errorf("YardsPerGame = %q, want 100.8", rows[0].YardsPerGame)
	}
	if rows[1].Team != "Chicago Bears" || rows[1].RushingYards != "2,011" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestExtractDefenseStats_MissingPayload(t *testing.T) {
	_, err := ExtractDefenseStats(mustDoc(t, `<html><script>var x=1;</script></html>`))
	if err == nil {
		t.Fatal("expected an error when the payload is absent")
	}
	if !strings.Contains(err.Error(), "teamStats") {
		t.Errorf("error should name the missing payload: %v", err)
	}
}
