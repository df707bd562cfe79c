package espn

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The league defense stats page renders its table client-side; the markup
// tables are empty shells. The numbers live in a teamStats JSON array
// embedded in a script tag, so pull that out and decode it.
var teamStatsRe = regexp.MustCompile(`(?s)"teamStats":\[(.*?)\],"dictionary"`)

type teamStatsEntry struct {
	Team struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Stats []statEntry `json:"stats"`
}

type statEntry struct {
	Name         string      `json:"name"`
	Value        json.Number `json:"value"`
	DisplayValue string      `json:"displayValue"`
}

func (s statEntry) text() string {
	if s.DisplayValue != "" {
		return s.DisplayValue
	}
	return s.Value.String()
}

// ExtractDefenseStats returns one row per team with rushing yards allowed.
// This input seeds tier membership, so a page without the payload is an
// error, not an abstention.
func ExtractDefenseStats(doc *goquery.Document) ([]DefenseStatRow, error) {
	payload := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := s.Text()
		if !strings.Contains(txt, "teamStats") {
			return true
		}
		if m := teamStatsRe.FindStringSubmatch(txt); m != nil {
			payload = "[" + m[1] + "]"
			return false
		}
		return true
	})
	if payload == "" {
		return nil, errors.New("teamStats payload not found on defense page")
	}

	var entries []teamStatsEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("decode teamStats: %w", err)
	}

	rows := make([]DefenseStatRow, 0, len(entries))
	for _, e := range entries {
		row := DefenseStatRow{Team: e.Team.DisplayName}
		for _, st := range e.Stats {
			switch st.Name {
			case "rushingYards":
				row.RushingYards = st.text()
			case "rushingYardsPerGame":
				row.YardsPerGame = st.text()
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
