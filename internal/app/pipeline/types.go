package pipeline

import "encoding/json"

// Event is the Lambda payload.
type Event struct {
	Mode     string `json:"mode"`      // rosters | starters | gamelogs | compare | materialize | all
	Season   string `json:"season"`    // e.g., "2025"
	TeamList string `json:"team_list"` // CSV of team keys ("sea,tb"); empty means all 32
}

// Raw is used by the Lambda entrypoint to avoid tight coupling to the event type at the edge.
type Raw = json.RawMessage
