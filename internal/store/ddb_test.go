package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/rb-matchups/internal/espn"
)

// fake client implementing DynamoDBAPI
type fakeDDB struct {
	calls int
	items []map[string]types.AttributeValue
	// simulate first attempt returning unprocessed, second succeeds
	failFirst bool
}

func (f *fakeDDB) BatchWriteItem(ctx context.Context, in *ddb.BatchWriteItemInput, _ ...func(*ddb.Options)) (*ddb.BatchWriteItemOutput, error) {
	f.calls++
	if f.failFirst {
		f.failFirst = false
		// Echo back all as unprocessed to force a retry
		return &ddb.BatchWriteItemOutput{
			UnprocessedItems: in.RequestItems,
		}, nil
	}
	for _, reqs := range in.RequestItems {
		for _, r := range reqs {
			if r.PutRequest != nil {
				f.items = append(f.items, r.PutRequest.Item)
			}
		}
	}
	return &ddb.BatchWriteItemOutput{}, nil
}

func TestPutRosterRows_BatchingAndRetry(t *testing.T) {
	// 30 rows split into batches of 25 + 5
	var rows []espn.RosterEntry
	for i := 0; i < 30; i++ {
		rows = append(rows, espn.RosterEntry{
			PlayerIdentity: espn.PlayerIdentity{
				PlayerID:   fmt.Sprintf("%d", 1000+i),
				PlayerName: fmt.Sprintf("P%02d", i),
				Team:       "atl",
			},
			Position: "RB",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fc := &fakeDDB{failFirst: true}
	if err := PutRosterRows(ctx, fc, "tbl", "2025", rows); err != nil {
		t.Fatalf("PutRosterRows error: %v", err)
	}

	// First batch takes two attempts, second takes one.
	if fc.calls != 3 {
		t.Fatalf("expected 3 BatchWriteItem calls, got %d", fc.calls)
	}
	if len(fc.items) != 30 {
		t.Fatalf("expected 30 items written, got %d", len(fc.items))
	}
}

func TestPutGameRows_OmitsAbsentStats(t *testing.T) {
	att := 15
	rows := []espn.GameRecord{{
		PlayerID:   "42",
		PlayerName: "A Back",
		Team:       "atl",
		Date:       "10/01",
		Opponent:   "@SEA",
		Result:     "W 20-17",
		RushAtt:    &att,
		// RushYds absent on purpose
	}}

	fc := &fakeDDB{}
	if err := PutGameRows(context.Background(), fc, "tbl", "2025", rows); err != nil {
		t.Fatalf("PutGameRows error: %v", err)
	}
	if len(fc.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(fc.items))
	}
	it := fc.items[0]
	if _, ok := it["RushAtt"]; !ok {
		t.Error("present stat should be written")
	}
	if _, ok := it["RushYds"]; ok {
		t.Error("absent stat must not be written as an attribute")
	}
	if got := it["GameKey"].(*types.AttributeValueMemberS).Value; got != "42#10/01" {
		t.Errorf("GameKey = %q", got)
	}
}

func TestPutRosterRows_SkipsUnkeyedRows(t *testing.T) {
	rows := []espn.RosterEntry{
		{PlayerIdentity: espn.PlayerIdentity{PlayerID: "", PlayerName: "No ID", Team: "atl"}},
		{PlayerIdentity: espn.PlayerIdentity{PlayerID: "7", PlayerName: "Keeper", Team: "atl"}, Position: "RB"},
	}
	fc := &fakeDDB{}
	if err := PutRosterRows(context.Background(), fc, "tbl", "2025", rows); err != nil {
		t.Fatalf("PutRosterRows error: %v", err)
	}
	if len(fc.items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(fc.items))
	}
}
