package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/rb-matchups/internal/analysis"
	"github.com/tyler180/rb-matchups/internal/espn"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

const maxBatch = 25

// Roster rows: PK=Season (S), SK=PlayerID#Team (S)
func PutRosterRows(ctx context.Context, ddb DynamoDBAPI, table, season string, rows []espn.RosterEntry) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.PlayerID == "" || !r.Team.Resolved() {
				continue
			}
			item := map[string]types.AttributeValue{
				"Season":    &types.AttributeValueMemberS{Value: season},
				"SK":        &types.AttributeValueMemberS{Value: r.PlayerID + "#" + string(r.Team)},
				"PlayerID":  &types.AttributeValueMemberS{Value: r.PlayerID},
				"Player":    &types.AttributeValueMemberS{Value: r.PlayerName},
				"Team":      &types.AttributeValueMemberS{Value: string(r.Team)},
				"Pos":       &types.AttributeValueMemberS{Value: r.Position},
				"UpdatedAt": &types.AttributeValueMemberN{Value: now},
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write roster rows: %w", err)
		}
	}
	return nil
}

// Starter rows: PK=Season (S), SK=Team (S). At most one starter per team.
func PutStarterRows(ctx context.Context, ddb DynamoDBAPI, table, season string, rows []espn.DepthChartEntry) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.PlayerID == "" || !r.Team.Resolved() {
				continue
			}
			item := map[string]types.AttributeValue{
				"Season":    &types.AttributeValueMemberS{Value: season},
				"Team":      &types.AttributeValueMemberS{Value: string(r.Team)},
				"PlayerID":  &types.AttributeValueMemberS{Value: r.PlayerID},
				"Player":    &types.AttributeValueMemberS{Value: r.PlayerName},
				"DepthRank": &types.AttributeValueMemberS{Value: r.DepthRank},
				"UpdatedAt": &types.AttributeValueMemberN{Value: now},
			}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write starter rows: %w", err)
		}
	}
	return nil
}

// Game rows: PK=Season (S), SK=PlayerID#Date (S). Absent stat values get no
// attribute at all so reads can tell "missing" from zero.
func PutGameRows(ctx context.Context, ddb DynamoDBAPI, table, season string, rows []espn.GameRecord) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.PlayerID == "" || r.Date == "" {
				continue
			}
			item := map[string]types.AttributeValue{
				"Season":    &types.AttributeValueMemberS{Value: season},
				"GameKey":   &types.AttributeValueMemberS{Value: r.PlayerID + "#" + r.Date},
				"PlayerID":  &types.AttributeValueMemberS{Value: r.PlayerID},
				"Player":    &types.AttributeValueMemberS{Value: r.PlayerName},
				"Team":      &types.AttributeValueMemberS{Value: string(r.Team)},
				"Date":      &types.AttributeValueMemberS{Value: r.Date},
				"Opponent":  &types.AttributeValueMemberS{Value: r.Opponent},
				"Result":    &types.AttributeValueMemberS{Value: r.Result},
				"UpdatedAt": &types.AttributeValueMemberN{Value: now},
			}
			setIntAttr(item, "RushAtt", r.RushAtt)
			setIntAttr(item, "RushYds", r.RushYds)
			setFloatAttr(item, "RushAvg", r.RushAvg)
			setIntAttr(item, "RushTD", r.RushTD)
			setIntAttr(item, "RushLong", r.RushLong)
			setIntAttr(item, "Receptions", r.Receptions)
			setIntAttr(item, "Targets", r.Targets)
			setIntAttr(item, "RecYds", r.RecYds)
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write game rows: %w", err)
		}
	}
	return nil
}

// Matchup rows: PK=Season (S), SK=Tier#Player (S).
func PutMatchupRows(ctx context.Context, ddb DynamoDBAPI, table, season string, rows []analysis.MatchupAggregate) error {
	if len(rows) == 0 {
		return nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			if r.PlayerName == "" {
				continue
			}
			item := map[string]types.AttributeValue{
				"Season":     &types.AttributeValueMemberS{Value: season},
				"TierPlayer": &types.AttributeValueMemberS{Value: string(r.Tier) + "#" + r.PlayerName},
				"Player":     &types.AttributeValueMemberS{Value: r.PlayerName},
				"Team":       &types.AttributeValueMemberS{Value: string(r.Team)},
				"Tier":       &types.AttributeValueMemberS{Value: string(r.Tier)},
				"Games":      &types.AttributeValueMemberN{Value: strconv.Itoa(r.Games)},
				"RushAtt":    &types.AttributeValueMemberN{Value: strconv.Itoa(r.RushAtt)},
				"RushYds":    &types.AttributeValueMemberN{Value: strconv.Itoa(r.RushYds)},
				"RushTD":     &types.AttributeValueMemberN{Value: strconv.Itoa(r.RushTD)},
				"RecYds":     &types.AttributeValueMemberN{Value: strconv.Itoa(r.RecYds)},
				"Receptions": &types.AttributeValueMemberN{Value: strconv.Itoa(r.Receptions)},
				"UpdatedAt":  &types.AttributeValueMemberN{Value: now},
			}
			setFloatAttr(item, "RushAvg", r.RushAvg)
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write matchup rows: %w", err)
		}
	}
	return nil
}

func setIntAttr(item map[string]types.AttributeValue, name string, v *int) {
	if v == nil {
		return
	}
	item[name] = &types.AttributeValueMemberN{Value: strconv.Itoa(*v)}
}

func setFloatAttr(item map[string]types.AttributeValue, name string, v *float64) {
	if v == nil {
		return
	}
	item[name] = &types.AttributeValueMemberN{Value: strconv.FormatFloat(*v, 'f', 2, 64)}
}

func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		time.Sleep(backoff)
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", table)
}
