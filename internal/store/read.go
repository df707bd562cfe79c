package store

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/rb-matchups/internal/espn"
	"github.com/tyler180/rb-matchups/internal/nfl"
)

type DynamoDBReadAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// LoadStarters reads back every starter row for a season.
func LoadStarters(ctx context.Context, ddb DynamoDBReadAPI, table, season string) ([]espn.DepthChartEntry, error) {
	var out []espn.DepthChartEntry

	var lastKey map[string]types.AttributeValue
	for {
		res, err := ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			KeyConditionExpression:    aws.String("#S = :s"),
			ExpressionAttributeNames:  map[string]string{"#S": "Season"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: season}},
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, err
		}

		for _, it := range res.Items {
			e := espn.DepthChartEntry{
				PlayerIdentity: espn.PlayerIdentity{
					PlayerID:   getStr(it, "PlayerID"),
					PlayerName: getStr(it, "Player"),
					Team:       nfl.TeamKey(getStr(it, "Team")),
				},
				DepthRank: getStr(it, "DepthRank"),
			}
			if e.PlayerID == "" {
				continue
			}
			out = append(out, e)
		}

		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = res.LastEvaluatedKey
	}
	return out, nil
}

// LoadGameRows reads back every game row for a season. Stat attributes that
// were never written come back as nil pointers, matching what the extractor
// produced.
func LoadGameRows(ctx context.Context, ddb DynamoDBReadAPI, table, season string) ([]espn.GameRecord, error) {
	var out []espn.GameRecord

	var lastKey map[string]types.AttributeValue
	for {
		res, err := ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			KeyConditionExpression:    aws.String("#S = :s"),
			ExpressionAttributeNames:  map[string]string{"#S": "Season"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: season}},
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, err
		}

		for _, it := range res.Items {
			g := espn.GameRecord{
				PlayerID:   getStr(it, "PlayerID"),
				PlayerName: getStr(it, "Player"),
				Team:       nfl.TeamKey(getStr(it, "Team")),
				Date:       getStr(it, "Date"),
				Opponent:   getStr(it, "Opponent"),
				Result:     getStr(it, "Result"),
				RushAtt:    getIntPtr(it, "RushAtt"),
				RushYds:    getIntPtr(it, "RushYds"),
				RushAvg:    getFloatPtr(it, "RushAvg"),
				RushTD:     getIntPtr(it, "RushTD"),
				RushLong:   getIntPtr(it, "RushLong"),
				Receptions: getIntPtr(it, "Receptions"),
				Targets:    getIntPtr(it, "Targets"),
				RecYds:     getIntPtr(it, "RecYds"),
			}
			if g.PlayerID == "" || g.Date == "" {
				continue
			}
			out = append(out, g)
		}

		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = res.LastEvaluatedKey
	}
	return out, nil
}

// ---------- helpers (local to store) ----------

func getStr(m map[string]types.AttributeValue, key string) string {
	if v, ok := m[key]; ok {
		if s, ok2 := v.(*types.AttributeValueMemberS); ok2 {
			return s.Value
		}
	}
	return ""
}

func getIntPtr(m map[string]types.AttributeValue, key string) *int {
	if v, ok := m[key]; ok {
		if n, ok2 := v.(*types.AttributeValueMemberN); ok2 {
			if i, err := strconv.Atoi(n.Value); err == nil {
				return &i
			}
		}
	}
	return nil
}

func getFloatPtr(m map[string]types.AttributeValue, key string) *float64 {
	if v, ok := m[key]; ok {
		if n, ok2 := v.(*types.AttributeValueMemberN); ok2 {
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}
