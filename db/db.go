package db

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/bareebaree/transmuseTATE/constants"
)

// GetScoreMetadata fetches one score's metadata record from the local
// DynamoDB table, keyed by filename. Returns nil when there is no item.
func GetScoreMetadata(filename string) (map[string]any, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}

	client := dynamodb.New(sess)
	key := map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(filename)},
	}
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			"transmusetate-metadata": {Keys: []map[string]*dynamodb.AttributeValue{key}},
		},
	}
	res, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}

	items := res.Responses["transmusetate-metadata"]
	if len(items) == 0 {
		return nil, nil
	}

	record := make(map[string]any)
	for name, v := range items[0] {
		if name == "PK" {
			continue
		}
		switch {
		case v.S != nil:
			record[name] = *v.S
		case v.N != nil:
			if n, err := strconv.ParseFloat(*v.N, 64); err == nil {
				record[name] = n
			}
		case v.BOOL != nil:
			record[name] = *v.BOOL
		}
	}
	return record, nil
}
