//go:build small_tests || all_tests

package ratelimit

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TestDynamoDbClient implements DynamoDbClient for unit tests. Each *Output
// member is initialized to a default non-nil value by NewTestDynamoDbClient.
type TestDynamoDbClient struct {
	PutItemInput      *dynamodb.PutItemInput
	PutItemOutput     *dynamodb.PutItemOutput
	PutItemErr        error
	CreateTableInput  *dynamodb.CreateTableInput
	CreateTableOutput *dynamodb.CreateTableOutput
	CreateTableErr    error
	DescTableInput    *dynamodb.DescribeTableInput
	DescTableOutput   *dynamodb.DescribeTableOutput
	DescTableErr      error
	UpdateTtlInput    *dynamodb.UpdateTimeToLiveInput
	UpdateTtlOutput   *dynamodb.UpdateTimeToLiveOutput
	UpdateTtlErr      error
	DeleteTableInput  *dynamodb.DeleteTableInput
	DeleteTableErr    error
}

func NewTestDynamoDbClient() *TestDynamoDbClient {
	tableDesc := &types.TableDescription{
		TableName:   aws.String(""),
		TableStatus: types.TableStatusActive,
	}
	attrName := expiresAtAttr
	enabled := true

	return &TestDynamoDbClient{
		PutItemOutput:     &dynamodb.PutItemOutput{},
		CreateTableOutput: &dynamodb.CreateTableOutput{
			TableDescription: tableDesc,
		},
		DescTableOutput: &dynamodb.DescribeTableOutput{Table: tableDesc},
		UpdateTtlOutput: &dynamodb.UpdateTimeToLiveOutput{
			TimeToLiveSpecification: &types.TimeToLiveSpecification{
				AttributeName: &attrName, Enabled: &enabled,
			},
		},
	}
}

func (c *TestDynamoDbClient) PutItem(
	_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	c.PutItemInput = input
	return c.PutItemOutput, c.PutItemErr
}

func (c *TestDynamoDbClient) CreateTable(
	_ context.Context,
	input *dynamodb.CreateTableInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.CreateTableOutput, error) {
	c.CreateTableInput = input
	return c.CreateTableOutput, c.CreateTableErr
}

func (c *TestDynamoDbClient) DescribeTable(
	_ context.Context,
	input *dynamodb.DescribeTableInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.DescribeTableOutput, error) {
	c.DescTableInput = input
	return c.DescTableOutput, c.DescTableErr
}

func (c *TestDynamoDbClient) UpdateTimeToLive(
	_ context.Context,
	input *dynamodb.UpdateTimeToLiveInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.UpdateTimeToLiveOutput, error) {
	c.UpdateTtlInput = input
	return c.UpdateTtlOutput, c.UpdateTtlErr
}

func (c *TestDynamoDbClient) DeleteTable(
	_ context.Context,
	input *dynamodb.DeleteTableInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.DeleteTableOutput, error) {
	c.DeleteTableInput = input
	return &dynamodb.DeleteTableOutput{}, c.DeleteTableErr
}
