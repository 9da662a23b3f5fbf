package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDbClient is the subset of the DynamoDB API the limiter needs,
// extracted as an interface for unit testing.
type DynamoDbClient interface {
	CreateTable(
		context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options),
	) (*dynamodb.CreateTableOutput, error)

	DescribeTable(
		context.Context,
		*dynamodb.DescribeTableInput,
		...func(*dynamodb.Options),
	) (*dynamodb.DescribeTableOutput, error)

	UpdateTimeToLive(
		context.Context,
		*dynamodb.UpdateTimeToLiveInput,
		...func(*dynamodb.Options),
	) (*dynamodb.UpdateTimeToLiveOutput, error)

	DeleteTable(
		context.Context, *dynamodb.DeleteTableInput, ...func(*dynamodb.Options),
	) (*dynamodb.DeleteTableOutput, error)

	PutItem(
		context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
}

type (
	dbString     = types.AttributeValueMemberS
	dbNumber     = types.AttributeValueMemberN
	dbAttributes = map[string]types.AttributeValue
)

var DynamoDbPrimaryKey = "client_id"

const lastSeenAttr = "last_seen"

// Time To Live attribute; DynamoDB removes expired entries on its own, which
// replaces the in-memory limiter's hourly sweep.
const expiresAtAttr = "expires_at"

// DynamoDbLimiter is a durable, shared Limiter for deployments where the
// process-local map is not enough. Atomicity of check-then-set comes from a
// conditional put: the write succeeds only if no entry exists or the
// existing entry is older than the cooldown.
type DynamoDbLimiter struct {
	Client    DynamoDbClient
	TableName string
	Cooldown  time.Duration
}

func NewDynamoDbLimiter(cfg aws.Config, tableName string) *DynamoDbLimiter {
	return &DynamoDbLimiter{
		Client:    dynamodb.NewFromConfig(cfg),
		TableName: tableName,
		Cooldown:  DefaultCooldown,
	}
}

func (l *DynamoDbLimiter) CheckAndRecord(
	ctx context.Context, clientID string, now time.Time,
) (Decision, error) {
	cutoff := now.Add(-l.Cooldown)
	input := &dynamodb.PutItemInput{
		TableName: &l.TableName,
		Item: dbAttributes{
			DynamoDbPrimaryKey: &dbString{Value: clientID},
			lastSeenAttr:       toDynamoDbTimestamp(now),
			expiresAtAttr:      toDynamoDbTimestamp(now.Add(RetentionWindow)),
		},
		ConditionExpression: aws.String(fmt.Sprintf(
			"attribute_not_exists(%s) OR %s < :cutoff",
			DynamoDbPrimaryKey, lastSeenAttr,
		)),
		ExpressionAttributeValues: dbAttributes{
			":cutoff": toDynamoDbTimestamp(cutoff),
		},
		ReturnValuesOnConditionCheckFailure: types.
			ReturnValuesOnConditionCheckFailureAllOld,
	}

	if _, err := l.Client.PutItem(ctx, input); err != nil {
		var checkFailed *types.ConditionalCheckFailedException
		if errors.As(err, &checkFailed) {
			return l.denial(checkFailed.Item, now), nil
		}
		const errFmt = "rate limit check for %s failed: %s"
		return Decision{}, fmt.Errorf(errFmt, clientID, err)
	}
	return Decision{Allowed: true}, nil
}

// denial computes the remaining wait from the stored entry returned with the
// failed condition check. A missing or unparseable attribute reports the
// full cooldown rather than failing the request.
func (l *DynamoDbLimiter) denial(item dbAttributes, now time.Time) Decision {
	retryAfter := l.Cooldown

	if lastSeen, err := getTimestamp(item, lastSeenAttr); err == nil {
		if remaining := l.Cooldown - now.Sub(lastSeen); remaining > 0 {
			retryAfter = remaining
		}
	}
	return Decision{RetryAfter: retryAfter}
}

func toDynamoDbTimestamp(t time.Time) *dbNumber {
	return &dbNumber{Value: strconv.FormatInt(t.Unix(), 10)}
}

func getTimestamp(attrs dbAttributes, name string) (time.Time, error) {
	attr, ok := attrs[name]
	if !ok {
		return time.Time{}, fmt.Errorf("attribute '%s' not in: %+v", name, attrs)
	}
	num, ok := attr.(*dbNumber)
	if !ok {
		const errFmt = "attribute '%s' is of type %T, not %T: %+v"
		return time.Time{}, fmt.Errorf(errFmt, name, attr, num, attr)
	}
	ts, err := strconv.ParseInt(num.Value, 10, 64)
	if err != nil {
		const errFmt = "failed to parse '%s' from: %+v: %s"
		return time.Time{}, fmt.Errorf(errFmt, name, num, err)
	}
	return time.Unix(ts, 0), nil
}

var dynamoDbCreateTableInput = &dynamodb.CreateTableInput{
	AttributeDefinitions: []types.AttributeDefinition{
		{
			AttributeName: &DynamoDbPrimaryKey,
			AttributeType: types.ScalarAttributeTypeS,
		},
	},
	KeySchema: []types.KeySchemaElement{
		{AttributeName: &DynamoDbPrimaryKey, KeyType: types.KeyTypeHash},
	},
	BillingMode: types.BillingModePayPerRequest,
}

func (l *DynamoDbLimiter) CreateTable(ctx context.Context) (err error) {
	var input dynamodb.CreateTableInput = *dynamoDbCreateTableInput
	input.TableName = &l.TableName

	if _, err = l.Client.CreateTable(ctx, &input); err != nil {
		err = fmt.Errorf("failed to create db table %s: %s", l.TableName, err)
	}
	return
}

func (l *DynamoDbLimiter) WaitForTable(
	ctx context.Context, maxAttempts int, sleep func(),
) error {
	if maxAttempts <= 0 {
		const errFmt = "maxAttempts to wait for db table must be >= 0, got: %d"
		return fmt.Errorf(errFmt, maxAttempts)
	}

	for current := 0; ; {
		td, err := l.describeTable(ctx)

		if err == nil && td.TableStatus == types.TableStatusActive {
			return nil
		} else if current++; current == maxAttempts {
			const errFmt = "db table %s not active after " +
				"%d attempts to check; last error: %s"
			return fmt.Errorf(errFmt, l.TableName, maxAttempts, err)
		}
		sleep()
	}
}

func (l *DynamoDbLimiter) describeTable(
	ctx context.Context,
) (td *types.TableDescription, err error) {
	input := &dynamodb.DescribeTableInput{TableName: &l.TableName}
	output, descErr := l.Client.DescribeTable(ctx, input)

	if descErr != nil {
		const errFmt = "failed to describe db table %s: %s"
		err = fmt.Errorf(errFmt, l.TableName, descErr)
	} else {
		td = output.Table
	}
	return
}

func (l *DynamoDbLimiter) UpdateTimeToLive(
	ctx context.Context,
) (ttlSpec *types.TimeToLiveSpecification, err error) {
	attrName := expiresAtAttr
	enabled := true
	spec := &types.TimeToLiveSpecification{
		AttributeName: &attrName, Enabled: &enabled,
	}
	input := &dynamodb.UpdateTimeToLiveInput{
		TableName: &l.TableName, TimeToLiveSpecification: spec,
	}

	var output *dynamodb.UpdateTimeToLiveOutput
	if output, err = l.Client.UpdateTimeToLive(ctx, input); err != nil {
		err = fmt.Errorf("failed to update Time To Live: %s", err)
	} else {
		ttlSpec = output.TimeToLiveSpecification
	}
	return
}

func (l *DynamoDbLimiter) DeleteTable(ctx context.Context) error {
	input := &dynamodb.DeleteTableInput{TableName: &l.TableName}
	if _, err := l.Client.DeleteTable(ctx, input); err != nil {
		return fmt.Errorf(
			"failed to delete db table %s: %s", l.TableName, err,
		)
	}
	return nil
}

// CreateRateLimitTable creates the table, waits for it to become active, and
// enables Time To Live on the expiry attribute.
func (l *DynamoDbLimiter) CreateRateLimitTable(
	ctx context.Context, maxWaitDuration time.Duration,
) error {
	const sleepInterval = time.Second
	maxAttempts := int(maxWaitDuration / sleepInterval)
	sleep := func() { time.Sleep(sleepInterval) }

	if err := l.CreateTable(ctx); err != nil {
		return err
	} else if err = l.WaitForTable(ctx, maxAttempts, sleep); err != nil {
		return err
	}
	_, err := l.UpdateTimeToLive(ctx)
	return err
}
