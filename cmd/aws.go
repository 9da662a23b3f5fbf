package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/lettered/verifyapi/email"
	"github.com/lettered/verifyapi/ops"
	"github.com/lettered/verifyapi/ratelimit"
)

var AwsConfig aws.Config = ops.MustLoadDefaultAwsConfig()

type LimiterFactoryFunc func(tableName string) *ratelimit.DynamoDbLimiter

func NewDynamoDbLimiter(tableName string) *ratelimit.DynamoDbLimiter {
	return ratelimit.NewDynamoDbLimiter(AwsConfig, tableName)
}

type LambdaClient interface {
	Invoke(
		context.Context,
		*lambda.InvokeInput,
		...func(*lambda.Options),
	) (*lambda.InvokeOutput, error)
}

type LambdaClientFactoryFunc func() LambdaClient

func NewLambdaClient() LambdaClient {
	return lambda.NewFromConfig(AwsConfig)
}

type CloudFormationClient interface {
	DescribeStacks(
		context.Context,
		*cloudformation.DescribeStacksInput,
		...func(*cloudformation.Options),
	) (*cloudformation.DescribeStacksOutput, error)
}

type CloudFormationClientFactoryFunc func() CloudFormationClient

func NewCloudFormationClient() CloudFormationClient {
	return cloudformation.NewFromConfig(AwsConfig)
}

type SesV2ClientFactoryFunc func() email.SesV2Api

func NewSesV2Client() email.SesV2Api {
	return sesv2.NewFromConfig(AwsConfig)
}

// FunctionArnKey is the CloudFormation stack output naming the deployed
// Lambda function's ARN.
const FunctionArnKey = "VerifyApiFunctionArn"

// GetLambdaArn resolves the deployed function's ARN from the stack outputs,
// so send doesn't need the raw ARN pasted in.
func GetLambdaArn(
	ctx context.Context, cfc CloudFormationClient, stackName string,
) (string, error) {
	input := &cloudformation.DescribeStacksInput{StackName: &stackName}
	output, err := cfc.DescribeStacks(ctx, input)

	if err != nil {
		return "", fmt.Errorf("failed to get Lambda ARN for %s: %w",
			stackName, ops.AwsError(err))
	} else if len(output.Stacks) == 0 {
		return "", fmt.Errorf("stack not found: %s", stackName)
	}

	for _, stackOutput := range output.Stacks[0].Outputs {
		if aws.ToString(stackOutput.OutputKey) == FunctionArnKey {
			return aws.ToString(stackOutput.OutputValue), nil
		}
	}
	return "", fmt.Errorf(`stack "%s" doesn't contain output key "%s"`,
		stackName, FunctionArnKey)
}
