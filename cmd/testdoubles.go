//go:build small_tests || all_tests

package cmd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

type TestLambdaClient struct {
	InvokeInput  *lambda.InvokeInput
	InvokeOutput *lambda.InvokeOutput
	InvokeError  error
}

func NewTestLambdaClient() *TestLambdaClient {
	return &TestLambdaClient{InvokeOutput: &lambda.InvokeOutput{}}
}

func (tlc *TestLambdaClient) Invoke(
	_ context.Context, input *lambda.InvokeInput, _ ...func(*lambda.Options),
) (*lambda.InvokeOutput, error) {
	tlc.InvokeInput = input
	return tlc.InvokeOutput, tlc.InvokeError
}

type TestCloudFormationClient struct {
	DescribeStacksInput  *cloudformation.DescribeStacksInput
	DescribeStacksOutput *cloudformation.DescribeStacksOutput
	DescribeStacksError  error
}

func NewTestCloudFormationClient() *TestCloudFormationClient {
	return &TestCloudFormationClient{
		DescribeStacksOutput: &cloudformation.DescribeStacksOutput{
			Stacks: []cftypes.Stack{TestStack},
		},
	}
}

func (tcfc *TestCloudFormationClient) DescribeStacks(
	_ context.Context,
	input *cloudformation.DescribeStacksInput,
	_ ...func(*cloudformation.Options),
) (*cloudformation.DescribeStacksOutput, error) {
	tcfc.DescribeStacksInput = input
	return tcfc.DescribeStacksOutput, tcfc.DescribeStacksError
}

type TestSesV2Client struct {
	GetAccountInput  *sesv2.GetAccountInput
	GetAccountOutput *sesv2.GetAccountOutput
	GetAccountError  error
}

func NewTestSesV2Client() *TestSesV2Client {
	return &TestSesV2Client{GetAccountOutput: &sesv2.GetAccountOutput{}}
}

func (tsc *TestSesV2Client) GetAccount(
	_ context.Context, input *sesv2.GetAccountInput, _ ...func(*sesv2.Options),
) (*sesv2.GetAccountOutput, error) {
	tsc.GetAccountInput = input
	return tsc.GetAccountOutput, tsc.GetAccountError
}
