package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	ltypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/spf13/cobra"

	"github.com/lettered/verifyapi/email"
)

const sendDescription = `` +
	`Reads a JSON object from standard input describing a submission:

` + email.ExampleSubmissionJson + `

It then posts the submission to the deployed verification endpoint by
invoking its Lambda function directly with a synthesized API Gateway event.

The function is identified either by the ` + FlagStackName + ` flag, which
resolves its ARN from the CloudFormation stack outputs, or by passing the ARN
as the only argument.`

func init() {
	rootCmd.AddCommand(newSendCmd(NewLambdaClient, NewCloudFormationClient))
}

func newSendCmd(
	newLambdaClient LambdaClientFactoryFunc,
	newCloudFormationClient CloudFormationClientFactoryFunc,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post a submission to the deployed verification endpoint",
		Long:  sendDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()

			lambdaArn, err := resolveLambdaArn(
				ctx, cmd, args, newCloudFormationClient,
			)
			if err != nil {
				return err
			}
			return sendSubmission(
				ctx, cmd, newLambdaClient(), lambdaArn, cmd.InOrStdin(),
			)
		},
	}
	registerStackName(cmd)
	return cmd
}

func resolveLambdaArn(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	newCloudFormationClient CloudFormationClientFactoryFunc,
) (string, error) {
	if stackName := getStackName(cmd); stackName != "" {
		return GetLambdaArn(ctx, newCloudFormationClient(), stackName)
	} else if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf(
		"specify either the %s flag or a Lambda ARN argument", FlagStackName,
	)
}

func sendSubmission(
	ctx context.Context,
	cmd *cobra.Command,
	client LambdaClient,
	lambdaArn string,
	input io.Reader,
) error {
	body, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read submission input: %s", err)
	}

	event := &events.APIGatewayV2HTTPRequest{
		RawPath: "/api/verification-submit",
		Headers: map[string]string{"content-type": "application/json"},
		Body:    string(body),
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID: "verifyapi-send",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:   http.MethodPost,
				Path:     "/api/verification-submit",
				Protocol: "HTTP/2",
				SourceIP: "127.0.0.1",
			},
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error creating Lambda payload: %s", err)
	}

	invokeInput := &lambda.InvokeInput{
		FunctionName: aws.String(lambdaArn),
		LogType:      ltypes.LogTypeTail,
		Payload:      payload,
	}
	output, err := client.Invoke(ctx, invokeInput)
	if err != nil {
		return fmt.Errorf("error invoking Lambda function: %s", err)
	} else if output.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 response from Lambda "+
			"invocation: %s", http.StatusText(int(output.StatusCode)))
	} else if output.FunctionError != nil {
		return fmt.Errorf("error executing Lambda function: %s: %s",
			aws.ToString(output.FunctionError), string(output.Payload))
	}

	var response events.APIGatewayV2HTTPResponse
	if err = json.Unmarshal(output.Payload, &response); err != nil {
		return fmt.Errorf("failed to unmarshal Lambda response payload: "+
			"%s: %s", err, string(output.Payload))
	} else if response.StatusCode != http.StatusOK {
		return fmt.Errorf("submission rejected with status %d: %s",
			response.StatusCode, response.Body)
	}
	cmd.Printf("Submission accepted: %s\n", response.Body)
	return nil
}
