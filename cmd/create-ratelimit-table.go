package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/lettered/verifyapi/ratelimit"
)

const createRateLimitTableDescription = `` +
	`Creates a new DynamoDB table for per-client submission rate limiting.

Entries automatically expire after the cooldown window passes, after which
the DynamoDB Time To Live feature will remove them.

The command takes one argument, which is the name of the table to create.
This name will become the value of the RATE_LIMIT_TABLE_NAME environment
variable used to configure and deploy the application.`

func init() {
	rootCmd.AddCommand(newCreateRateLimitTableCmd(NewDynamoDbLimiter))
}

func newCreateRateLimitTableCmd(newLimiter LimiterFactoryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create-ratelimit-table",
		Short: "Create a DynamoDB table for submission rate limiting",
		Long:  createRateLimitTableDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createRateLimitTable(cmd, newLimiter(args[0]), time.Minute)
		},
	}
}

func createRateLimitTable(
	cmd *cobra.Command,
	limiter *ratelimit.DynamoDbLimiter,
	maxWaitDuration time.Duration,
) (err error) {
	cmd.SilenceUsage = true
	ctx := context.Background()

	if err = limiter.CreateRateLimitTable(ctx, maxWaitDuration); err == nil {
		cmd.Printf(
			"Successfully created DynamoDB table: %s\n", limiter.TableName,
		)
	}
	return
}
