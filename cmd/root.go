package cmd

import (
	"github.com/spf13/cobra"
)

const verifyapiDesc = "Verification form endpoint with notification, " +
	"archiving, and spreadsheet recording"
const verifyapiDescLong = verifyapiDesc + "\n\n" +
	`The Lambda function handles POST /api/verification-submit; this CLI
manages the deployment around it.

To create the rate limit table:
  verifyapi create-ratelimit-table <TABLE_NAME>

To see an example of the submission input JSON structure:
  verifyapi preview --help

To preview the raw notification email before sending, where ` +
	"`generate-submission`" + ` is any program that creates submission JSON:
  generate-submission | verifyapi preview

To submit to a deployed endpoint, given its CloudFormation stack name:
  generate-submission | verifyapi send -s <STACK_NAME>

To check the SES account sending quota:
  verifyapi quota
`

var rootCmd = &cobra.Command{
	Use:     "verifyapi",
	Version: "v0.1.0",
	Short:   verifyapiDesc,
	Long:    verifyapiDescLong,
}

func Execute() error {
	return rootCmd.Execute()
}
