package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lettered/verifyapi/email"
)

const previewDescription = `` +
	`Reads a JSON object from standard input describing a submission:

` + email.ExampleSubmissionJson + `

It then emits to standard output the raw notification email that would be
sent to the configured operator address for that submission.`

func init() {
	rootCmd.AddCommand(newPreviewCmd())
}

func newPreviewCmd() *cobra.Command {
	var emitExample bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the raw notification email without sending it",
		Long:  previewDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var input io.Reader = cmd.InOrStdin()
			if emitExample {
				input = strings.NewReader(email.ExampleSubmissionJson)
			}
			return email.EmitPreviewMessage(input, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(
		&emitExample, "example", "x", false,
		"Use the help example to generate the preview",
	)
	return cmd
}
