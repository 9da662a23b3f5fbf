package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lettered/verifyapi/email"
)

const quotaDescription = `` +
	`Prints the SES account sending quota: the 24 hour send limit, the
per-second send rate, and the number of messages sent in the last 24 hours.

Useful for checking whether notification volume is approaching the account
limits before they start bouncing.`

func init() {
	rootCmd.AddCommand(newQuotaCmd(NewSesV2Client))
}

func newQuotaCmd(newSesV2Client SesV2ClientFactoryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Print the SES account sending quota",
		Long:  quotaDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			quota, err := email.GetSendQuota(
				context.Background(), newSesV2Client(),
			)
			if err != nil {
				return err
			}
			cmd.Printf("Max 24 hour send:    %.0f\n", quota.Max24HourSend)
			cmd.Printf("Max send rate:       %.0f/s\n", quota.MaxSendRate)
			cmd.Printf("Sent last 24 hours:  %.0f\n", quota.SentLast24Hours)
			return nil
		},
	}
}
