package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/lettered/verifyapi/ops"
)

// SendQuota reports the SES account sending limits, surfaced through the ops
// CLI so operators can tell whether notification volume is at risk of being
// throttled.
type SendQuota struct {
	Max24HourSend   float64
	MaxSendRate     float64
	SentLast24Hours float64
}

func GetSendQuota(
	ctx context.Context, client SesV2Api,
) (quota *SendQuota, err error) {
	var output *sesv2.GetAccountOutput

	if output, err = client.GetAccount(ctx, &sesv2.GetAccountInput{}); err != nil {
		err = ops.AwsError(err)
	} else if sq := output.SendQuota; sq != nil {
		quota = &SendQuota{
			Max24HourSend:   sq.Max24HourSend,
			MaxSendRate:     sq.MaxSendRate,
			SentLast24Hours: sq.SentLast24Hours,
		}
	} else {
		quota = &SendQuota{}
	}
	return
}
