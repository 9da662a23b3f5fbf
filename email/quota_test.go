//go:build small_tests || all_tests

package email

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sesv2types "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"gotest.tools/assert"

	"github.com/lettered/verifyapi/ops"
	"github.com/lettered/verifyapi/testutils"
)

type TestSesV2Api struct {
	getAccountInput  *sesv2.GetAccountInput
	getAccountOutput *sesv2.GetAccountOutput
	getAccountErr    error
}

func (api *TestSesV2Api) GetAccount(
	_ context.Context, input *sesv2.GetAccountInput, _ ...func(*sesv2.Options),
) (*sesv2.GetAccountOutput, error) {
	api.getAccountInput = input
	return api.getAccountOutput, api.getAccountErr
}

func TestGetSendQuota(t *testing.T) {
	ctx := context.Background()

	t.Run("Succeeds", func(t *testing.T) {
		api := &TestSesV2Api{
			getAccountOutput: &sesv2.GetAccountOutput{
				SendQuota: &sesv2types.SendQuota{
					Max24HourSend:   50000.0,
					MaxSendRate:     14.0,
					SentLast24Hours: 42.0,
				},
			},
		}

		quota, err := GetSendQuota(ctx, api)

		assert.NilError(t, err)
		assert.DeepEqual(t, &SendQuota{
			Max24HourSend:   50000.0,
			MaxSendRate:     14.0,
			SentLast24Hours: 42.0,
		}, quota)
	})

	t.Run("ReturnsZeroQuotaWhenAccountOmitsIt", func(t *testing.T) {
		api := &TestSesV2Api{getAccountOutput: &sesv2.GetAccountOutput{}}

		quota, err := GetSendQuota(ctx, api)

		assert.NilError(t, err)
		assert.DeepEqual(t, &SendQuota{}, quota)
	})

	t.Run("ReturnsErrorIfRequestFails", func(t *testing.T) {
		api := &TestSesV2Api{
			getAccountErr: testutils.AwsServerError("service unavailable"),
		}

		quota, err := GetSendQuota(ctx, api)

		assert.Assert(t, quota == nil)
		assert.ErrorContains(t, err, "service unavailable")
		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})
}
