//go:build small_tests || all_tests

package handler

import (
	"testing"

	"gotest.tools/assert"
)

func makeGetenv(env map[string]string) func(string) string {
	return func(varname string) string {
		return env[varname]
	}
}

func TestGetOptions(t *testing.T) {
	t.Run("SucceedsWithEverythingUnconfigured", func(t *testing.T) {
		opts, err := GetOptions(makeGetenv(map[string]string{}))

		assert.NilError(t, err)
		assert.DeepEqual(t, &Options{}, opts)
	})

	t.Run("AssignsAllConfiguredValues", func(t *testing.T) {
		opts, err := GetOptions(makeGetenv(map[string]string{
			"SENDER_ADDRESS":          "updates@lettered.example.com",
			"NOTIFICATION_EMAIL":      "ops@lettered.example.com",
			"SES_CONFIGURATION_SET":   "verifyapi-config-set",
			"GOOGLE_CREDENTIALS_JSON": `{"type": "service_account"}`,
			"GOOGLE_SHEET_ID":         "sheet-id",
			"GOOGLE_SHEET_RANGE":      "Sheet1!A:Q",
			"MEDIA_STORE":             "s3",
			"S3_MEDIA_BUCKET":         "verifyapi-media",
			"AWS_REGION":              "us-east-1",
			"RATE_LIMIT_TABLE_NAME":   "verifyapi-ratelimits",
			"WEBHOOK_URL":             "https://chat.example.com/hook",
		}))

		assert.NilError(t, err)
		assert.DeepEqual(t, &Options{
			SenderAddress:         "updates@lettered.example.com",
			NotificationEmail:     "ops@lettered.example.com",
			SesConfigSet:          "verifyapi-config-set",
			GoogleCredentialsJson: `{"type": "service_account"}`,
			SheetId:               "sheet-id",
			SheetRange:            "Sheet1!A:Q",
			MediaStore:            "s3",
			S3MediaBucket:         "verifyapi-media",
			AwsRegion:             "us-east-1",
			RateLimitTableName:    "verifyapi-ratelimits",
			WebhookUrl:            "https://chat.example.com/hook",
		}, opts)
	})

	t.Run("RequiresCredentialsWhenSheetConfigured", func(t *testing.T) {
		_, err := GetOptions(makeGetenv(map[string]string{
			"GOOGLE_SHEET_ID": "sheet-id",
		}))

		assert.ErrorContains(t, err, "undefined environment variables")
		assert.ErrorContains(t, err, "GOOGLE_CREDENTIALS_JSON")
	})

	t.Run("RequiresBackendVarsForDriveStore", func(t *testing.T) {
		_, err := GetOptions(makeGetenv(map[string]string{
			"MEDIA_STORE": "drive",
		}))

		assert.ErrorContains(t, err, "GOOGLE_DRIVE_FOLDER_ID")
		assert.ErrorContains(t, err, "GOOGLE_CREDENTIALS_JSON")
	})

	t.Run("RequiresBackendVarsForCloudinaryStore", func(t *testing.T) {
		_, err := GetOptions(makeGetenv(map[string]string{
			"MEDIA_STORE":           "cloudinary",
			"CLOUDINARY_CLOUD_NAME": "lettered",
		}))

		assert.ErrorContains(t, err, "CLOUDINARY_API_KEY")
		assert.ErrorContains(t, err, "CLOUDINARY_API_SECRET")
	})

	t.Run("RejectsUnknownMediaStore", func(t *testing.T) {
		_, err := GetOptions(makeGetenv(map[string]string{
			"MEDIA_STORE": "floppy",
		}))

		assert.ErrorContains(t, err, `invalid MEDIA_STORE "floppy"`)
	})
}
