package handler

import (
	"fmt"
	"strings"
)

// MediaStore selects which archiver backend the Lambda wires up.
const (
	MediaStoreDrive      = "drive"
	MediaStoreS3         = "s3"
	MediaStoreCloudinary = "cloudinary"
)

// Options collects the environment configuration for the Lambda.
//
// Every integration is an optional feature: leaving its variables blank
// disables it without failing startup. Variables become required only when
// the feature that needs them is switched on, e.g. MEDIA_STORE=s3 requires
// S3_MEDIA_BUCKET.
type Options struct {
	SenderAddress     string
	NotificationEmail string
	SesConfigSet      string

	GoogleCredentialsJson string
	SheetId               string
	SheetRange            string

	MediaStore          string
	DriveFolderId       string
	S3MediaBucket       string
	AwsRegion           string
	CloudinaryCloudName string
	CloudinaryApiKey    string
	CloudinaryApiSecret string

	RateLimitTableName string
	WebhookUrl         string
}

func GetOptions(getenv func(string) string) (*Options, error) {
	env := environment{getenv: getenv}
	return env.options()
}

type environment struct {
	getenv      func(string) string
	missingVars []string
}

func (env *environment) options() (*Options, error) {
	opts := Options{}
	env.optional(&opts.SenderAddress, "SENDER_ADDRESS")
	env.optional(&opts.NotificationEmail, "NOTIFICATION_EMAIL")
	env.optional(&opts.SesConfigSet, "SES_CONFIGURATION_SET")

	env.optional(&opts.GoogleCredentialsJson, "GOOGLE_CREDENTIALS_JSON")
	env.optional(&opts.SheetId, "GOOGLE_SHEET_ID")
	env.optional(&opts.SheetRange, "GOOGLE_SHEET_RANGE")
	if opts.SheetId != "" && opts.GoogleCredentialsJson == "" {
		env.missingVars = append(env.missingVars, "GOOGLE_CREDENTIALS_JSON")
	}

	env.optional(&opts.MediaStore, "MEDIA_STORE")
	switch opts.MediaStore {
	case "":
	case MediaStoreDrive:
		env.assign(&opts.DriveFolderId, "GOOGLE_DRIVE_FOLDER_ID")
		if opts.GoogleCredentialsJson == "" {
			env.missingVars = append(
				env.missingVars, "GOOGLE_CREDENTIALS_JSON",
			)
		}
	case MediaStoreS3:
		env.assign(&opts.S3MediaBucket, "S3_MEDIA_BUCKET")
		env.assign(&opts.AwsRegion, "AWS_REGION")
	case MediaStoreCloudinary:
		env.assign(&opts.CloudinaryCloudName, "CLOUDINARY_CLOUD_NAME")
		env.assign(&opts.CloudinaryApiKey, "CLOUDINARY_API_KEY")
		env.assign(&opts.CloudinaryApiSecret, "CLOUDINARY_API_SECRET")
	default:
		return nil, fmt.Errorf(
			`invalid MEDIA_STORE %q: must be "%s", "%s", or "%s"`,
			opts.MediaStore,
			MediaStoreDrive, MediaStoreS3, MediaStoreCloudinary,
		)
	}

	env.optional(&opts.RateLimitTableName, "RATE_LIMIT_TABLE_NAME")
	env.optional(&opts.WebhookUrl, "WEBHOOK_URL")

	if len(env.missingVars) != 0 {
		return nil, fmt.Errorf(
			"undefined environment variables:\n  %s",
			strings.Join(env.missingVars, "\n  "),
		)
	}
	return &opts, nil
}

func (env *environment) assign(opt *string, varname string) {
	if value := env.getenv(varname); value == "" {
		env.missingVars = append(env.missingVars, varname)
	} else {
		*opt = value
	}
}

func (env *environment) optional(opt *string, varname string) {
	*opt = env.getenv(varname)
}
