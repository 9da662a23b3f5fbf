package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/lettered/verifyapi/email"
	"github.com/lettered/verifyapi/handler"
	"github.com/lettered/verifyapi/media"
	"github.com/lettered/verifyapi/ops"
	"github.com/lettered/verifyapi/ratelimit"
	"github.com/lettered/verifyapi/sheets"
)

func buildHandler(ctx context.Context) (h *handler.Handler, err error) {
	var cfg aws.Config
	var opts *handler.Options

	if cfg, err = config.LoadDefaultConfig(ctx); err != nil {
		return
	} else if opts, err = handler.GetOptions(os.Getenv); err != nil {
		return
	}
	logger := log.Default()

	notifier := &email.Notifier{
		Mailer: &email.SesMailer{
			Client:    ses.NewFromConfig(cfg),
			ConfigSet: opts.SesConfigSet,
		},
		Sender:    opts.SenderAddress,
		Recipient: opts.NotificationEmail,
		Log:       logger,
	}

	archiver, err := newArchiver(ctx, cfg, opts, logger)
	if err != nil {
		return nil, err
	}
	recorder, err := newRecorder(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	return &handler.Handler{
		Agent: &ops.ProdAgent{
			Notifier: notifier,
			Archiver: archiver,
			Recorder: recorder,
			Webhook: &ops.WebhookNotifier{
				Client: &http.Client{Timeout: 10 * time.Second},
				Url:    opts.WebhookUrl,
			},
			Log: logger,
		},
		Limiter: newLimiter(ctx, cfg, opts),
		Log:     logger,
	}, nil
}

func newArchiver(
	ctx context.Context,
	cfg aws.Config,
	opts *handler.Options,
	logger *log.Logger,
) (ops.Archiver, error) {
	switch opts.MediaStore {
	case handler.MediaStoreDrive:
		return media.NewDriveArchiver(
			ctx, []byte(opts.GoogleCredentialsJson), opts.DriveFolderId,
		)
	case handler.MediaStoreS3:
		return media.NewS3Archiver(cfg, opts.S3MediaBucket), nil
	case handler.MediaStoreCloudinary:
		return media.NewCloudinaryArchiver(
			opts.CloudinaryCloudName,
			opts.CloudinaryApiKey,
			opts.CloudinaryApiSecret,
		)
	case "":
		return &media.Disabled{Log: logger}, nil
	}
	return nil, fmt.Errorf("unknown media store: %s", opts.MediaStore)
}

func newRecorder(
	ctx context.Context, opts *handler.Options, logger *log.Logger,
) (ops.Recorder, error) {
	if opts.SheetId == "" {
		return sheets.Disabled{}, nil
	}
	return sheets.NewSheetsRecorder(
		ctx,
		[]byte(opts.GoogleCredentialsJson),
		opts.SheetId,
		opts.SheetRange,
		logger,
	)
}

func newLimiter(
	ctx context.Context, cfg aws.Config, opts *handler.Options,
) ratelimit.Limiter {
	if opts.RateLimitTableName != "" {
		return ratelimit.NewDynamoDbLimiter(cfg, opts.RateLimitTableName)
	}
	limiter := ratelimit.NewMemoryLimiter()
	limiter.Start(ctx)
	return limiter
}

func main() {
	// The Lambda runtime already timestamps every log line.
	log.SetFlags(0)

	if h, err := buildHandler(context.Background()); err != nil {
		log.Fatalf("Failed to initialize process: %s", err.Error())
	} else {
		lambda.Start(h.HandleEvent)
	}
}
