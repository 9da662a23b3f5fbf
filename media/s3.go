package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lettered/verifyapi/form"
	"github.com/lettered/verifyapi/ops"
)

const s3KeyPrefix = "verifications/"

type S3Api interface {
	PutObject(
		context.Context, *s3.PutObjectInput, ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads images to a bucket and returns the object's public URL.
// The bucket is expected to allow public reads of uploaded objects via its
// bucket policy.
type S3Archiver struct {
	Client S3Api
	Bucket string
	Region string
	Now    func() time.Time
}

func NewS3Archiver(cfg aws.Config, bucket string) *S3Archiver {
	return &S3Archiver{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Region: cfg.Region,
		Now:    time.Now,
	}
}

func (a *S3Archiver) Archive(
	ctx context.Context, img *form.ImagePayload, email string,
) (string, error) {
	data, err := img.Decode()
	if err != nil {
		return "", err
	}

	key := s3KeyPrefix + ObjectKey(a.Now(), email, img.Name)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(img.Type),
	}

	if _, err = a.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf(
			"failed to upload %s to S3: %w", key, ops.AwsError(err),
		)
	}
	return fmt.Sprintf(
		"https://%s.s3.%s.amazonaws.com/%s", a.Bucket, a.Region, key,
	), nil
}
