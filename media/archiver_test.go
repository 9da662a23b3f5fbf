//go:build small_tests || all_tests

package media

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"github.com/lettered/verifyapi/form"
	"github.com/lettered/verifyapi/ops"
	"github.com/lettered/verifyapi/testutils"
)

const testEmail = "quentin@example.com"

var testUploadTime = time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)

func testImage() *form.ImagePayload {
	return &form.ImagePayload{
		Name: "pari.png",
		Type: "image/png",
		Data: base64.StdEncoding.EncodeToString([]byte("png-bytes")),
	}
}

func TestObjectKey(t *testing.T) {
	t.Run("CombinesTimestampEmailAndFileName", func(t *testing.T) {
		key := ObjectKey(testUploadTime, testEmail, "pari.png")

		assert.Equal(t, "2023-04-01T12-30-00Z_quentin_example_com_pari.png", key)
	})

	t.Run("FlattensEveryNonAlphanumericInEmail", func(t *testing.T) {
		key := ObjectKey(testUploadTime, "a+b.c@d-e.org", "x.png")

		assert.Assert(t, is.Contains(key, "_a_b_c_d_e_org_"))
	})
}

func TestDisabledArchiver(t *testing.T) {
	t.Run("ReturnsNoMediaWithoutError", func(t *testing.T) {
		logs, logger := testutils.TestLogger()
		archiver := &Disabled{Log: logger}

		url, err := archiver.Archive(context.Background(), testImage(), testEmail)

		assert.NilError(t, err)
		assert.Equal(t, "", url)
		assert.Assert(t, is.Contains(logs.String(), "not configured"))
	})
}

type testS3Client struct {
	input  *s3.PutObjectInput
	output *s3.PutObjectOutput
	err    error
}

func (c *testS3Client) PutObject(
	_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	c.input = input
	return c.output, c.err
}

func newTestS3Archiver() (*S3Archiver, *testS3Client) {
	client := &testS3Client{output: &s3.PutObjectOutput{}}
	archiver := &S3Archiver{
		Client: client,
		Bucket: "verify-media-test",
		Region: "us-east-1",
		Now:    func() time.Time { return testUploadTime },
	}
	return archiver, client
}

func TestS3Archiver(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadsAndReturnsPublicUrl", func(t *testing.T) {
		archiver, client := newTestS3Archiver()

		url, err := archiver.Archive(ctx, testImage(), testEmail)

		assert.NilError(t, err)
		expectedKey := s3KeyPrefix +
			"2023-04-01T12-30-00Z_quentin_example_com_pari.png"
		testutils.AssertAwsStringEqual(t, expectedKey, client.input.Key)
		testutils.AssertAwsStringEqual(t, "image/png", client.input.ContentType)
		assert.Equal(
			t,
			"https://verify-media-test.s3.us-east-1.amazonaws.com/"+expectedKey,
			url,
		)
	})

	t.Run("FailsOnUndecodableImage", func(t *testing.T) {
		archiver, _ := newTestS3Archiver()
		img := testImage()
		img.Data = "%%not-base64%%"

		_, err := archiver.Archive(ctx, img, testEmail)

		assert.ErrorContains(t, err, "failed to decode image")
	})

	t.Run("WrapsServerFaultsInErrExternal", func(t *testing.T) {
		archiver, client := newTestS3Archiver()
		client.err = testutils.AwsServerError("bucket unavailable")

		_, err := archiver.Archive(ctx, testImage(), testEmail)

		assert.ErrorContains(t, err, "failed to upload")
		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})
}

type testUploader struct {
	file   interface{}
	params uploader.UploadParams
	result *uploader.UploadResult
	err    error
}

func (u *testUploader) Upload(
	_ context.Context, file interface{}, params uploader.UploadParams,
) (*uploader.UploadResult, error) {
	u.file = file
	u.params = params
	return u.result, u.err
}

func newTestCloudinaryArchiver() (*CloudinaryArchiver, *testUploader) {
	up := &testUploader{
		result: &uploader.UploadResult{
			SecureURL: "https://res.cloudinary.example/image/upload/v1/pari",
		},
	}
	archiver := &CloudinaryArchiver{
		Uploader: up,
		Folder:   cloudinaryFolder,
		Now:      func() time.Time { return testUploadTime },
	}
	return archiver, up
}

func TestCloudinaryArchiver(t *testing.T) {
	ctx := context.Background()

	t.Run("UploadsDataUrlAndReturnsSecureUrl", func(t *testing.T) {
		archiver, up := newTestCloudinaryArchiver()

		url, err := archiver.Archive(ctx, testImage(), testEmail)

		assert.NilError(t, err)
		assert.Equal(t, up.result.SecureURL, url)
		assert.Equal(t, cloudinaryFolder, up.params.Folder)
		assert.Assert(t, is.Contains(up.params.PublicID, "_pari"))
		assert.Assert(t, !strings.Contains(up.params.PublicID, ".png"))

		file := up.file.(string)
		assert.Assert(t, strings.HasPrefix(file, "data:image/png;base64,"))
	})

	t.Run("ForwardsExistingDataUrlsVerbatim", func(t *testing.T) {
		archiver, up := newTestCloudinaryArchiver()
		img := testImage()
		img.Data = "data:image/png;base64," + img.Data

		_, err := archiver.Archive(ctx, img, testEmail)

		assert.NilError(t, err)
		assert.Equal(t, img.Data, up.file.(string))
	})

	t.Run("WrapsTransportFailuresInErrExternal", func(t *testing.T) {
		archiver, up := newTestCloudinaryArchiver()
		up.err = context.DeadlineExceeded

		_, err := archiver.Archive(ctx, testImage(), testEmail)

		assert.ErrorContains(t, err, "failed to upload")
		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})

	t.Run("SurfacesInBandUploadErrors", func(t *testing.T) {
		archiver, up := newTestCloudinaryArchiver()
		up.result = &uploader.UploadResult{
			Error: api.ErrorResp{Message: "Invalid image file"},
		}

		_, err := archiver.Archive(ctx, testImage(), testEmail)

		assert.ErrorContains(t, err, "Invalid image file")
		assert.Assert(t, testutils.ErrorIs(err, ops.ErrExternal))
	})
}
