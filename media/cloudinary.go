package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/lettered/verifyapi/form"
	"github.com/lettered/verifyapi/ops"
)

const cloudinaryFolder = "verifications"

// CloudinaryArchiver uploads images to Cloudinary, which generates and
// returns the public secure URL itself; no separate permission step is
// needed, unlike Drive.
type CloudinaryArchiver struct {
	Uploader cloudinaryUploader
	Folder   string
	Now      func() time.Time
}

// cloudinaryUploader is the slice of the Cloudinary upload API the archiver
// needs, extracted for unit testing.
type cloudinaryUploader interface {
	Upload(
		ctx context.Context, file interface{}, uploadParams uploader.UploadParams,
	) (*uploader.UploadResult, error)
}

func NewCloudinaryArchiver(
	cloudName, apiKey, apiSecret string,
) (*CloudinaryArchiver, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloudinary client: %s", err)
	}
	return &CloudinaryArchiver{
		Uploader: &client.Upload, Folder: cloudinaryFolder, Now: time.Now,
	}, nil
}

func (a *CloudinaryArchiver) Archive(
	ctx context.Context, img *form.ImagePayload, email string,
) (string, error) {
	baseName := strings.TrimSuffix(img.Name, path.Ext(img.Name))
	publicId := ObjectKey(a.Now(), email, baseName)

	result, err := a.Uploader.Upload(ctx, dataUrl(img), uploader.UploadParams{
		PublicID: publicId,
		Folder:   a.Folder,
	})
	if err != nil {
		const errFmt = "%w: failed to upload %s to Cloudinary: %s"
		return "", fmt.Errorf(errFmt, ops.ErrExternal, publicId, err)
	} else if result.Error.Message != "" {
		const errFmt = "%w: Cloudinary rejected %s: %s"
		return "", fmt.Errorf(
			errFmt, ops.ErrExternal, publicId, result.Error.Message,
		)
	}
	return result.SecureURL, nil
}

// Cloudinary accepts base64 data URLs directly, so the payload is forwarded
// without decoding; a bare base64 payload gets the data URL prefix added.
func dataUrl(img *form.ImagePayload) string {
	if strings.HasPrefix(img.Data, "data:") {
		return img.Data
	}
	contentType := img.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + img.Data
}
