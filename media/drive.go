package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/lettered/verifyapi/form"
)

// DriveArchiver uploads images into a Google Drive folder shared with the
// operators, grants link access, and returns the file's view link.
type DriveArchiver struct {
	Service  *drive.Service
	FolderId string
	Now      func() time.Time
}

func NewDriveArchiver(
	ctx context.Context, credentialsJson []byte, folderId string,
) (*DriveArchiver, error) {
	creds, err := google.CredentialsFromJSON(
		ctx, credentialsJson, drive.DriveFileScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google credentials: %s", err)
	}

	service, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %s", err)
	}
	return &DriveArchiver{
		Service: service, FolderId: folderId, Now: time.Now,
	}, nil
}

func (a *DriveArchiver) Archive(
	ctx context.Context, img *form.ImagePayload, email string,
) (string, error) {
	data, err := img.Decode()
	if err != nil {
		return "", err
	}

	name := ObjectKey(a.Now(), email, img.Name)
	metadata := &drive.File{Name: name, Parents: []string{a.FolderId}}

	file, err := a.Service.Files.Create(metadata).
		Media(bytes.NewReader(data), googleapi.ContentType(img.Type)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to Drive: %s", name, err)
	}

	// Without this the view link only works for the service account.
	permission := &drive.Permission{Role: "reader", Type: "anyone"}
	_, err = a.Service.Permissions.Create(file.Id, permission).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf(
			"failed to make %s link accessible: %s", name, err,
		)
	}
	return file.WebViewLink, nil
}
