// Package media archives submitted images to an external store and hands
// back a public URL. Three interchangeable stores are supported: a Google
// Drive folder, an S3 bucket, and Cloudinary. The store is selected by
// configuration; callers only ever see the Archiver interface.
package media

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/lettered/verifyapi/form"
)

type Archiver interface {
	Archive(
		ctx context.Context, img *form.ImagePayload, email string,
	) (publicUrl string, err error)
}

// Disabled is the Archiver used when no media store is configured. It
// reports "no media" rather than an error, so an unconfigured store never
// fails a submission.
type Disabled struct {
	Log *log.Logger
}

func (d *Disabled) Archive(
	ctx context.Context, img *form.ImagePayload, email string,
) (string, error) {
	d.Log.Printf("media store not configured, skipping image upload")
	return "", nil
}

var timestampSpecials = strings.NewReplacer(":", "-", ".", "-")
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ObjectKey derives a collision-resistant object name from the upload
// instant, a flattened form of the submitter's email, and the original file
// name, e.g. "2023-04-01T12-30-00Z_quentin_example_com_pari.png".
func ObjectKey(now time.Time, email, fileName string) string {
	timestamp := timestampSpecials.Replace(now.UTC().Format(time.RFC3339))
	flatEmail := nonAlphanumeric.ReplaceAllString(email, "_")
	return timestamp + "_" + flatEmail + "_" + fileName
}
