// Package ops orchestrates the downstream dispatches for an accepted
// verification submission.
package ops

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/lettered/verifyapi/form"
)

// NotificationSender is the subset of email.Notifier used by ProdAgent.
type NotificationSender interface {
	Notify(
		ctx context.Context,
		sub *form.SanitizedSubmission,
		img *form.ImagePayload,
	) error
}

// Archiver uploads a submitted image to the configured media store and
// returns its public URL, or "" when archiving is disabled.
type Archiver interface {
	Archive(
		ctx context.Context, img *form.ImagePayload, email string,
	) (publicUrl string, err error)
}

// Recorder appends one submission row to the configured tabular store.
type Recorder interface {
	Append(
		ctx context.Context, sub *form.SanitizedSubmission, mediaUrl string,
	) error
}

// VerificationAgent processes a validated, rate-limit cleared submission.
type VerificationAgent interface {
	Process(ctx context.Context, sub *form.Submission, clientAddr string) error
}

// ProdAgent sanitizes the submission and runs the downstream dispatches in
// sequence: email notification, image archiving (when an image is present),
// sheet append, webhook announcement.
//
// Each dispatch is best effort. Failures are logged with a per-submission id
// and swallowed, and dispatches already made are not undone; Process only
// reports that the submission was accepted for processing.
type ProdAgent struct {
	Notifier NotificationSender
	Archiver Archiver
	Recorder Recorder
	Webhook  WebhookSender
	Log      *log.Logger
}

func (a *ProdAgent) Process(
	ctx context.Context, sub *form.Submission, clientAddr string,
) error {
	id := uuid.New()
	sanitized := sub.Sanitize(clientAddr)

	if err := a.Notifier.Notify(ctx, sanitized, sub.PariImage); err != nil {
		a.Log.Printf("%s: ERROR sending notification: %s", id, err)
	}

	mediaUrl := ""
	if sub.PariImage != nil {
		url, err := a.Archiver.Archive(ctx, sub.PariImage, sanitized.Email)
		if err != nil {
			a.Log.Printf("%s: ERROR archiving image: %s", id, err)
		} else {
			mediaUrl = url
		}
	}

	if err := a.Recorder.Append(ctx, sanitized, mediaUrl); err != nil {
		a.Log.Printf("%s: ERROR appending submission row: %s", id, err)
	}

	if err := a.Webhook.Announce(ctx, sanitized); err != nil {
		a.Log.Printf("%s: ERROR announcing submission: %s", id, err)
	}

	a.Log.Printf("%s: processed submission from %s (%s)",
		id, sanitized.Email, clientAddr)
	return nil
}
