package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/lettered/verifyapi/form"
)

// Notifier composes and sends the submission notification email.
//
// If Sender or Recipient is blank the integration is unconfigured and Notify
// does nothing; that isn't an error. Send failures are returned for the
// caller to log, but by policy they never fail the submission itself.
type Notifier struct {
	Mailer    Mailer
	Sender    string
	Recipient string
	Log       *log.Logger
}

func (n *Notifier) Notify(
	ctx context.Context, sub *form.SanitizedSubmission, img *form.ImagePayload,
) error {
	if n.Sender == "" || n.Recipient == "" {
		n.Log.Printf("mail relay not configured, skipping notification")
		return nil
	}

	raw, err := NewNotification(n.Sender, n.Recipient, sub, img).MarshalRaw()
	if err != nil {
		return fmt.Errorf("failed to compose notification: %s", err)
	}

	messageId, err := n.Mailer.Send(ctx, n.Recipient, raw)
	if err != nil {
		return err
	}
	n.Log.Printf("sent notification for %s, message id: %s",
		sub.Email, messageId)
	return nil
}

// ExampleSubmissionJson documents the payload accepted by the preview and
// send commands. It matches the wire format of the verification endpoint.
const ExampleSubmissionJson = `{
  "fname": "Quentin",
  "lname": "Example",
  "email": "quentin@example.com",
  "organization": "Alpha Beta Gamma",
  "chapterName": "Delta Chapter",
  "city": "Springfield",
  "university": "State University",
  "lineName": "The Anchor",
  "lineNumber": "7",
  "socialMedia": {
    "instagram": "@quentin",
    "tiktok": "@q.example"
  },
  "timestamp": "2023-04-01T12:30:00Z",
  "userAgent": "Mozilla/5.0"
}`

// EmitPreviewMessage reads a submission payload from input and writes the
// raw notification message that would be sent for it, without sending.
func EmitPreviewMessage(input io.Reader, output io.Writer) error {
	var sub form.Submission
	if err := json.NewDecoder(input).Decode(&sub); err != nil {
		return fmt.Errorf("failed to parse submission JSON: %s", err)
	}

	const placeholder = "preview@localhost"
	sanitized := sub.Sanitize("127.0.0.1")
	raw, err := NewNotification(
		placeholder, placeholder, sanitized, sub.PariImage,
	).MarshalRaw()
	if err != nil {
		return err
	}
	_, err = output.Write(raw)
	return err
}
