package ops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lettered/verifyapi/form"
)

// WebhookSender announces an accepted submission to a chat channel.
type WebhookSender interface {
	Announce(ctx context.Context, sub *form.SanitizedSubmission) error
}

// WebhookNotifier posts a compact summary of each accepted submission to a
// chat webhook (Discord-compatible "content" payload). A blank Url disables
// it; that isn't an error.
type WebhookNotifier struct {
	Client *http.Client
	Url    string
}

func (n *WebhookNotifier) Announce(
	ctx context.Context, sub *form.SanitizedSubmission,
) error {
	if n.Url == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"content": webhookMessage(sub),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %s", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, n.Url, bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: webhook post failed: %s", ErrExternal, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf(
			"%w: webhook returned %s", ErrExternal, res.Status,
		)
	}
	return nil
}

func webhookMessage(sub *form.SanitizedSubmission) string {
	b := &strings.Builder{}
	b.WriteString("**New verification request**\n")
	fmt.Fprintf(b, "- Name: %s %s\n", sub.FName, sub.LName)
	fmt.Fprintf(b, "- Email: %s\n", sub.Email)

	if sub.Organization != "" {
		org := sub.Organization
		if sub.ChapterName != "" {
			org += " (" + sub.ChapterName + ")"
		}
		fmt.Fprintf(b, "- Organization: %s\n", org)
	}
	if sub.University != "" {
		fmt.Fprintf(b, "- University: %s\n", sub.University)
	}
	if ts := form.FormatTimestamp(sub.Timestamp); ts != "" {
		fmt.Fprintf(b, "- Submitted: %s\n", ts)
	}
	return b.String()
}
