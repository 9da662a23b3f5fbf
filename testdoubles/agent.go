//go:build small_tests || medium_tests || contract_tests || all_tests

package testdoubles

import (
	"context"
	"testing"

	"gotest.tools/assert"

	"github.com/lettered/verifyapi/form"
)

// Notifier records Notify calls and returns a configured error.
type Notifier struct {
	Submission *form.SanitizedSubmission
	Image      *form.ImagePayload
	NumCalls   int
	Error      error
}

func (n *Notifier) Notify(
	_ context.Context, sub *form.SanitizedSubmission, img *form.ImagePayload,
) error {
	n.NumCalls++
	n.Submission = sub
	n.Image = img
	return n.Error
}

// Archiver records Archive calls, returning a configured URL or error.
type Archiver struct {
	Image    *form.ImagePayload
	Email    string
	NumCalls int
	Url      string
	Error    error
}

func (a *Archiver) Archive(
	_ context.Context, img *form.ImagePayload, email string,
) (string, error) {
	a.NumCalls++
	a.Image = img
	a.Email = email
	if a.Error != nil {
		return "", a.Error
	}
	return a.Url, nil
}

// Recorder records Append calls and returns a configured error.
type Recorder struct {
	Submission *form.SanitizedSubmission
	MediaUrl   string
	NumCalls   int
	Error      error
}

func (r *Recorder) Append(
	_ context.Context, sub *form.SanitizedSubmission, mediaUrl string,
) error {
	r.NumCalls++
	r.Submission = sub
	r.MediaUrl = mediaUrl
	return r.Error
}

// Webhook records Announce calls and returns a configured error.
type Webhook struct {
	Submission *form.SanitizedSubmission
	NumCalls   int
	Error      error
}

func (w *Webhook) Announce(
	_ context.Context, sub *form.SanitizedSubmission,
) error {
	w.NumCalls++
	w.Submission = sub
	return w.Error
}

// Agent implements ops.VerificationAgent for handler tests.
type Agent struct {
	Submission *form.Submission
	ClientAddr string
	NumCalls   int
	Error      error
}

func (a *Agent) Process(
	_ context.Context, sub *form.Submission, clientAddr string,
) error {
	a.NumCalls++
	a.Submission = sub
	a.ClientAddr = clientAddr
	return a.Error
}

func (a *Agent) AssertProcessedBy(
	t *testing.T, email, clientAddr string,
) {
	t.Helper()
	assert.Equal(t, 1, a.NumCalls)
	assert.Equal(t, email, a.Submission.Email)
	assert.Equal(t, clientAddr, a.ClientAddr)
}
