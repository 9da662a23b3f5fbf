// Package form defines the verification form submission types and the
// sanitization applied to them before any downstream dispatch.
package form

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// SocialMedia holds the optional social handles a submitter may provide.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// ImagePayload is an optional image attached to a submission.
//
// Data is expected to be base64, optionally wrapped in a data URL
// ("data:image/png;base64,...") as produced by FileReader.readAsDataURL in
// the browser.
type ImagePayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Decode returns the raw image bytes, stripping any data URL prefix first.
func (p *ImagePayload) Decode() ([]byte, error) {
	data := p.Data
	if strings.HasPrefix(data, "data:") {
		if i := strings.IndexByte(data, ','); i != -1 {
			data = data[i+1:]
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %s", p.Name, err)
	}
	return decoded, nil
}

// Submission is the raw request payload from the verification form.
//
// LineNumber and Timestamp are declared as any because the form has shipped
// both strings and numbers for them; both pass through unvalidated per the
// API contract.
type Submission struct {
	FName        string        `json:"fname"`
	LName        string        `json:"lname"`
	Email        string        `json:"email"`
	Organization string        `json:"organization,omitempty"`
	ChapterName  string        `json:"chapterName,omitempty"`
	City         string        `json:"city,omitempty"`
	University   string        `json:"university,omitempty"`
	LineName     string        `json:"lineName,omitempty"`
	LineNumber   any           `json:"lineNumber,omitempty"`
	SocialMedia  SocialMedia   `json:"socialMedia,omitempty"`
	Timestamp    any           `json:"timestamp,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	PariImage    *ImagePayload `json:"pariImage,omitempty"`
}

// HasRequiredFields reports whether the fields the API treats as mandatory
// are all present.
func (s *Submission) HasRequiredFields() bool {
	return s.FName != "" && s.LName != "" && s.Email != ""
}

// SanitizedSubmission is a Submission with every free-text field HTML
// escaped, plus the server-derived client address.
//
// Timestamp is preserved as received; it is not re-validated beyond being
// present.
type SanitizedSubmission struct {
	FName         string
	LName         string
	Email         string
	Organization  string
	ChapterName   string
	City          string
	University    string
	LineName      string
	LineNumber    any
	SocialMedia   SocialMedia
	Timestamp     any
	UserAgent     string
	SubmittedFrom string
}

// Sanitize escapes every free-text field and records the client address the
// submission arrived from.
func (s *Submission) Sanitize(clientAddr string) *SanitizedSubmission {
	return &SanitizedSubmission{
		FName:        SanitizeText(s.FName),
		LName:        SanitizeText(s.LName),
		Email:        SanitizeText(s.Email),
		Organization: SanitizeText(s.Organization),
		ChapterName:  SanitizeText(s.ChapterName),
		City:         SanitizeText(s.City),
		University:   SanitizeText(s.University),
		LineName:     SanitizeText(s.LineName),
		LineNumber:   SanitizeValue(s.LineNumber),
		SocialMedia: SocialMedia{
			Instagram: SanitizeText(s.SocialMedia.Instagram),
			TikTok:    SanitizeText(s.SocialMedia.TikTok),
			Facebook:  SanitizeText(s.SocialMedia.Facebook),
			Twitter:   SanitizeText(s.SocialMedia.Twitter),
		},
		Timestamp:     s.Timestamp,
		UserAgent:     SanitizeText(s.UserAgent),
		SubmittedFrom: clientAddr,
	}
}
