package email

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/lettered/verifyapi/form"
)

var charsetUtf8 = map[string]string{"charset": "utf-8"}
var htmlContentType = mime.FormatMediaType("text/html", charsetUtf8)

// Notification is the email summarizing one verification submission, sent
// to the configured operator recipient.
type Notification struct {
	From     string
	To       string
	Subject  string
	HtmlBody string
	Image    *form.ImagePayload
}

func NewNotification(
	sender, recipient string,
	sub *form.SanitizedSubmission,
	img *form.ImagePayload,
) *Notification {
	return &Notification{
		From:     sender,
		To:       recipient,
		Subject:  "New Verification Request - " + sub.FName + " " + sub.LName,
		HtmlBody: notificationBody(sub, img != nil),
		Image:    img,
	}
}

// MarshalRaw emits the full RFC 5322 message: headers, the HTML summary as
// quoted-printable, and the image (when present) as a base64 attachment in a
// multipart/mixed envelope.
func (n *Notification) MarshalRaw() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := &Writer{buf: buf}

	w.WriteLine("From: " + n.From)
	w.WriteLine("To: " + n.To)
	w.WriteLine("Subject: " + n.Subject)
	w.WriteLine("MIME-Version: 1.0")

	if n.Image == nil {
		n.emitHtmlOnly(w)
	} else {
		n.emitMultipart(w)
	}

	if w.err != nil {
		return nil, fmt.Errorf("failed to emit notification: %s", w.err)
	}
	return buf.Bytes(), nil
}

func (n *Notification) emitHtmlOnly(w *Writer) {
	w.WriteLine("Content-Type: " + htmlContentType)
	w.WriteLine("Content-Transfer-Encoding: quoted-printable")
	w.WriteLine("")

	if w.err == nil {
		w.err = convertToQuotedPrintable(w, n.HtmlBody)
	}
}

func (n *Notification) emitMultipart(w *Writer) {
	mpw := multipart.NewWriter(w)
	contentType := mime.FormatMediaType(
		"multipart/mixed",
		map[string]string{"boundary": mpw.Boundary()},
	)
	w.WriteLine("Content-Type: " + contentType)
	w.WriteLine("")

	if w.err == nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", htmlContentType)
		h.Set("Content-Transfer-Encoding", "quoted-printable")

		if pw, err := mpw.CreatePart(h); err != nil {
			w.err = err
		} else {
			w.err = convertToQuotedPrintable(pw, n.HtmlBody)
		}
	}
	if w.err == nil {
		w.err = emitAttachment(mpw, n.Image)
	}
	if w.err == nil {
		w.err = mpw.Close()
	}
}

func emitAttachment(mpw *multipart.Writer, img *form.ImagePayload) error {
	data, err := img.Decode()
	if err != nil {
		return err
	}

	contentType := img.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	h.Set("Content-Disposition", mime.FormatMediaType(
		"attachment", map[string]string{"filename": img.Name},
	))

	pw, err := mpw.CreatePart(h)
	if err != nil {
		return err
	}
	return writeBase64Lines(pw, data)
}

// RFC 2045 limits encoded lines to 76 characters.
func writeBase64Lines(w io.Writer, data []byte) (err error) {
	const lineLen = 76
	encoded := base64.StdEncoding.EncodeToString(data)

	for len(encoded) != 0 && err == nil {
		n := lineLen
		if len(encoded) < n {
			n = len(encoded)
		}
		_, err = w.Write([]byte(encoded[:n] + "\r\n"))
		encoded = encoded[n:]
	}
	return
}

func convertToQuotedPrintable(w io.Writer, msg string) error {
	qpw := quotedprintable.NewWriter(w)
	_, err := qpw.Write([]byte(msg))
	return errors.Join(err, qpw.Close())
}

func notificationBody(sub *form.SanitizedSubmission, hasImage bool) string {
	b := &strings.Builder{}
	heading := func(s string) {
		b.WriteString("<h3>" + s + "</h3>\r\n")
	}
	field := func(name, value string) {
		b.WriteString("<p><strong>" + name + ":</strong> " + value + "</p>\r\n")
	}
	orNotProvided := func(s string) string {
		if s == "" {
			return "Not provided"
		}
		return s
	}

	b.WriteString("<h2>New Verification Request</h2>\r\n")
	heading("Personal Information")
	field("Name", sub.FName+" "+sub.LName)
	field("Email", sub.Email)

	heading("Greek Information")
	field("Organization", sub.Organization)
	field("Chapter Name", sub.ChapterName)
	field("City", sub.City)
	field("University", sub.University)
	field("Line Name", sub.LineName)
	field("Line Number", form.StringValue(sub.LineNumber))

	heading("Social Media")
	field("Instagram", orNotProvided(sub.SocialMedia.Instagram))
	field("TikTok", orNotProvided(sub.SocialMedia.TikTok))
	field("Facebook", orNotProvided(sub.SocialMedia.Facebook))
	field("Twitter", orNotProvided(sub.SocialMedia.Twitter))

	heading("Submission Details")
	field("Submitted", form.FormatTimestamp(sub.Timestamp))
	field("IP Address", sub.SubmittedFrom)
	field("User Agent", sub.UserAgent)

	if hasImage {
		b.WriteString("<p><strong>Note:</strong> Pari image attached</p>\r\n")
	}
	return b.String()
}
