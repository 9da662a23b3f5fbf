//go:build small_tests || all_tests

package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"github.com/lettered/verifyapi/form"
)

var testImageBytes = []byte("\x89PNG\r\n\x1a\nnot really a png")

func testImage() *form.ImagePayload {
	return &form.ImagePayload{
		Name: "pari.png",
		Type: "image/png",
		Data: base64.StdEncoding.EncodeToString(testImageBytes),
	}
}

func testNotificationSubmission() *form.SanitizedSubmission {
	return (&form.Submission{
		FName:        "Quentin",
		LName:        "Example",
		Email:        "quentin@example.com",
		Organization: "Alpha Beta Gamma",
		ChapterName:  "Delta Chapter",
		City:         "Springfield",
		University:   "State University",
		LineName:     "The Anchor",
		LineNumber:   "7",
		SocialMedia:  form.SocialMedia{Instagram: "@quentin"},
		Timestamp:    "2023-04-01T12:30:00Z",
		UserAgent:    "Mozilla/5.0",
	}).Sanitize("203.0.113.24")
}

func TestNewNotification(t *testing.T) {
	n := NewNotification(
		"updates@lettered.example.com",
		"ops@lettered.example.com",
		testNotificationSubmission(),
		nil,
	)

	assert.Equal(t, "updates@lettered.example.com", n.From)
	assert.Equal(t, "ops@lettered.example.com", n.To)
	assert.Equal(t, "New Verification Request - Quentin Example", n.Subject)
	assert.Assert(t, n.Image == nil)
}

func TestNotificationBody(t *testing.T) {
	t.Run("IncludesEverySection", func(t *testing.T) {
		body := notificationBody(testNotificationSubmission(), false)

		assert.Assert(t, is.Contains(body, "<h2>New Verification Request</h2>"))
		assert.Assert(t, is.Contains(body, "<h3>Personal Information</h3>"))
		assert.Assert(t, is.Contains(body, "<h3>Greek Information</h3>"))
		assert.Assert(t, is.Contains(body, "<h3>Social Media</h3>"))
		assert.Assert(t, is.Contains(body, "<h3>Submission Details</h3>"))
		assert.Assert(t, is.Contains(
			body, "<p><strong>Name:</strong> Quentin Example</p>",
		))
		assert.Assert(t, is.Contains(
			body, "<p><strong>Submitted:</strong> 4/1/2023, 12:30:00 PM</p>",
		))
		assert.Assert(t, is.Contains(
			body, "<p><strong>IP Address:</strong> 203.0.113.24</p>",
		))
	})

	t.Run("MarksAbsentSocialHandlesAsNotProvided", func(t *testing.T) {
		body := notificationBody(testNotificationSubmission(), false)

		assert.Assert(t, is.Contains(
			body, "<p><strong>Instagram:</strong> @quentin</p>",
		))
		assert.Assert(t, is.Contains(
			body, "<p><strong>TikTok:</strong> Not provided</p>",
		))
		assert.Assert(t, is.Contains(
			body, "<p><strong>Facebook:</strong> Not provided</p>",
		))
	})

	t.Run("NotesAttachedImage", func(t *testing.T) {
		body := notificationBody(testNotificationSubmission(), true)

		assert.Assert(t, is.Contains(
			body, "<p><strong>Note:</strong> Pari image attached</p>",
		))
	})
}

func parseRawMessage(t *testing.T, raw []byte) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	assert.NilError(t, err)
	return msg
}

func TestMarshalRawWithoutImage(t *testing.T) {
	n := NewNotification(
		"updates@lettered.example.com",
		"ops@lettered.example.com",
		testNotificationSubmission(),
		nil,
	)

	raw, err := n.MarshalRaw()
	assert.NilError(t, err)

	msg := parseRawMessage(t, raw)
	assert.Equal(t, "updates@lettered.example.com", msg.Header.Get("From"))
	assert.Equal(t, "ops@lettered.example.com", msg.Header.Get("To"))
	assert.Equal(
		t, "New Verification Request - Quentin Example",
		msg.Header.Get("Subject"),
	)
	assert.Equal(t, "1.0", msg.Header.Get("MIME-Version"))
	assert.Equal(
		t, "quoted-printable", msg.Header.Get("Content-Transfer-Encoding"),
	)

	mediaType, params, err := mime.ParseMediaType(
		msg.Header.Get("Content-Type"),
	)
	assert.NilError(t, err)
	assert.Equal(t, "text/html", mediaType)
	assert.Equal(t, "utf-8", params["charset"])

	body, err := io.ReadAll(quotedprintable.NewReader(msg.Body))
	assert.NilError(t, err)
	assert.Equal(t, notificationBody(testNotificationSubmission(), false),
		string(body))
}

func TestMarshalRawWithImage(t *testing.T) {
	n := NewNotification(
		"updates@lettered.example.com",
		"ops@lettered.example.com",
		testNotificationSubmission(),
		testImage(),
	)

	raw, err := n.MarshalRaw()
	assert.NilError(t, err)

	msg := parseRawMessage(t, raw)
	mediaType, params, err := mime.ParseMediaType(
		msg.Header.Get("Content-Type"),
	)
	assert.NilError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	htmlPart, err := mr.NextPart()
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(
		htmlPart.Header.Get("Content-Type"), "text/html",
	))
	htmlBody, err := io.ReadAll(
		quotedprintable.NewReader(htmlPart),
	)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(htmlBody), "Pari image attached"))

	imgPart, err := mr.NextPart()
	assert.NilError(t, err)
	assert.Equal(t, "image/png", imgPart.Header.Get("Content-Type"))
	assert.Equal(
		t, "base64", imgPart.Header.Get("Content-Transfer-Encoding"),
	)
	assert.Assert(t, is.Contains(
		imgPart.Header.Get("Content-Disposition"), `filename="pari.png"`,
	))

	encoded, err := io.ReadAll(imgPart)
	assert.NilError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(
		strings.ReplaceAll(string(encoded), "\r\n", ""),
	)
	assert.NilError(t, err)
	assert.DeepEqual(t, testImageBytes, decoded)

	_, err = mr.NextPart()
	assert.Assert(t, err == io.EOF)
}

func TestMarshalRawFailsOnUndecodableImage(t *testing.T) {
	img := testImage()
	img.Data = "not valid base64!"
	n := NewNotification(
		"updates@lettered.example.com",
		"ops@lettered.example.com",
		testNotificationSubmission(),
		img,
	)

	_, err := n.MarshalRaw()

	assert.ErrorContains(t, err, "failed to emit notification")
	assert.ErrorContains(t, err, `failed to decode image "pari.png"`)
}

func TestWriteBase64Lines(t *testing.T) {
	buf := &bytes.Buffer{}
	data := bytes.Repeat([]byte{0xff}, 100)

	assert.NilError(t, writeBase64Lines(buf, data))

	for _, line := range strings.Split(
		strings.TrimSuffix(buf.String(), "\r\n"), "\r\n",
	) {
		assert.Assert(t, len(line) <= 76, "line too long: %d", len(line))
	}
	decoded, err := base64.StdEncoding.DecodeString(
		strings.ReplaceAll(buf.String(), "\r\n", ""),
	)
	assert.NilError(t, err)
	assert.DeepEqual(t, data, decoded)
}
