//go:build small_tests || all_tests

package form

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

const testClientAddr = "203.0.113.24"

func testSubmission() *Submission {
	return &Submission{
		FName:        "Quentin",
		LName:        "Example",
		Email:        "quentin@example.com",
		Organization: "Alpha Beta Gamma",
		ChapterName:  "Delta Chapter",
		City:         "Springfield",
		University:   "State University",
		LineName:     "The <Anchor>",
		LineNumber:   "7",
		SocialMedia: SocialMedia{
			Instagram: "@quentin",
			TikTok:    "@q.example",
		},
		Timestamp: "2023-04-01T12:30:00Z",
		UserAgent: "Mozilla/5.0",
	}
}

func TestHasRequiredFields(t *testing.T) {
	t.Run("TrueWhenNameAndEmailPresent", func(t *testing.T) {
		assert.Assert(t, testSubmission().HasRequiredFields())
	})

	t.Run("FalseWhenAnyRequiredFieldMissing", func(t *testing.T) {
		for _, clear := range []func(s *Submission){
			func(s *Submission) { s.FName = "" },
			func(s *Submission) { s.LName = "" },
			func(s *Submission) { s.Email = "" },
		} {
			sub := testSubmission()
			clear(sub)
			assert.Assert(t, !sub.HasRequiredFields())
		}
	})
}

func TestSanitize(t *testing.T) {
	t.Run("EscapesEveryFreeTextField", func(t *testing.T) {
		sub := testSubmission()
		sub.City = `<b>"Springfield"</b>`
		sub.SocialMedia.Facebook = "profiles/quentin"

		result := sub.Sanitize(testClientAddr)

		assert.Equal(t, "&lt;b&gt;&quot;Springfield&quot;&lt;&#x2F;b&gt;",
			result.City)
		assert.Equal(t, "The &lt;Anchor&gt;", result.LineName)
		assert.Equal(t, "profiles&#x2F;quentin", result.SocialMedia.Facebook)
		assert.Equal(t, "Mozilla&#x2F;5.0", result.UserAgent)
	})

	t.Run("RecordsClientAddrAndPreservesTimestamp", func(t *testing.T) {
		result := testSubmission().Sanitize(testClientAddr)

		assert.Equal(t, testClientAddr, result.SubmittedFrom)
		assert.Equal(t, "2023-04-01T12:30:00Z", result.Timestamp)
	})

	t.Run("PassesNonStringLineNumberThrough", func(t *testing.T) {
		sub := testSubmission()
		sub.LineNumber = float64(7)

		result := sub.Sanitize(testClientAddr)

		assert.Equal(t, float64(7), result.LineNumber)
	})
}

func TestImagePayloadDecode(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(imageBytes)

	t.Run("DecodesBareBase64", func(t *testing.T) {
		p := &ImagePayload{Name: "pari.png", Type: "image/png", Data: encoded}

		decoded, err := p.Decode()

		assert.NilError(t, err)
		assert.DeepEqual(t, imageBytes, decoded)
	})

	t.Run("StripsDataUrlPrefix", func(t *testing.T) {
		p := &ImagePayload{
			Name: "pari.png",
			Type: "image/png",
			Data: "data:image/png;base64," + encoded,
		}

		decoded, err := p.Decode()

		assert.NilError(t, err)
		assert.DeepEqual(t, imageBytes, decoded)
	})

	t.Run("FailsOnMalformedPayload", func(t *testing.T) {
		p := &ImagePayload{Name: "pari.png", Data: "%%not-base64%%"}

		decoded, err := p.Decode()

		assert.Assert(t, is.Nil(decoded))
		assert.ErrorContains(t, err, `failed to decode image "pari.png"`)
	})
}

func TestSubmissionJson(t *testing.T) {
	t.Run("UnmarshalsWireFieldNames", func(t *testing.T) {
		payload := `{
			"fname": "Quentin", "lname": "Example",
			"email": "quentin@example.com",
			"socialMedia": {"instagram": "@quentin"},
			"lineNumber": 7,
			"timestamp": 1680352200000,
			"pariImage": {"name": "p.png", "type": "image/png", "data": "QQ=="}
		}`

		var sub Submission
		assert.NilError(t, json.Unmarshal([]byte(payload), &sub))

		assert.Equal(t, "Quentin", sub.FName)
		assert.Equal(t, "@quentin", sub.SocialMedia.Instagram)
		assert.Equal(t, float64(7), sub.LineNumber)
		assert.Assert(t, sub.PariImage != nil)
		assert.Equal(t, "p.png", sub.PariImage.Name)
	})
}
