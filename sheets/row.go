// Package sheets appends accepted submissions as rows of a Google Sheet.
package sheets

import (
	"github.com/lettered/verifyapi/form"
)

// NoImagePlaceholder fills the media URL column when no image was archived.
const NoImagePlaceholder = "No Image"

// DefaultRange covers the 17 columns of BuildRow on the first sheet.
const DefaultRange = "Sheet1!A:Q"

// BuildRow maps a sanitized submission and its media URL to the fixed
// 17-column order of the spreadsheet. The order is positional, not keyed;
// changing it breaks the sheet's column headers.
func BuildRow(sub *form.SanitizedSubmission, mediaUrl string) []interface{} {
	if mediaUrl == "" {
		mediaUrl = NoImagePlaceholder
	}
	return []interface{}{
		form.FormatTimestamp(sub.Timestamp),
		sub.FName,
		sub.LName,
		sub.Email,
		sub.Organization,
		sub.ChapterName,
		sub.City,
		sub.University,
		sub.LineName,
		form.StringValue(sub.LineNumber),
		sub.SocialMedia.Instagram,
		sub.SocialMedia.TikTok,
		sub.SocialMedia.Facebook,
		sub.SocialMedia.Twitter,
		mediaUrl,
		sub.SubmittedFrom,
		sub.UserAgent,
	}
}
