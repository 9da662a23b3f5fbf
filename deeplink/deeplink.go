// Package deeplink maps landing page paths to app deep links and decides
// where to send each visitor based on their platform.
package deeplink

import (
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

const (
	AppScheme   = "lettered://"
	WebFallback = "https://ltrd.space/"

	IosStoreUrl     = "https://apps.apple.com/app/lettered/id123456789"
	AndroidStoreUrl = "https://play.google.com/store/apps/details?id=com.lettered.app"
)

// Link is the parsed form of a landing page path.
type Link struct {
	IsDeepLink bool
	Type       string
	ID         string
	FullPath   string
}

// Parse recognizes the /profile/:id, /post/:id, and /stream/:id patterns.
// Any other path is not a deep link.
func Parse(path string) Link {
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) >= 2 {
		switch parts[0] {
		case "profile", "post", "stream":
			return Link{
				IsDeepLink: true,
				Type:       parts[0],
				ID:         parts[1],
				FullPath:   parts[0] + "/" + parts[1],
			}
		}
	}
	return Link{}
}

// AppURL is the custom scheme URL that opens the link in the app.
func AppURL(link Link) string {
	return AppScheme + link.FullPath
}

// Platform names returned by DetectPlatform.
const (
	PlatformIos     = "ios"
	PlatformAndroid = "android"
	PlatformOther   = "other"
)

// DetectPlatform sniffs the user agent the same way the landing page does:
// iPad/iPhone/iPod means iOS, a case-insensitive "android" means Android.
func DetectPlatform(userAgent string) string {
	for _, device := range []string{"iPad", "iPhone", "iPod"} {
		if strings.Contains(userAgent, device) {
			return PlatformIos
		}
	}
	if strings.Contains(strings.ToLower(userAgent), "android") {
		return PlatformAndroid
	}
	return PlatformOther
}

// StoreURL returns the app store listing for the platform, or "" when there
// is no store to send the visitor to.
func StoreURL(platform string) string {
	switch platform {
	case PlatformIos:
		return IosStoreUrl
	case PlatformAndroid:
		return AndroidStoreUrl
	}
	return ""
}

// RedirectResponse sends mobile visitors on a deep link path to the app
// scheme and everyone else to the web fallback.
func RedirectResponse(
	req *events.APIGatewayV2HTTPRequest,
) *events.APIGatewayV2HTTPResponse {
	location := WebFallback
	link := Parse(req.RawPath)

	if link.IsDeepLink {
		userAgent := req.Headers["user-agent"]
		if DetectPlatform(userAgent) != PlatformOther {
			location = AppURL(link)
		} else {
			location = WebFallback + link.FullPath
		}
	}

	return &events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusFound,
		Headers:    map[string]string{"Location": location},
	}
}
