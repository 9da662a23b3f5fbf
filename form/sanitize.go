package form

import (
	"regexp"
	"strings"
)

// Conservative pattern: local part of allowed characters, one "@", a dotted
// domain, and a TLD of at least two letters. Stricter than RFC 5322;
// submissions failing it are rejected outright.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
)

// IsValidEmail reports whether addr matches the conservative email pattern
// used as a hard precondition for accepting a submission.
func IsValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// strings.Replacer performs a single, non-recursive left-to-right pass, so
// already escaped entities are never double processed in a way that could
// reintroduce the original characters.
var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeText replaces the five HTML-significant characters with their
// entity equivalents.
//
// This guards against submitted text being rendered unescaped downstream,
// such as in the notification email body. It is not a full HTML sanitizer:
// encoded variants and Unicode look-alikes pass through untouched.
func SanitizeText(s string) string {
	return htmlEscaper.Replace(s)
}

// SanitizeValue applies SanitizeText to string values and passes every other
// type through unchanged.
func SanitizeValue(v any) any {
	if s, ok := v.(string); ok {
		return SanitizeText(s)
	}
	return v
}
