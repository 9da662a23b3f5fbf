package form

import (
	"fmt"
	"time"
)

// Mirrors the en-US locale rendering the notification recipients are used
// to, e.g. "4/1/2023, 12:30:00 PM".
const localeTimeLayout = "1/2/2006, 3:04:05 PM"

// FormatTimestamp renders the client-supplied timestamp for display. RFC
// 3339 strings and epoch-millisecond numbers are formatted; anything else is
// passed through as text, since the timestamp is never validated beyond
// being present.
func FormatTimestamp(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.Format(localeTimeLayout)
		}
		return t
	case float64:
		return time.UnixMilli(int64(t)).UTC().Format(localeTimeLayout)
	default:
		return fmt.Sprint(v)
	}
}

// StringValue renders a passthrough field (LineNumber, Timestamp) as text,
// with nil becoming the empty string.
func StringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; avoid the "7e+06" rendering for
		// values that are really integers.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}
