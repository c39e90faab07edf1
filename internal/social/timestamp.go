package social

import "time"

// compactZoneLayout is the secondary timestamp shape some clients write,
// e.g. 2025-08-20T15:23:45+0200.
const compactZoneLayout = "2006-01-02T15:04:05-0700"

// ParseTimestamp parses a post id or poll end timestamp. RFC 3339 is tried
// first, then the compact zone variant. Anything else is an error, which
// consumers treat as "no time".
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(compactZoneLayout, s)
}

// CurrentTimestamp returns the current local time in RFC 3339 format. New
// post ids are minted from it.
func CurrentTimestamp() string {
	return time.Now().Format(time.RFC3339)
}
