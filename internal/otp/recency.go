package otp

import (
	"fmt"
	"strings"
	"time"
)

// Stamped is the minimum a message needs to take part in recency selection.
type Stamped struct {
	ID        string
	CreatedAt string
}

const naiveLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses provider timestamps such as "2025-10-20T12:34:56.789Z"
// and "2025-10-20T12:34:56+00:00". A timestamp without zone is taken as UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(naiveLayout, ts, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	return t, nil
}

// MostRecent picks the youngest message whose age lies within [0, maxAge].
// Messages from the future and messages with unparsable timestamps are skipped.
func MostRecent(msgs []Stamped, now time.Time, maxAge time.Duration) (Stamped, bool) {
	var (
		best    Stamped
		bestAge time.Duration
		found   bool
	)

	for _, m := range msgs {
		createdAt, err := ParseTimestamp(m.CreatedAt)
		if err != nil {
			continue
		}

		age := now.Sub(createdAt)
		if age < 0 || age > maxAge {
			continue
		}

		if !found || age < bestAge {
			best, bestAge, found = m, age, true
		}
	}

	return best, found
}
