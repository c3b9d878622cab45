package works

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Epoch is the instant used for missing or unreadable timestamps.
var Epoch = time.Unix(0, 0).UTC()

var timestamps = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  now.TimeFormats,
}

// ParseTimestamp accepts the layouts the submission forms have written over
// time ("2006-01-02 15:04:05", RFC3339, plain dates). Anything else is Epoch.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return Epoch
	}
	t, err := timestamps.Parse(s)
	if err != nil {
		return Epoch
	}
	return t
}

// CreatedTime is the parsed created_at of the record.
func (a Artwork) CreatedTime() time.Time {
	return ParseTimestamp(a.CreatedAt)
}
