package state

import (
	"fmt"
	"strings"
	"time"
)

// Watermark is the newest modification time already processed.
type Watermark struct {
	Time time.Time
}

// IsEmpty returns true if no watermark has been recorded.
func (w Watermark) IsEmpty() bool {
	return w.Time.IsZero()
}

// Advance returns the later of w and t.
func (w Watermark) Advance(t time.Time) Watermark {
	if t.After(w.Time) {
		return Watermark{Time: t}
	}
	return w
}

// String renders the watermark as stored on disk.
func (w Watermark) String() string {
	if w.IsEmpty() {
		return ""
	}
	return w.Time.Format(time.RFC3339Nano)
}

// layouts accepted by ParseWatermark. The naive forms carry no offset and
// are read as local time, matching state files written by earlier tooling.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseWatermark parses the text of a state file. Empty text yields an empty
// watermark.
func ParseWatermark(s string) (Watermark, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Watermark{}, nil
	}
	for _, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if strings.Contains(layout, "Z07") {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return Watermark{Time: t}, nil
		}
	}
	return Watermark{}, fmt.Errorf("unrecognized timestamp %q", s)
}
