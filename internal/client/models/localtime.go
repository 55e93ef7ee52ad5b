package models

import (
	"bytes"
	"fmt"
	"time"
)

// LocalTimeLayout is an ISO-8601 date-time without a zone, as the API
// serialises timestamps. The fraction is optional.
const LocalTimeLayout = "2006-01-02T15:04:05.999999999"

// LocalTime is a zone-less timestamp interpreted in the local zone.
type LocalTime struct {
	time.Time
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("local time must be a JSON string, got %s", b)
	}
	s := string(b[1 : len(b)-1])
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(LocalTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid local time %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(LocalTimeLayout) + `"`), nil
}

// String formats the time for display, e.g. "2025-03-01 12:30".
func (t LocalTime) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
