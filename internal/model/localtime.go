package model

import (
	"bytes"
	"fmt"
	"time"
)

// LocalTimeLayout is the wire format of every timestamp: a date-time
// without zone, interpreted in the server's local zone.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime marshals as a zone-less date-time string.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Time.Format(LocalTimeLayout) + `"`), nil
}

// UnmarshalJSON accepts LocalTimeLayout with optional fractional seconds.
// JSON null leaves the value untouched.
func (t *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timestamp must be a string in %s format", LocalTimeLayout)
	}
	parsed, err := time.ParseInLocation(LocalTimeLayout, string(b[1:len(b)-1]), time.Local)
	if err != nil {
		return fmt.Errorf("timestamp must be in %s format", LocalTimeLayout)
	}
	t.Time = parsed
	return nil
}
