package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time encoded as unix seconds.
// gpodder.net uses it for "since" cursors and change timestamps.
type Timestamp time.Time

func (t Timestamp) Unix() int64 {
	if time.Time(t).IsZero() {
		return 0
	}
	return time.Time(t).Unix()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	stamp := fmt.Sprint(t.Unix())
	return []byte(stamp), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	ts, err := strconv.ParseInt(strings.Trim(string(b), `"`), 10, 64)
	if err != nil {
		return err
	}

	if ts == 0 {
		*t = Timestamp{}
		return nil
	}

	*t = Timestamp(time.Unix(ts, 0).UTC())
	return nil
}

func (t Timestamp) String() string {
	return strconv.FormatInt(t.Unix(), 10)
}

// TimeLayout is the ISO-8601 layout without zone the API uses for episode
// action timestamps and release dates. Values are UTC.
const TimeLayout = "2006-01-02T15:04:05"

// Time is a time.Time encoded with TimeLayout.
type Time time.Time

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(TimeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}

	for _, layout := range []string{TimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time(parsed.UTC())
			return nil
		}
	}

	return fmt.Errorf("unsupported time format %q", s)
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(TimeLayout)
}
