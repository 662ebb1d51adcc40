package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout matches the backend's timestamps, which are built from naive
// UTC datetimes and serialized without an offset, with or without a
// fractional part ("2026-09-15T00:00:00", "2026-08-29T12:34:56.789000").
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Time decodes both RFC 3339 and the backend's offset-less UTC literals.
// It always marshals as RFC 3339 UTC, which the backend accepts.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var literal string
	if err := json.Unmarshal(data, &literal); err != nil {
		return err
	}
	if literal == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, literal)
	if err != nil {
		// offset-less literals are UTC on the backend
		parsed, err = time.Parse(naiveLayout, literal)
		if err != nil {
			return fmt.Errorf("unrecognized timestamp %q", literal)
		}
	}
	t.Time = parsed.UTC()
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
