package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// TimeLayout is the naive timestamp layout used by the trip log and every
// cleaned CSV derived from it.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a time.Time that marshals to TimeLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.Format(TimeLayout)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := time.Parse(TimeLayout, strings.TrimSpace(string(b)))
	if err != nil {
		return eris.Wrapf(err, "model: parse timestamp %q", string(b))
	}
	t.Time = parsed
	return nil
}

// MarshalJSON overrides the RFC 3339 form promoted from time.Time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return eris.Wrap(err, "model: decode timestamp")
	}
	return t.UnmarshalText([]byte(s))
}

func (t Timestamp) String() string {
	return t.Format(TimeLayout)
}
