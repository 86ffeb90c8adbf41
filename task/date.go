package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTemplate is the fixed layout taskwarrior uses for every timestamp it
// exports: YYYYMMDDTHHMMSSZ. The trailing 'Z' is a literal character, not a
// zone designator -- exported dates carry no timezone information at all, so
// we never convert them. Whatever wall-clock components appear in the string
// are what we store and what we emit back.
const DateTemplate = "20060102T150405Z"

// Date wraps time.Time to pin JSON (de)serialization to DateTemplate.
type Date struct {
	time.Time
}

// NewDate truncates t to whole seconds, since the wire format cannot carry
// anything finer.
func NewDate(t time.Time) Date {
	return Date{t.Truncate(time.Second)}
}

// ParseDate parses s strictly against DateTemplate. Any deviation from the
// template is an error.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateTemplate, s)
	if err != nil {
		return Date{}, fmt.Errorf("expected a date matching %s: %w", DateTemplate, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateTemplate)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateTemplate))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
