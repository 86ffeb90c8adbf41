package task

import (
	"encoding/json"
	"fmt"
)

// Priority is the optional L/M/H priority of a task. Absence of the field
// means "no priority"; it is not a fourth variant. A priority key that is
// present but carries any other token is a decode error.
type Priority int

const (
	Low Priority = iota
	Medium
	High
)

// ParsePriority maps a wire token to a Priority.
func ParsePriority(token string) (Priority, error) {
	switch token {
	case "L":
		return Low, nil
	case "M":
		return Medium, nil
	case "H":
		return High, nil
	}
	return 0, fmt.Errorf("unrecognized priority token %q", token)
}

// Token returns the wire token for p.
func (p Priority) Token() (string, error) {
	switch p {
	case Low:
		return "L", nil
	case Medium:
		return "M", nil
	case High:
		return "H", nil
	}
	return "", fmt.Errorf("unknown priority value %d", int(p))
}

func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// MarshalJSON implements json.Marshaler.
func (p Priority) MarshalJSON() ([]byte, error) {
	tok, err := p.Token()
	if err != nil {
		return nil, err
	}
	return json.Marshal(tok)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Priority) UnmarshalJSON(b []byte) error {
	var tok string
	if err := json.Unmarshal(b, &tok); err != nil {
		return err
	}
	parsed, err := ParsePriority(tok)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
