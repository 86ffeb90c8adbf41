package task

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a task. It is the one mandatory enum in
// the export format: an unrecognized token is a decode error, never a silent
// default to Pending.
type Status int

const (
	Pending Status = iota
	Deleted
	Completed
	Waiting
	Recurring
)

var statusTokens = map[Status]string{
	Pending:   "pending",
	Deleted:   "deleted",
	Completed: "completed",
	Waiting:   "waiting",
	Recurring: "recurring",
}

// ParseStatus maps a wire token to a Status.
func ParseStatus(token string) (Status, error) {
	for s, tok := range statusTokens {
		if tok == token {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unrecognized status token %q", token)
}

// Token returns the wire token for s.
func (s Status) Token() (string, error) {
	tok, ok := statusTokens[s]
	if !ok {
		return "", fmt.Errorf("unknown status value %d", int(s))
	}
	return tok, nil
}

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Deleted:
		return "Deleted"
	case Completed:
		return "Completed"
	case Waiting:
		return "Waiting"
	case Recurring:
		return "Recurring"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	tok, err := s.Token()
	if err != nil {
		return nil, err
	}
	return json.Marshal(tok)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(b []byte) error {
	var tok string
	if err := json.Unmarshal(b, &tok); err != nil {
		return err
	}
	parsed, err := ParseStatus(tok)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
