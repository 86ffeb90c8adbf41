// Package task implements a typed codec for the JSON interchange format
// emitted and consumed by taskwarrior's import/export commands.
//
// The format has a fixed core schema plus an open-ended bag of user defined
// attributes (UDAs): any object key that is not one of the fixed field names
// is carried as a typed scalar in the task's UDA map and flattened back out
// as a top-level key on encode. Unknown keys are therefore never an error,
// while a malformed value under a known key always is.
package task

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Version selects the wire representation of the "depends" field at compile
// time. Taskwarrior 2.5.3 and older exported dependencies as one comma-joined
// string of uuids; 2.6.0 and newer export a proper JSON array. The format is
// never auto-detected from the payload: the caller picks TW25 or TW26 as the
// type parameter of Task.
//
// The interface is sealed; TW25 and TW26 are the only implementations.
type Version interface {
	decodeDepends(value gjson.Result) ([]uuid.UUID, error)
	encodeDepends(deps []uuid.UUID) ([]byte, error)
}

// TW26 is the current depends format: a JSON array of uuid strings.
type TW26 struct{}

// TW25 is the legacy depends format: a single comma-joined string of uuids.
type TW25 struct{}

func (TW26) decodeDepends(value gjson.Result) ([]uuid.UUID, error) {
	if !value.IsArray() {
		return nil, errors.New("expected a JSON array of uuid strings")
	}
	var deps []uuid.UUID
	var ferr error
	value.ForEach(func(_, el gjson.Result) bool {
		if el.Type != gjson.String {
			ferr = errors.New("expected a uuid string")
			return false
		}
		u, err := uuid.Parse(el.Str)
		if err != nil {
			ferr = err
			return false
		}
		deps = append(deps, u)
		return true
	})
	return deps, ferr
}

func (TW26) encodeDepends(deps []uuid.UUID) ([]byte, error) {
	ss := make([]string, len(deps))
	for i, d := range deps {
		ss[i] = d.String()
	}
	return json.Marshal(ss)
}

func (TW25) decodeDepends(value gjson.Result) ([]uuid.UUID, error) {
	if value.Type != gjson.String {
		return nil, errors.New("expected a comma-joined string of uuids")
	}
	segments := strings.Split(value.Str, ",")
	deps := make([]uuid.UUID, 0, len(segments))
	for _, segment := range segments {
		// A single malformed segment fails the whole field.
		u, err := uuid.Parse(segment)
		if err != nil {
			return nil, err
		}
		deps = append(deps, u)
	}
	return deps, nil
}

func (TW25) encodeDepends(deps []uuid.UUID) ([]byte, error) {
	ss := make([]string, len(deps))
	for i, d := range deps {
		ss[i] = d.String()
	}
	return json.Marshal(strings.Join(ss, ","))
}

// Task is one taskwarrior task as exported over JSON.
//
// Four fields are always present: Status, UUID, Entry and Description. All
// others are optional; a nil pointer or nil slice means the key was absent
// from the JSON and will be absent again on encode (never emitted as null).
// The UUID is the task's stable identity; ID is only the transient numeric
// handle the task binary assigns for the current working set.
//
// The type parameter picks the depends wire format, see Version.
type Task[V Version] struct {
	ID *uint64

	Status      Status
	UUID        uuid.UUID
	Entry       Date
	Description string

	Annotations []Annotation
	Depends     []uuid.UUID
	Due         *Date
	End         *Date
	Imask       *float64
	Mask        *string
	Modified    *Date
	Parent      *uuid.UUID
	Priority    *Priority
	Project     *string
	Recur       *string
	Scheduled   *Date
	Start       *Date
	Tags        []string
	Until       *Date
	Wait        *Date
	Urgency     *float64

	// UDA holds every JSON key that is not a fixed field above.
	UDA UDA
}

// Convert re-tags a task with a different depends wire format. All fields are
// carried over unchanged; only the encoding of "depends" differs.
func Convert[To Version, From Version](t Task[From]) Task[To] {
	return Task[To]{
		ID:          t.ID,
		Status:      t.Status,
		UUID:        t.UUID,
		Entry:       t.Entry,
		Description: t.Description,
		Annotations: t.Annotations,
		Depends:     t.Depends,
		Due:         t.Due,
		End:         t.End,
		Imask:       t.Imask,
		Mask:        t.Mask,
		Modified:    t.Modified,
		Parent:      t.Parent,
		Priority:    t.Priority,
		Project:     t.Project,
		Recur:       t.Recur,
		Scheduled:   t.Scheduled,
		Start:       t.Start,
		Tags:        t.Tags,
		Until:       t.Until,
		Wait:        t.Wait,
		Urgency:     t.Urgency,
		UDA:         t.UDA,
	}
}
