package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// UnmarshalJSON decodes one exported task object.
//
// Every key is dispatched exactly once while scanning the object in document
// order: fixed field names are parsed strictly in the shape that field
// requires, everything else is sniffed into the UDA map. The required fields
// (status, uuid, entry, description) are only verified after the full scan,
// so when an object is both missing a required field and carries a malformed
// known field, the malformed field wins.
func (t *Task[V]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("task: invalid JSON: %w", json.Unmarshal(data, new(any)))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ErrNotAnObject
	}

	var out Task[V]
	var seenStatus, seenUUID, seenEntry, seenDescription bool
	var ferr error

	fail := func(field string, err error) bool {
		ferr = &FieldError{Field: field, Err: err}
		return false
	}

	root.ForEach(func(key, value gjson.Result) bool {
		switch name := key.Str; name {
		case "id":
			n, err := parseUintField(value)
			if err != nil {
				return fail(name, err)
			}
			out.ID = &n
		case "status":
			tok, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			status, err := ParseStatus(tok)
			if err != nil {
				return fail(name, err)
			}
			out.Status = status
			seenStatus = true
		case "uuid":
			u, err := parseUUIDField(value)
			if err != nil {
				return fail(name, err)
			}
			out.UUID = u
			seenUUID = true
		case "entry":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Entry = d
			seenEntry = true
		case "description":
			s, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Description = s
			seenDescription = true
		case "annotations":
			anns, err := parseAnnotations(value)
			if err != nil {
				return fail(name, err)
			}
			out.Annotations = anns
		case "depends":
			var version V
			deps, err := version.decodeDepends(value)
			if err != nil {
				return fail(name, err)
			}
			out.Depends = deps
		case "due":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Due = &d
		case "end":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.End = &d
		case "imask":
			f, err := parseFloatField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Imask = &f
		case "mask":
			s, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Mask = &s
		case "modified":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Modified = &d
		case "parent":
			u, err := parseUUIDField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Parent = &u
		case "priority":
			tok, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			prio, err := ParsePriority(tok)
			if err != nil {
				return fail(name, err)
			}
			out.Priority = &prio
		case "project":
			s, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Project = &s
		case "recur":
			s, err := parseStringField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Recur = &s
		case "scheduled":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Scheduled = &d
		case "start":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Start = &d
		case "tags":
			tags, err := parseStringArray(value)
			if err != nil {
				return fail(name, err)
			}
			out.Tags = tags
		case "until":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Until = &d
		case "wait":
			d, err := parseDateField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Wait = &d
		case "urgency":
			f, err := parseFloatField(value)
			if err != nil {
				return fail(name, err)
			}
			out.Urgency = &f
		default:
			v, err := sniffUDAValue(value)
			if err != nil {
				ferr = &UDAValueError{Key: name}
				return false
			}
			if out.UDA == nil {
				out.UDA = UDA{}
			}
			out.UDA[name] = v
		}
		return true
	})
	if ferr != nil {
		return ferr
	}

	switch {
	case !seenStatus:
		return &MissingFieldError{Field: "status"}
	case !seenUUID:
		return &MissingFieldError{Field: "uuid"}
	case !seenEntry:
		return &MissingFieldError{Field: "entry"}
	case !seenDescription:
		return &MissingFieldError{Field: "description"}
	}

	*t = out
	return nil
}

// MarshalJSON encodes the task as a single JSON object. Key order is fixed:
// id first when present, then the required fields, then every present
// optional field in schema order, and finally the UDA entries in sorted key
// order. Absent fields are omitted entirely.
func (t Task[V]) MarshalJSON() ([]byte, error) {
	enc := objectEncoder{}
	if t.ID != nil {
		enc.put("id", *t.ID)
	}
	enc.put("status", t.Status)
	enc.put("uuid", t.UUID.String())
	enc.put("entry", t.Entry)
	enc.put("description", t.Description)
	if len(t.Annotations) > 0 {
		enc.put("annotations", t.Annotations)
	}
	if len(t.Depends) > 0 {
		var version V
		raw, err := version.encodeDepends(t.Depends)
		if err != nil {
			return nil, &FieldError{Field: "depends", Err: err}
		}
		enc.putRaw("depends", raw)
	}
	if t.Due != nil {
		enc.put("due", t.Due)
	}
	if t.End != nil {
		enc.put("end", t.End)
	}
	if t.Imask != nil {
		enc.put("imask", *t.Imask)
	}
	if t.Mask != nil {
		enc.put("mask", *t.Mask)
	}
	if t.Modified != nil {
		enc.put("modified", t.Modified)
	}
	if t.Parent != nil {
		enc.put("parent", t.Parent.String())
	}
	if t.Priority != nil {
		enc.put("priority", t.Priority)
	}
	if t.Project != nil {
		enc.put("project", *t.Project)
	}
	if t.Recur != nil {
		enc.put("recur", *t.Recur)
	}
	if t.Scheduled != nil {
		enc.put("scheduled", t.Scheduled)
	}
	if t.Start != nil {
		enc.put("start", t.Start)
	}
	if len(t.Tags) > 0 {
		enc.put("tags", t.Tags)
	}
	if t.Until != nil {
		enc.put("until", t.Until)
	}
	if t.Wait != nil {
		enc.put("wait", t.Wait)
	}
	if t.Urgency != nil {
		enc.put("urgency", *t.Urgency)
	}
	for _, name := range t.UDA.Names() {
		raw, err := t.UDA[name].appendJSON(nil)
		if err != nil {
			enc.fail(name, err)
			break
		}
		enc.putRaw(name, raw)
	}
	return enc.finish()
}

// objectEncoder assembles a JSON object with a caller-controlled key order.
// The first failed field sticks and surfaces from finish.
type objectEncoder struct {
	buf bytes.Buffer
	n   int
	err error
}

func (e *objectEncoder) put(key string, v any) {
	if e.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	e.putRaw(key, raw)
}

func (e *objectEncoder) putRaw(key string, raw []byte) {
	if e.err != nil {
		return
	}
	if e.n == 0 {
		e.buf.WriteByte('{')
	} else {
		e.buf.WriteByte(',')
	}
	e.n++
	kb, _ := json.Marshal(key)
	e.buf.Write(kb)
	e.buf.WriteByte(':')
	e.buf.Write(raw)
}

func (e *objectEncoder) fail(key string, err error) {
	if e.err == nil {
		e.err = &FieldError{Field: key, Err: err}
	}
}

func (e *objectEncoder) finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.n == 0 {
		return []byte("{}"), nil
	}
	e.buf.WriteByte('}')
	return e.buf.Bytes(), nil
}

func parseStringField(value gjson.Result) (string, error) {
	if value.Type != gjson.String {
		return "", errors.New("expected a JSON string")
	}
	return value.Str, nil
}

func parseUintField(value gjson.Result) (uint64, error) {
	if value.Type != gjson.Number {
		return 0, errors.New("expected a JSON number")
	}
	n, err := strconv.ParseUint(value.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected an unsigned integer: %w", err)
	}
	return n, nil
}

func parseFloatField(value gjson.Result) (float64, error) {
	if value.Type != gjson.Number {
		return 0, errors.New("expected a JSON number")
	}
	return value.Float(), nil
}

func parseDateField(value gjson.Result) (Date, error) {
	s, err := parseStringField(value)
	if err != nil {
		return Date{}, err
	}
	return ParseDate(s)
}

func parseUUIDField(value gjson.Result) (uuid.UUID, error) {
	s, err := parseStringField(value)
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(s)
}

func parseStringArray(value gjson.Result) ([]string, error) {
	if !value.IsArray() {
		return nil, errors.New("expected a JSON array of strings")
	}
	var out []string
	var ferr error
	value.ForEach(func(_, el gjson.Result) bool {
		if el.Type != gjson.String {
			ferr = errors.New("expected a JSON string element")
			return false
		}
		out = append(out, el.Str)
		return true
	})
	return out, ferr
}

func parseAnnotations(value gjson.Result) ([]Annotation, error) {
	if !value.IsArray() {
		return nil, errors.New("expected a JSON array of annotations")
	}
	var out []Annotation
	var ferr error
	value.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			ferr = errors.New("expected an annotation object")
			return false
		}
		entry := el.Get("entry")
		if !entry.Exists() {
			ferr = errors.New("annotation is missing its entry date")
			return false
		}
		d, err := parseDateField(entry)
		if err != nil {
			ferr = err
			return false
		}
		description := el.Get("description")
		if description.Type != gjson.String {
			ferr = errors.New("annotation is missing its description")
			return false
		}
		out = append(out, Annotation{Entry: d, Description: description.Str})
		return true
	})
	return out, ferr
}
