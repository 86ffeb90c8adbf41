package task

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// UDAValue is the value of a user defined attribute. Taskwarrior only ever
// exports scalars for UDAs, so the union is closed over three kinds: a string,
// a non-negative integer, or a float. Which kind a JSON literal decodes to is
// decided by its shape alone: quoted means UDAString, a bare integer literal
// means UDAUint, anything with a fraction, exponent or sign means UDAFloat.
type UDAValue interface {
	appendJSON(dst []byte) ([]byte, error)
	isUDAValue()
}

// UDAString is a string-valued user defined attribute.
type UDAString string

// UDAUint is a non-negative integer user defined attribute.
type UDAUint uint64

// UDAFloat is a float user defined attribute.
type UDAFloat float64

func (v UDAString) isUDAValue() {}
func (v UDAUint) isUDAValue()   {}
func (v UDAFloat) isUDAValue()  {}

func (v UDAString) appendJSON(dst []byte) ([]byte, error) {
	b, err := json.Marshal(string(v))
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

func (v UDAUint) appendJSON(dst []byte) ([]byte, error) {
	return strconv.AppendUint(dst, uint64(v), 10), nil
}

func (v UDAFloat) appendJSON(dst []byte) ([]byte, error) {
	// json.Marshal rejects NaN and the infinities for us.
	b, err := json.Marshal(float64(v))
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// UDA maps user defined attribute names to their values. Every key of a JSON
// task object that is not one of the fixed schema fields lands here, and on
// encode each entry is flattened back out as a top-level key, in sorted key
// order so re-exported JSON is diff-stable.
type UDA map[string]UDAValue

// IsEmpty reports whether the map holds no entries. The encoder uses it to
// skip the UDA section entirely.
func (u UDA) IsEmpty() bool {
	return len(u) == 0
}

// Get returns the value stored under name, if any.
func (u UDA) Get(name string) (UDAValue, bool) {
	v, ok := u[name]
	return v, ok
}

// Names returns all attribute names in sorted order.
func (u UDA) Names() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var errUDAShape = errors.New("unsupported value shape, must be a string or a number")

// sniffUDAValue converts a scanned JSON scalar into a UDAValue based on the
// shape of its literal, not its numeric range.
func sniffUDAValue(value gjson.Result) (UDAValue, error) {
	switch value.Type {
	case gjson.String:
		return UDAString(value.Str), nil
	case gjson.Number:
		raw := value.Raw
		if !strings.ContainsAny(raw, ".eE") {
			if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
				return UDAUint(n), nil
			}
		}
		// Fractional, exponent-form, negative or out-of-range integer
		// literals all land in the float variant.
		return UDAFloat(value.Float()), nil
	default:
		return nil, errUDAShape
	}
}
