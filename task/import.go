package task

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// ImportTask decodes a single JSON task object.
func ImportTask[V Version](data []byte) (Task[V], error) {
	var t Task[V]
	if err := json.Unmarshal(data, &t); err != nil {
		return Task[V]{}, err
	}
	return t, nil
}

// Import decodes a JSON array of task objects, the shape `task export`
// produces. The call is all-or-nothing: a malformed array or a single
// malformed element fails the whole import.
func Import[V Version](r io.Reader) ([]Task[V], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("task: read: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("task: invalid JSON: %w", json.Unmarshal(data, new(any)))
	}
	if !gjson.ParseBytes(data).IsArray() {
		return nil, ErrNotAnArray
	}
	var tasks []Task[V]
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// LineResult is the outcome of decoding one non-blank input line.
type LineResult[V Version] struct {
	Task Task[V]
	Err  error
}

// ImportLines decodes newline-delimited task objects, one object per line, as
// hook scripts receive them on stdin. Blank lines are skipped without leaving
// a trace in the result. Unlike Import, one bad line does not spoil the
// batch: the returned slice has one entry per non-blank line, each
// independently decoded.
func ImportLines[V Version](r io.Reader) []LineResult[V] {
	var results []LineResult[V]
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := ImportTask[V]([]byte(line))
		results = append(results, LineResult[V]{Task: t, Err: err})
	}
	if err := scanner.Err(); err != nil {
		results = append(results, LineResult[V]{Err: fmt.Errorf("task: read: %w", err)})
	}
	return results
}
