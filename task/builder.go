package task

import (
	"time"

	"github.com/google/uuid"
)

// Swappable so tests can pin creation defaults.
var (
	timeNow = time.Now
	newUUID = uuid.New
)

// New builds a fresh task with the defaults taskwarrior itself would assign:
// Pending status, a new random uuid and the current time as the entry date.
// The description is the one field that has no sensible default, so it is the
// only argument.
func New[V Version](description string) Task[V] {
	return Task[V]{
		Status:      Pending,
		UUID:        newUUID(),
		Entry:       NewDate(timeNow().UTC()),
		Description: description,
	}
}
