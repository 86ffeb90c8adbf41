// Package store keeps an audit trail of task batches that pass through the
// service, backed by a SQLite database.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskwire/taskwire/task"
)

// Snapshot is one recorded task, stored alongside the full normalized JSON it
// was exported as. The same uuid may appear many times; each row is one
// sighting, not the task's current state.
type Snapshot struct {
	gorm.Model
	UUID        string `gorm:"index"`
	Status      string
	Description string
	Payload     string
}

// Store wraps the snapshot database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the snapshot schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: failed to open SQLite database at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("store: failed to migrate snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record writes one snapshot row per task.
func (s *Store) Record(tasks []task.Task[task.TW26]) error {
	if len(tasks) == 0 {
		return nil
	}
	rows := make([]Snapshot, 0, len(tasks))
	for _, t := range tasks {
		payload, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("store: failed to serialize task %s: %w", t.UUID, err)
		}
		status, err := t.Status.Token()
		if err != nil {
			return fmt.Errorf("store: task %s: %w", t.UUID, err)
		}
		rows = append(rows, Snapshot{
			UUID:        t.UUID.String(),
			Status:      status,
			Description: t.Description,
			Payload:     string(payload),
		})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return fmt.Errorf("store: failed to record snapshots: %w", err)
	}
	return nil
}

// Recent returns the snapshots recorded within the given window, newest
// first.
func (s *Store) Recent(window time.Duration) ([]Snapshot, error) {
	if window <= 0 {
		return nil, fmt.Errorf("store: window must be positive")
	}
	now := time.Now()
	from := now.Add(-window)

	var rows []Snapshot
	err := s.db.
		Where("created_at BETWEEN ? AND ?", from, now).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: failed to query snapshots: %w", err)
	}
	return rows, nil
}

// Prune permanently deletes snapshots older than the retention period and
// reports how many rows went away.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("store: retention must be positive")
	}
	cutoff := time.Now().Add(-retention)
	res := s.db.Unscoped().Where("created_at < ?", cutoff).Delete(&Snapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("store: failed to prune snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}
