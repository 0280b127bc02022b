// Package store defines the persistence interfaces used by the service.
// Implementations live under internal/store/<driver>/.
package store

import (
	"context"

	"github.com/daybook-app/daybook/internal/model"
)

// Store exposes persistence operations required by services.
type Store interface {
	Entries() Entries
	Snapshots() Snapshots
	Schedule() Schedule
	HealthCheck(ctx context.Context) error
	Close() error
}

// Entries owns durable storage of diary entries.
type Entries interface {
	Create(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error)
	// List returns all entries sorted by date descending, newest first.
	List(ctx context.Context) ([]*model.DiaryEntry, error)
	GetByID(ctx context.Context, entryID string) (*model.DiaryEntry, error)
	Update(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error)
	Delete(ctx context.Context, entryID string) error
}

// Snapshots stores the single current insight snapshot. Put replaces the
// previous snapshot and its freshness marker in one statement so no reader
// can observe a marker without its snapshot.
type Snapshots interface {
	Put(ctx context.Context, s *model.InsightSnapshot) error
	Latest(ctx context.Context) (*model.InsightSnapshot, error)
}

// Schedule persists the background refresh bookkeeping. NextRun is written
// before the analysis executes so a crash mid-run never loses the next
// wake-up.
type Schedule interface {
	SetNextRun(ctx context.Context, task string, at string) error
	NextRun(ctx context.Context, task string) (string, error)
}
