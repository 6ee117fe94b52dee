package store

import (
	"context"

	"github.com/Arrognz/babycheck/internal/core/event"
)

// Store persists the raw event log. Search returns events whose
// timestamp falls in the half-open range [startMs, endMs), unsorted;
// callers normalize. Delete removes every event at an exact timestamp
// and reports how many were removed. Retype rewrites the kind of the
// events at a timestamp in place.
type Store interface {
	Search(ctx context.Context, startMs, endMs int64) ([]event.Event, error)
	Add(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, timestampMs int64) (int, error)
	Retype(ctx context.Context, timestampMs int64, kind event.Kind) (int, error)
	Close() error
}
