// Package store is the persistence boundary for room records. It owns
// no provisioning logic, only CRUD keyed by the room's public id.
package store

import (
	"context"

	"github.com/quizhive/rooms/internal/domain"
)

// RoomStore is implemented once per backend (mongo, memory) and
// selected at startup by configuration.
type RoomStore interface {
	// Create persists a new record and returns its storage handle.
	// It performs its own uniqueness check at write time and fails
	// with domain.ErrAlreadyExists on a public-id collision; callers
	// must not rely on a prior Get returning nil.
	Create(ctx context.Context, room *domain.Room) (string, error)

	// Get returns (nil, nil) when the room is absent. Not-found is
	// ordinary control flow at read paths, never an error.
	Get(ctx context.Context, id domain.RoomID) (*domain.Room, error)

	// GetAll returns every record, unordered. Used by reconciliation
	// and listing; no pagination guarantees.
	GetAll(ctx context.Context) ([]domain.Room, error)

	// Update writes the full record by public id. Returns false only
	// when nothing matched and nothing was modified; a matched but
	// unchanged write (same student count twice) still reports true.
	Update(ctx context.Context, room *domain.Room) (bool, error)

	// Delete returns true iff exactly one record was removed.
	// Deleting an absent id returns false, not an error.
	Delete(ctx context.Context, id domain.RoomID) (bool, error)
}
