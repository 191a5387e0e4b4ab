// Package provider defines the contract every room backend satisfies.
// One implementation per orchestration backend, selected at startup by
// configuration (ROOM_PROVIDER).
package provider

import (
	"context"

	"github.com/quizhive/rooms/internal/domain"
)

// Options carries caller-supplied room settings.
type Options struct {
	Title string
}

// Provider provisions and tears down room runtimes. Implementations
// must never leave partial state silently: if the runtime and the
// store disagree after an operation, they surface
// domain.ErrInconsistentState instead of a success the caller cannot
// trust.
type Provider interface {
	// CreateRoom provisions a runtime for id and registers it in the
	// store. The controller guarantees id uniqueness via its retry
	// loop; the store's create remains the authoritative check and
	// yields domain.ErrAlreadyExists on a race.
	CreateRoom(ctx context.Context, id domain.RoomID, opts Options) (*domain.Room, error)

	// DeleteRoom tears the runtime down and removes the record. A
	// missing or already-gone room is not an error; a failed teardown
	// call is, and propagates.
	DeleteRoom(ctx context.Context, id domain.RoomID) error

	// GetRoomStatus inspects live runtime state, persists the
	// refreshed record, and returns it. Nil when the room is unknown.
	GetRoomStatus(ctx context.Context, id domain.RoomID) (*domain.Room, error)

	// ListRooms returns every room the store considers active.
	ListRooms(ctx context.Context) ([]domain.Room, error)

	// Cleanup is the backend-specific teardown sweep, invoked on a
	// schedule by the controller. Staleness detection lives in the
	// reconciler; acting on it is decoupled so one failing half never
	// blocks the other.
	Cleanup(ctx context.Context) error

	// GetRoomInfo is a thin pass-through to the store, used by the
	// controller to test id availability.
	GetRoomInfo(ctx context.Context, id domain.RoomID) (*domain.Room, error)
}
