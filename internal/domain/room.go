// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"strings"
)

type RoomID string

// RoomStatus distinguishes a record whose runtime is still coming up
// from one that answered a health check. A crashed creation leaves a
// room stuck in StatusProvisioning, which is diagnosable; a phantom
// "active" record with no reachable host is not.
type RoomStatus string

const (
	StatusProvisioning     RoomStatus = "provisioning"
	StatusActive           RoomStatus = "active"
	StatusMarkedForCleanup RoomStatus = "marked_for_cleanup"
	StatusDeleting         RoomStatus = "deleting"
)

var (
	ErrRoomIDEmpty = errors.New("room id empty")
	ErrHostEmpty   = errors.New("room host empty")

	// ErrAlreadyExists signals an id collision on create. Callers
	// recover by regenerating the id.
	ErrAlreadyExists = errors.New("room already exists")

	// ErrInconsistentState signals that the runtime and the store
	// disagree: one half of a create/delete succeeded and the other
	// failed. Operators reconcile manually; never swallowed.
	ErrInconsistentState = errors.New("room state inconsistent between runtime and store")

	// ErrBackendUnavailable signals the orchestration backend could
	// not be reached. Recoverable on the next scheduled pass.
	ErrBackendUnavailable = errors.New("room backend unavailable")

	ErrNotImplemented = errors.New("provider not implemented")
)

// Room is one live (or recently live) quiz session compute unit.
type Room struct {
	ID            RoomID     `json:"id" bson:"roomId"`
	Name          string     `json:"name" bson:"name"`
	Host          string     `json:"host" bson:"host"`
	Status        RoomStatus `json:"status" bson:"status"`
	StudentCount  int        `json:"studentCount" bson:"studentCount"`
	MustBeCleaned bool       `json:"mustBeCleaned" bson:"mustBeCleaned"`
}

// NewRoom is a tiny helper to avoid ad-hoc struct literals in providers.
// Name defaults to the id; host gets a scheme if it lacks one.
func NewRoom(id RoomID, name, host string) (*Room, error) {
	if id == "" {
		return nil, ErrRoomIDEmpty
	}
	if host == "" {
		return nil, ErrHostEmpty
	}
	if name == "" {
		name = string(id)
	}
	return &Room{
		ID:     id,
		Name:   name,
		Host:   NormalizeHost(host),
		Status: StatusProvisioning,
	}, nil
}

// NormalizeHost prepends http:// when the endpoint carries no scheme.
func NormalizeHost(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}
