// Package kubernetes will schedule rooms as pods. Placeholder; the
// read paths already delegate to the store so a partially migrated
// deployment can still list rooms.
package kubernetes

import (
	"context"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/provider"
	"github.com/quizhive/rooms/internal/store"
)

type k8sProvider struct {
	rooms store.RoomStore
}

func New(rooms store.RoomStore) provider.Provider {
	return &k8sProvider{rooms: rooms}
}

func (p *k8sProvider) CreateRoom(ctx context.Context, id domain.RoomID, opts provider.Options) (*domain.Room, error) {
	return nil, domain.ErrNotImplemented
}

func (p *k8sProvider) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	return domain.ErrNotImplemented
}

func (p *k8sProvider) GetRoomStatus(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return nil, domain.ErrNotImplemented
}

func (p *k8sProvider) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return p.rooms.GetAll(ctx)
}

func (p *k8sProvider) Cleanup(ctx context.Context) error {
	return domain.ErrNotImplemented
}

func (p *k8sProvider) GetRoomInfo(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return p.rooms.Get(ctx, id)
}
