// Package cluster will run rooms as plain processes across a pool of
// worker hosts. Placeholder until the pool protocol settles.
package cluster

import (
	"context"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/provider"
	"github.com/quizhive/rooms/internal/store"
)

type clusterProvider struct {
	rooms store.RoomStore
}

func New(rooms store.RoomStore) provider.Provider {
	return &clusterProvider{rooms: rooms}
}

func (p *clusterProvider) CreateRoom(ctx context.Context, id domain.RoomID, opts provider.Options) (*domain.Room, error) {
	return nil, domain.ErrNotImplemented
}

func (p *clusterProvider) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	return domain.ErrNotImplemented
}

func (p *clusterProvider) GetRoomStatus(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return nil, domain.ErrNotImplemented
}

func (p *clusterProvider) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return p.rooms.GetAll(ctx)
}

func (p *clusterProvider) Cleanup(ctx context.Context) error {
	return domain.ErrNotImplemented
}

func (p *clusterProvider) GetRoomInfo(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return p.rooms.Get(ctx, id)
}
