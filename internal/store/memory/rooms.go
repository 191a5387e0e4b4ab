// Package memory is a threadsafe in-memory RoomStore used by tests
// and local development (ROOM_STORE=memory).
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/store"
)

type roomStore struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]domain.Room
}

func NewRoomStore() store.RoomStore {
	return &roomStore{rooms: make(map[domain.RoomID]domain.Room)}
}

func (s *roomStore) Create(ctx context.Context, room *domain.Room) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return "", domain.ErrAlreadyExists
	}
	s.rooms[room.ID] = *room
	return uuid.NewString(), nil
}

func (s *roomStore) Get(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *roomStore) GetAll(ctx context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (s *roomStore) Update(ctx context.Context, room *domain.Room) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return false, nil
	}
	s.rooms[room.ID] = *room
	return true, nil
}

func (s *roomStore) Delete(ctx context.Context, id domain.RoomID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return false, nil
	}
	delete(s.rooms, id)
	return true, nil
}
