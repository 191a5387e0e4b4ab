package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/rooms/internal/domain"
)

func TestCreateRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewRoomStore()

	room := &domain.Room{ID: "123456", Name: "first", Host: "http://localhost:3000"}
	_, err := s.Create(ctx, room)
	require.NoError(t, err)

	dup := &domain.Room{ID: "123456", Name: "second", Host: "http://localhost:3001"}
	_, err = s.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := s.Get(ctx, "123456")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name, "duplicate create must not overwrite the record")
}

func TestGetAbsentReturnsNil(t *testing.T) {
	s := NewRoomStore()
	got, err := s.Get(context.Background(), "000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewRoomStore()
	room := &domain.Room{ID: "424242", Host: "http://localhost:3000", StudentCount: 1}
	_, err := s.Create(ctx, room)
	require.NoError(t, err)

	t.Run("absent room reports false", func(t *testing.T) {
		ok, err := s.Update(ctx, &domain.Room{ID: "999999"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("changed write reports true", func(t *testing.T) {
		room.StudentCount = 5
		ok, err := s.Update(ctx, room)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unchanged write still reports true", func(t *testing.T) {
		ok, err := s.Update(ctx, room)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestDeleteAbsentReturnsFalse(t *testing.T) {
	ctx := context.Background()
	s := NewRoomStore()

	ok, err := s.Delete(ctx, "123456")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Create(ctx, &domain.Room{ID: "123456", Host: "http://localhost:3000"})
	require.NoError(t, err)

	ok, err = s.Delete(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, "123456")
	require.NoError(t, err)
	assert.False(t, ok, "second delete of the same room is a miss, not an error")
}

func TestGetAllReturnsEveryRecord(t *testing.T) {
	ctx := context.Background()
	s := NewRoomStore()
	for _, id := range []domain.RoomID{"111111", "222222", "333333"} {
		_, err := s.Create(ctx, &domain.Room{ID: id, Host: "http://localhost:3000"})
		require.NoError(t, err)
	}
	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
