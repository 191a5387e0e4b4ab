package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"localhost:3000", "http://localhost:3000"},
		{"http://localhost:3000", "http://localhost:3000"},
		{"https://rooms.example.com", "https://rooms.example.com"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeHost(c.in))
	}
}

func TestNewRoomDefaults(t *testing.T) {
	room, err := NewRoom("123456", "", "localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "123456", room.Name, "name defaults to the id")
	assert.Equal(t, "http://localhost:3000", room.Host)
	assert.Equal(t, StatusProvisioning, room.Status)
	assert.Zero(t, room.StudentCount)
	assert.False(t, room.MustBeCleaned)
}

func TestNewRoomValidation(t *testing.T) {
	_, err := NewRoom("", "x", "localhost")
	assert.ErrorIs(t, err, ErrRoomIDEmpty)

	_, err = NewRoom("123456", "x", "")
	assert.ErrorIs(t, err, ErrHostEmpty)
}
