// Package controller is the orchestration entry point: it allocates
// room codes, delegates to the configured provider and runs the
// periodic cleanup scheduler.
package controller

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/provider"
)

// ErrIDSpaceExhausted is returned when no free room code was found
// within the retry budget. Either the id space is nearly full or the
// backend keeps losing races; looping forever helps neither.
var ErrIDSpaceExhausted = errors.New("room id space exhausted")

const digits = "0123456789"

type Config struct {
	IDLength        int
	CreateRetries   int
	CleanupInterval time.Duration
}

type Controller struct {
	provider provider.Provider
	cfg      Config
}

func New(p provider.Provider, cfg Config) *Controller {
	return &Controller{provider: p, cfg: cfg}
}

// GenerateRoomID produces a fixed-length numeric code. Uniqueness is
// not guaranteed by construction; the store's create enforces it.
func (c *Controller) GenerateRoomID() domain.RoomID {
	var b strings.Builder
	for i := 0; i < c.cfg.IDLength; i++ {
		b.WriteByte(digits[rand.IntN(len(digits))])
	}
	return domain.RoomID(b.String())
}

// CreateRoom allocates a free code optimistically: probe, then create.
// Two callers can both observe a free id, so a create that loses the
// race comes back as ErrAlreadyExists and we simply draw again, up to
// the retry budget.
func (c *Controller) CreateRoom(ctx context.Context, opts provider.Options) (*domain.Room, error) {
	for attempt := 0; attempt < c.cfg.CreateRetries; attempt++ {
		id := c.GenerateRoomID()
		existing, err := c.provider.GetRoomInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		room, err := c.provider.CreateRoom(ctx, id, opts)
		if errors.Is(err, domain.ErrAlreadyExists) {
			log.Warn().Str("module", "controller").Str("room", string(id)).Msg("lost id race, regenerating")
			continue
		}
		return room, err
	}
	return nil, ErrIDSpaceExhausted
}

func (c *Controller) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	return c.provider.DeleteRoom(ctx, id)
}

func (c *Controller) GetRoomStatus(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return c.provider.GetRoomStatus(ctx, id)
}

func (c *Controller) GetRoomInfo(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return c.provider.GetRoomInfo(ctx, id)
}

func (c *Controller) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return c.provider.ListRooms(ctx)
}

// RunCleanup ticks until ctx is canceled. Each tick is fire-and-forget:
// a failing cycle is logged and the next one proceeds independently.
func (c *Controller) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanupTick(ctx)
		}
	}
}

// cleanupTick runs the backend sweep, then acts on rooms the
// reconciler marked. Detection and action stay decoupled: one room
// failing to delete never blocks the others.
func (c *Controller) cleanupTick(ctx context.Context) {
	if err := c.provider.Cleanup(ctx); err != nil {
		log.Error().Str("module", "controller").Err(err).Msg("provider cleanup failed")
	}

	rooms, err := c.provider.ListRooms(ctx)
	if err != nil {
		log.Error().Str("module", "controller").Err(err).Msg("cleanup sweep: list failed")
		return
	}
	for _, room := range rooms {
		if !room.MustBeCleaned {
			continue
		}
		if err := c.provider.DeleteRoom(ctx, room.ID); err != nil {
			log.Error().Str("module", "controller").Str("room", string(room.ID)).Err(err).Msg("cleanup sweep: delete failed")
			continue
		}
		log.Info().Str("module", "controller").Str("room", string(room.ID)).Msg("stale room cleaned")
	}
}
