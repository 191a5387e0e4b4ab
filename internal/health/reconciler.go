// Package health polls every known room's health endpoint and writes
// the derived staleness back to the store. This loop is the sole
// source of truth for the MustBeCleaned flag.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/store"
)

const healthPath = "/health"

// status is what a room runtime reports; extra fields are ignored.
type status struct {
	Connections int     `json:"connections"`
	Uptime      float64 `json:"uptime"`
}

type Config struct {
	Interval    time.Duration
	GracePeriod time.Duration
	Timeout     time.Duration
	Parallelism int
}

type Reconciler struct {
	rooms  store.RoomStore
	client *http.Client
	cfg    Config
}

func NewReconciler(rooms store.RoomStore, cfg Config) *Reconciler {
	return &Reconciler{
		rooms:  rooms,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// Run ticks until ctx is canceled. A failed pass is logged and the
// next one proceeds independently.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.ReconcileOnce(ctx); err != nil {
				log.Error().Str("module", "health").Err(err).Msg("reconcile pass failed")
			}
		}
	}
}

// ReconcileOnce checks every room in a snapshot taken at the start of
// the pass. Checks run concurrently with bounded parallelism, and one
// unreachable room never aborts the rest: the pass always covers the
// full set.
func (r *Reconciler) ReconcileOnce(ctx context.Context) error {
	rooms, err := r.rooms.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("snapshot rooms: %w", err)
	}

	p := pool.New().WithMaxGoroutines(r.cfg.Parallelism)
	for _, room := range rooms {
		room := room
		p.Go(func() {
			r.checkRoom(ctx, &room)
		})
	}
	p.Wait()
	return nil
}

func (r *Reconciler) checkRoom(ctx context.Context, room *domain.Room) {
	st, err := r.fetchStatus(ctx, room)
	if err != nil {
		log.Warn().Str("module", "health").Str("room", string(room.ID)).Err(err).Msg("health check failed")
		room.MustBeCleaned = true
		room.Status = domain.StatusMarkedForCleanup
		r.persist(ctx, room)
		return
	}

	room.StudentCount = st.Connections
	room.MustBeCleaned = st.Connections == 0 && st.Uptime > r.cfg.GracePeriod.Seconds()
	if room.MustBeCleaned {
		room.Status = domain.StatusMarkedForCleanup
	} else {
		room.Status = domain.StatusActive
	}
	r.persist(ctx, room)
}

func (r *Reconciler) fetchStatus(ctx context.Context, room *domain.Room) (*status, error) {
	url := strings.TrimRight(domain.NormalizeHost(room.Host), "/") + healthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("health endpoint returned %d", resp.StatusCode)
	}
	var st status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode health body: %w", err)
	}
	return &st, nil
}

func (r *Reconciler) persist(ctx context.Context, room *domain.Room) {
	// The room may have been deleted mid-pass; a missed update is
	// eventual consistency, not a failure.
	if _, err := r.rooms.Update(ctx, room); err != nil {
		log.Error().Str("module", "health").Str("room", string(room.ID)).Err(err).Msg("persist failed")
	}
}
