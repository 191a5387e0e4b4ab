package health

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/store"
	"github.com/quizhive/rooms/internal/store/memory"
)

func testConfig() Config {
	return Config{
		Interval:    time.Second,
		GracePeriod: 60 * time.Second,
		Timeout:     2 * time.Second,
		Parallelism: 4,
	}
}

func healthServer(t *testing.T, connections int, uptime float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		fmt.Fprintf(w, `{"connections": %d, "uptime": %g}`, connections, uptime)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func addRoom(t *testing.T, s store.RoomStore, id domain.RoomID, host string) {
	t.Helper()
	_, err := s.Create(context.Background(), &domain.Room{
		ID:     id,
		Name:   string(id),
		Host:   host,
		Status: domain.StatusActive,
	})
	require.NoError(t, err)
}

func TestStalenessRule(t *testing.T) {
	cases := []struct {
		name        string
		connections int
		uptime      float64
		wantCleaned bool
	}{
		{"empty past grace", 0, 61, true},
		{"empty within grace", 0, 59, false},
		{"occupied long-lived", 3, 1000, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := memory.NewRoomStore()
			srv := healthServer(t, c.connections, c.uptime)
			addRoom(t, s, "123456", srv.URL)

			rec := NewReconciler(s, testConfig())
			require.NoError(t, rec.ReconcileOnce(context.Background()))

			got, err := s.Get(context.Background(), "123456")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, c.wantCleaned, got.MustBeCleaned)
			assert.Equal(t, c.connections, got.StudentCount)
		})
	}
}

func TestUnreachableRoomIsMarked(t *testing.T) {
	s := memory.NewRoomStore()
	// Nothing listens here; the check fails fast with a refusal.
	addRoom(t, s, "111111", "http://127.0.0.1:1")

	rec := NewReconciler(s, testConfig())
	require.NoError(t, rec.ReconcileOnce(context.Background()))

	got, err := s.Get(context.Background(), "111111")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.MustBeCleaned)
	assert.Equal(t, domain.StatusMarkedForCleanup, got.Status)
}

func TestErrorStatusIsMarked(t *testing.T) {
	s := memory.NewRoomStore()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	addRoom(t, s, "222222", srv.URL)

	rec := NewReconciler(s, testConfig())
	require.NoError(t, rec.ReconcileOnce(context.Background()))

	got, err := s.Get(context.Background(), "222222")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.MustBeCleaned)
}

// One room being down must not stop the rest of the pass.
func TestReconcileIsolation(t *testing.T) {
	s := memory.NewRoomStore()
	addRoom(t, s, "111111", "http://127.0.0.1:1")
	srv := healthServer(t, 4, 500)
	addRoom(t, s, "222222", srv.URL)

	rec := NewReconciler(s, testConfig())
	require.NoError(t, rec.ReconcileOnce(context.Background()))

	down, err := s.Get(context.Background(), "111111")
	require.NoError(t, err)
	require.NotNil(t, down)
	assert.True(t, down.MustBeCleaned)

	up, err := s.Get(context.Background(), "222222")
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.False(t, up.MustBeCleaned)
	assert.Equal(t, 4, up.StudentCount)
	assert.Equal(t, domain.StatusActive, up.Status)
}

// MustBeCleaned is derived state: a pass over a healthy room clears a
// stale mark from an earlier pass.
func TestRecoveredRoomIsUnmarked(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRoomStore()
	srv := healthServer(t, 2, 300)
	_, err := s.Create(ctx, &domain.Room{
		ID:            "333333",
		Host:          srv.URL,
		Status:        domain.StatusMarkedForCleanup,
		MustBeCleaned: true,
	})
	require.NoError(t, err)

	rec := NewReconciler(s, testConfig())
	require.NoError(t, rec.ReconcileOnce(ctx))

	got, err := s.Get(ctx, "333333")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.MustBeCleaned)
	assert.Equal(t, 2, got.StudentCount)
	assert.Equal(t, domain.StatusActive, got.Status)
}
