package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	router "github.com/quizhive/rooms/internal/adapters/http"
	"github.com/quizhive/rooms/internal/config"
	"github.com/quizhive/rooms/internal/controller"
	"github.com/quizhive/rooms/internal/health"
	"github.com/quizhive/rooms/internal/provider"
	"github.com/quizhive/rooms/internal/provider/cluster"
	"github.com/quizhive/rooms/internal/provider/docker"
	"github.com/quizhive/rooms/internal/provider/kubernetes"
	"github.com/quizhive/rooms/internal/store"
	"github.com/quizhive/rooms/internal/store/memory"
	mongostore "github.com/quizhive/rooms/internal/store/mongo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	rooms, disconnect, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to init store")
	}
	defer disconnect()

	prov, err := newProvider(rooms, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Provider).Msg("failed to init provider")
	}

	ctrl := controller.New(prov, controller.Config{
		IDLength:        cfg.RoomIDLength,
		CreateRetries:   cfg.CreateMaxRetries,
		CleanupInterval: cfg.CleanupInterval,
	})
	rec := health.NewReconciler(rooms, health.Config{
		Interval:    cfg.ReconcileInterval,
		GracePeriod: cfg.GracePeriod,
		Timeout:     cfg.HealthTimeout,
		Parallelism: cfg.HealthParallelism,
	})

	go ctrl.RunCleanup(ctx)
	go rec.Run(ctx)

	r := router.SetupRouter(cfg.Mode, ctrl, rooms)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Str("provider", cfg.Provider).Msg("room service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

func newStore(ctx context.Context, cfg *config.Config) (store.RoomStore, func(), error) {
	switch cfg.Store {
	case "memory":
		return memory.NewRoomStore(), func() {}, nil
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		rooms, err := mongostore.NewRoomStore(connectCtx, client.Database(cfg.MongoDatabase))
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}
		return rooms, disconnect, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

func newProvider(rooms store.RoomStore, cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case "docker":
		return docker.New(rooms, docker.Config{
			Image:    cfg.RoomImage,
			Port:     cfg.RoomPort,
			Hostname: cfg.RoomHostname,
		})
	case "cluster":
		return cluster.New(rooms), nil
	case "kubernetes":
		return kubernetes.New(rooms), nil
	default:
		return nil, fmt.Errorf("unknown room provider %q", cfg.Provider)
	}
}
