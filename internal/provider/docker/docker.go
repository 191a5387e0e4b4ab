// Package docker provisions one container per room through the Docker
// Engine API.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/go-connections/nat"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/rs/zerolog/log"

	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/provider"
	"github.com/quizhive/rooms/internal/store"
)

const roomLabel = "quizhive.room"

// Engine is the slice of the Docker client this provider uses.
// *client.Client satisfies it; tests substitute a fake.
type Engine interface {
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
}

// Config is the docker-specific slice of the service configuration.
type Config struct {
	Image    string
	Port     int
	Hostname string
}

type dockerProvider struct {
	engine Engine
	rooms  store.RoomStore
	cfg    Config
}

// New connects to the local Docker daemon from the environment.
func New(rooms store.RoomStore, cfg Config) (provider.Provider, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &dockerProvider{engine: cli, rooms: rooms, cfg: cfg}, nil
}

// NewWithEngine wires an explicit engine, used by tests.
func NewWithEngine(eng Engine, rooms store.RoomStore, cfg Config) provider.Provider {
	return &dockerProvider{engine: eng, rooms: rooms, cfg: cfg}
}

func containerName(id domain.RoomID) string {
	return "quizroom-" + string(id)
}

// CreateRoom reserves the record first so the store's unique index is
// the authoritative collision check, then starts the container and
// promotes the record to active with the published endpoint.
func (p *dockerProvider) CreateRoom(ctx context.Context, id domain.RoomID, opts provider.Options) (*domain.Room, error) {
	room, err := domain.NewRoom(id, opts.Title, p.cfg.Hostname)
	if err != nil {
		return nil, err
	}
	if _, err := p.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	host, runErr := p.startContainer(ctx, id)
	if runErr != nil {
		// Roll the reservation back so the id can be reused. If even
		// that fails the record is a phantom and operators must know.
		if _, delErr := p.rooms.Delete(ctx, id); delErr != nil {
			return nil, fmt.Errorf("%w: container start failed (%v) and record removal failed (%v)",
				domain.ErrInconsistentState, runErr, delErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, runErr)
	}

	room.Host = domain.NormalizeHost(host)
	room.Status = domain.StatusActive
	ok, err := p.rooms.Update(ctx, room)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: container %s running but record not updated",
			domain.ErrInconsistentState, containerName(id))
	}
	log.Info().Str("module", "provider.docker").Str("room", string(id)).Str("host", room.Host).Msg("room provisioned")
	return room, nil
}

func (p *dockerProvider) startContainer(ctx context.Context, id domain.RoomID) (string, error) {
	exposed := nat.Port(fmt.Sprintf("%d/tcp", p.cfg.Port))
	created, err := p.engine.ContainerCreate(ctx,
		&container.Config{
			Image:        p.cfg.Image,
			Env:          []string{"ROOM_ID=" + string(id)},
			ExposedPorts: nat.PortSet{exposed: struct{}{}},
			Labels:       map[string]string{roomLabel: string(id)},
		},
		&container.HostConfig{
			PortBindings: nat.PortMap{exposed: []nat.PortBinding{{HostIP: "0.0.0.0"}}},
		},
		nil, nil, containerName(id))
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}
	if err := p.engine.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}
	insp, err := p.engine.ContainerInspect(ctx, created.ID)
	if err != nil {
		return "", fmt.Errorf("inspect container: %w", err)
	}
	bindings := insp.NetworkSettings.Ports[exposed]
	if len(bindings) == 0 {
		return "", fmt.Errorf("container %s exposes no binding for %s", created.ID, exposed)
	}
	return fmt.Sprintf("%s:%s", p.cfg.Hostname, bindings[0].HostPort), nil
}

// DeleteRoom stops and removes the container, then drops the record.
// A room that is already gone on either side is not an error; a failed
// teardown call propagates and leaves the record for a later retry.
func (p *dockerProvider) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	room, err := p.rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	if room != nil && room.Status != domain.StatusDeleting {
		room.Status = domain.StatusDeleting
		if _, err := p.rooms.Update(ctx, room); err != nil {
			return err
		}
	}

	name := containerName(id)
	if err := p.engine.ContainerStop(ctx, name, container.StopOptions{}); err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("stop container %s: %w", name, err)
	}
	if err := p.engine.ContainerRemove(ctx, name, container.RemoveOptions{Force: true}); err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("remove container %s: %w", name, err)
	}

	if _, err := p.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: container %s removed but record not deleted", domain.ErrInconsistentState, name)
	}
	log.Info().Str("module", "provider.docker").Str("room", string(id)).Msg("room deleted")
	return nil
}

// GetRoomStatus inspects the container and persists what it finds. A
// terminated or missing container marks the record for cleanup.
func (p *dockerProvider) GetRoomStatus(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	room, err := p.rooms.Get(ctx, id)
	if err != nil || room == nil {
		return nil, err
	}

	insp, err := p.engine.ContainerInspect(ctx, containerName(id))
	switch {
	case errdefs.IsNotFound(err):
		room.MustBeCleaned = true
		room.Status = domain.StatusMarkedForCleanup
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	case insp.State != nil && insp.State.Running:
		// The reconciler owns the staleness flag; a running container
		// does not clear it here.
		if !room.MustBeCleaned {
			room.Status = domain.StatusActive
		}
	default:
		room.MustBeCleaned = true
		room.Status = domain.StatusMarkedForCleanup
	}

	if _, err := p.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (p *dockerProvider) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return p.rooms.GetAll(ctx)
}

// Cleanup is a hook for backend-wide sweeps. Staleness detection lives
// in the reconciler and the deletion sweep in the controller, so the
// docker backend has nothing extra to do here.
func (p *dockerProvider) Cleanup(ctx context.Context) error {
	log.Debug().Str("module", "provider.docker").Msg("cleanup tick")
	return nil
}

func (p *dockerProvider) GetRoomInfo(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	return p.rooms.Get(ctx, id)
}
