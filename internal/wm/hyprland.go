package wm

import (
	"context"
	"fmt"

	"github.com/thiagokokada/hyprland-go"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
)

// Hyprland lists windows through the compositor's request socket.
type Hyprland struct {
	log    *logger.Logger
	client *hyprland.RequestClient
	dir    string
}

// NewHyprland connects to the Hyprland instance named by the environment.
func NewHyprland(log *logger.Logger) (*Hyprland, error) {
	dir, err := SocketDir()
	if err != nil {
		return nil, err
	}
	log.Debug("Found Hyprland sockets", "dir", dir)

	return &Hyprland{
		log:    log,
		client: hyprland.NewClient(RequestSocket(dir)),
		dir:    dir,
	}, nil
}

func (h *Hyprland) Name() string {
	return "Hyprland"
}

// SocketDir returns the IPC directory this client talks to
func (h *Hyprland) SocketDir() string {
	return h.dir
}

// Clients returns every open window.
func (h *Hyprland) Clients(ctx context.Context) ([]Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	windows, err := h.client.Clients()
	if err != nil {
		return nil, fmt.Errorf("failed to list Hyprland clients: %w", err)
	}
	h.log.Debug("Listed Hyprland clients", "count", len(windows))
	return windows, nil
}
