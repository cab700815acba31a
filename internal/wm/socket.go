package wm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	requestSocketName = ".socket.sock"
	eventSocketName   = ".socket2.sock"
)

// ErrNotHyprland is returned when no Hyprland instance signature is set.
var ErrNotHyprland = errors.New("HYPRLAND_INSTANCE_SIGNATURE not set: not running under Hyprland")

// SocketDir locates the IPC directory of the running Hyprland instance.
// Hyprland >= 0.40 uses $XDG_RUNTIME_DIR/hypr/<sig>, older releases /tmp/hypr/<sig>.
func SocketDir() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", ErrNotHyprland
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = fmt.Sprintf("/run/user/%d", os.Getuid())
	}

	candidates := []string{
		filepath.Join(runtimeDir, "hypr", sig),
		filepath.Join(os.TempDir(), "hypr", sig),
	}
	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, eventSocketName)); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no Hyprland sockets found for instance %s (checked %v)", sig, candidates)
}

// RequestSocket returns the path of the request socket in dir
func RequestSocket(dir string) string {
	return filepath.Join(dir, requestSocketName)
}

// EventSocket returns the path of the event socket in dir
func EventSocket(dir string) string {
	return filepath.Join(dir, eventSocketName)
}
