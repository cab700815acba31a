package wm

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
)

const clientsJSON = `[
	{"address":"0xabc","mapped":true,"hidden":false,"class":"code","title":"Editor"},
	{"address":"0xdef","mapped":false,"hidden":true,"class":"steam","title":"Steam"}
]`

// serveRequests answers every request on the request socket in dir with reply
// and records the commands it received.
func serveRequests(t *testing.T, dir, reply string) <-chan string {
	t.Helper()
	ln, err := net.Listen("unix", RequestSocket(dir))
	if err != nil {
		t.Fatalf("failed to listen on request socket: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	commands := make(chan string, 16)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 4096)
			n, _ := conn.Read(buf)
			commands <- string(buf[:n])
			conn.Write([]byte(reply))
			conn.Close()
		}
	}()
	return commands
}

// fakeInstance lays out a Hyprland socket directory under XDG_RUNTIME_DIR.
func fakeInstance(t *testing.T) string {
	t.Helper()
	runtimeDir := t.TempDir()
	dir := filepath.Join(runtimeDir, "hypr", "sig")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(EventSocket(dir), nil, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "sig")
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	return dir
}

func TestHyprlandClients(t *testing.T) {
	dir := fakeInstance(t)
	commands := serveRequests(t, dir, clientsJSON)

	hypr, err := NewHyprland(logger.Nop())
	if err != nil {
		t.Fatalf("NewHyprland() error: %v", err)
	}
	if hypr.SocketDir() != dir {
		t.Errorf("SocketDir() = %q, want %q", hypr.SocketDir(), dir)
	}

	windows, err := hypr.Clients(context.Background())
	if err != nil {
		t.Fatalf("Clients() error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if cmd := <-commands; !strings.Contains(cmd, "clients") {
		t.Errorf("request = %q, want a clients request", cmd)
	}

	w, ok := FindByAddress(windows, NormalizeAddress("abc"))
	if !ok {
		t.Fatal("window 0xabc not found")
	}
	if w.Title != "Editor" || w.Class != "code" {
		t.Errorf("window = %q (%s), want Editor (code)", w.Title, w.Class)
	}

	if _, ok := FindByAddress(windows, NormalizeAddress("def")); ok {
		t.Error("unmapped window should not be found")
	}
}

func TestHyprlandClientsCancelled(t *testing.T) {
	dir := fakeInstance(t)
	commands := serveRequests(t, dir, clientsJSON)

	hypr, err := NewHyprland(logger.Nop())
	if err != nil {
		t.Fatalf("NewHyprland() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := hypr.Clients(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Clients() error = %v, want context.Canceled", err)
	}
	if len(commands) != 0 {
		t.Error("cancelled Clients() should not contact Hyprland")
	}
}

func TestNewHyprlandOutsideHyprland(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, err := NewHyprland(logger.Nop()); !errors.Is(err, ErrNotHyprland) {
		t.Errorf("NewHyprland() error = %v, want ErrNotHyprland", err)
	}
}
