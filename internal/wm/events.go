package wm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
)

// EventActiveWindowV2 carries the address (without 0x) of the newly focused window.
const EventActiveWindowV2 = "activewindowv2"

const maxEventLine = 1 << 20

// ErrEventStreamClosed is returned by Listen when Hyprland closes the socket.
var ErrEventStreamClosed = errors.New("hyprland event stream closed")

// Event is one `NAME>>DATA` line from the event socket.
type Event struct {
	Name string
	Data string
}

// ParseEvent splits a raw event line. ok is false for malformed lines.
func ParseEvent(line string) (Event, bool) {
	name, data, found := strings.Cut(strings.TrimRight(line, "\r\n"), ">>")
	if !found || name == "" {
		return Event{}, false
	}
	return Event{Name: name, Data: data}, true
}

// EventListener reads events from Hyprland's event socket.
type EventListener struct {
	path string
	log  *logger.Logger
}

func NewEventListener(path string, log *logger.Logger) *EventListener {
	return &EventListener{path: path, log: log}
}

// Listen connects to the socket and calls handle for every event, in order,
// until ctx is cancelled or the connection drops.
func (l *EventListener) Listen(ctx context.Context, handle func(Event)) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", l.path)
	if err != nil {
		return fmt.Errorf("failed to connect to Hyprland event socket: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	l.log.Info("Listening for Hyprland events", "socket", l.path)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	for scanner.Scan() {
		ev, ok := ParseEvent(scanner.Text())
		if !ok {
			l.log.Debug("Skipping malformed event", "line", scanner.Text())
			continue
		}
		handle(ev)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from event socket: %w", err)
	}
	return ErrEventStreamClosed
}
