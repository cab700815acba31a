package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
)

const (
	restartBackoff = 2 * time.Second
	shutdownWait   = 10 * time.Second
)

// EventSource delivers compositor events until ctx ends or the stream breaks.
type EventSource interface {
	Listen(ctx context.Context, handle func(wm.Event)) error
}

type loaded struct {
	name   string
	plugin Plugin
}

// Host owns the loaded plugins and routes events to them.
type Host struct {
	log      *logger.Logger
	registry *Registry
	deps     Deps

	mu         sync.RWMutex
	plugins    []loaded
	handlers   map[string][]loaded
	configPath string

	inflight sync.WaitGroup
}

func New(log *logger.Logger, registry *Registry, deps Deps) *Host {
	return &Host{
		log:      log,
		registry: registry,
		deps:     deps,
		handlers: make(map[string][]loaded),
	}
}

// Load instantiates every plugin listed in cfg. Unknown or failing plugins
// are logged and skipped; an error is returned only if none could be loaded.
func (h *Host) Load(ctx context.Context, cfg *config.Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.configPath = cfg.Path()

	for _, name := range cfg.Plugins {
		if h.findLocked(name) != nil {
			h.log.Warn("Plugin listed twice, ignoring duplicate", "plugin", name)
			continue
		}

		log := h.log.With("plugin", name)
		p, err := h.registry.New(name, log, h.deps)
		if err != nil {
			h.log.Error("Failed to create plugin", err, "plugin", name)
			continue
		}

		if lc, ok := p.(Lifecycle); ok {
			if err := lc.Init(ctx); err != nil {
				h.log.Error("Plugin init failed", err, "plugin", name)
				continue
			}
		}

		if err := p.Reload(ctx, cfg.Section(name)); err != nil {
			h.log.Error("Plugin rejected its configuration", err, "plugin", name)
		}

		entry := loaded{name: name, plugin: p}
		h.plugins = append(h.plugins, entry)
		if eh, ok := p.(EventHandler); ok {
			for _, ev := range eh.Events() {
				h.handlers[ev] = append(h.handlers[ev], entry)
			}
		}
		h.log.Info("Loaded plugin", "plugin", name)
	}

	if len(h.plugins) == 0 {
		return fmt.Errorf("no plugins loaded\n\nList plugins in the config file, e.g.:\n  plugins: [sleepy]\n\nAvailable: %v", h.registry.Names())
	}
	return nil
}

func (h *Host) findLocked(name string) Plugin {
	for _, l := range h.plugins {
		if l.name == name {
			return l.plugin
		}
	}
	return nil
}

// Plugin returns the loaded plugin called name, or nil.
func (h *Host) Plugin(name string) Plugin {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.findLocked(name)
}

// Dispatch hands ev to every subscribed plugin, each call in its own
// goroutine. A panicking handler is logged and does not affect the others.
func (h *Host) Dispatch(ctx context.Context, ev wm.Event) {
	h.mu.RLock()
	targets := h.handlers[ev.Name]
	h.mu.RUnlock()

	for _, t := range targets {
		handler := t.plugin.(EventHandler)
		name := t.name

		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					h.log.Error("Plugin panicked while handling event", fmt.Errorf("%v", r),
						"plugin", name,
						"event", ev.Name)
				}
			}()
			handler.HandleEvent(ctx, ev)
		}()
	}
}

// Wait blocks until in-flight handlers return or ctx ends.
func (h *Host) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload applies cfg to every loaded plugin. Plugins added to or removed from
// the plugins list take effect on restart.
func (h *Host) Reload(ctx context.Context, cfg *config.Config) {
	h.mu.RLock()
	plugins := append([]loaded(nil), h.plugins...)
	h.mu.RUnlock()

	for _, l := range plugins {
		if err := l.plugin.Reload(ctx, cfg.Section(l.name)); err != nil {
			h.log.Error("Plugin rejected its configuration", err, "plugin", l.name)
		}
	}
	h.log.Info("Configuration reloaded", "plugins", len(plugins))
}

// ReloadFromDisk re-reads the config file. On failure the previous
// configuration stays in effect.
func (h *Host) ReloadFromDisk(ctx context.Context) error {
	h.mu.RLock()
	path := h.configPath
	h.mu.RUnlock()

	if path == "" {
		return errors.New("configuration was not loaded from a file")
	}

	cfg, err := config.Load(path)
	if err != nil {
		h.log.Error("Failed to reload configuration, keeping previous", err, "path", path)
		return err
	}
	h.Reload(ctx, cfg)
	return nil
}

// Exit calls Exit on plugins that implement Lifecycle, in reverse load order.
func (h *Host) Exit(ctx context.Context) {
	h.mu.RLock()
	plugins := append([]loaded(nil), h.plugins...)
	h.mu.RUnlock()

	for i := len(plugins) - 1; i >= 0; i-- {
		lc, ok := plugins[i].plugin.(Lifecycle)
		if !ok {
			continue
		}
		if err := lc.Exit(ctx); err != nil {
			h.log.Error("Plugin exit failed", err, "plugin", plugins[i].name)
		}
	}
}

// Run feeds events from source to the plugins until ctx is cancelled. The
// listener is restarted by a supervisor when the socket drops, and the config
// file is reloaded on SIGHUP or when it changes on disk.
func (h *Host) Run(ctx context.Context, source EventSource) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sup := suture.New("sleepy-hyprland", suture.Spec{
		EventHook: func(e suture.Event) {
			h.log.Warn("Supervisor event", "event", e.String())
		},
		FailureBackoff: restartBackoff,
	})
	sup.Add(&listenService{host: h, source: source})

	h.mu.RLock()
	path := h.configPath
	h.mu.RUnlock()
	if path != "" {
		sup.Add(&watchService{host: h, path: path})
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				h.log.Info("Received SIGHUP, reloading configuration")
				h.ReloadFromDisk(ctx)
			}
		}
	}()

	err := sup.Serve(ctx)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownWait)
	defer waitCancel()
	if werr := h.Wait(waitCtx); werr != nil {
		h.log.Warn("Timed out waiting for event handlers", "error", werr.Error())
	}
	h.Exit(waitCtx)

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// listenService runs the event source under the supervisor.
type listenService struct {
	host   *Host
	source EventSource
}

func (s *listenService) Serve(ctx context.Context) error {
	return s.source.Listen(ctx, func(ev wm.Event) {
		s.host.Dispatch(ctx, ev)
	})
}

func (s *listenService) String() string {
	return "hyprland-events"
}

// watchService reloads the configuration when its file changes.
type watchService struct {
	host *Host
	path string
}

func (s *watchService) Serve(ctx context.Context) error {
	return config.Watch(ctx, s.path, func() {
		s.host.log.Info("Config file changed", "path", s.path)
		s.host.ReloadFromDisk(ctx)
	})
}

func (s *watchService) String() string {
	return "config-watch"
}
