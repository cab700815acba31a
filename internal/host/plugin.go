// Package host loads the configured plugins and feeds them Hyprland events.
package host

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/notify"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
	"github.com/Christopher-Hayes/sleepy-hyprland/postgres"
)

// ErrUnknownPlugin is returned for plugin names with no registered factory.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Plugin is the part every plugin implements.
type Plugin interface {
	Name() string
	// Reload applies the plugin's config section. Called once at load and
	// again on every config reload.
	Reload(ctx context.Context, section config.Section) error
}

// EventHandler is implemented by plugins that consume compositor events.
type EventHandler interface {
	Events() []string
	HandleEvent(ctx context.Context, ev wm.Event)
}

// Lifecycle is implemented by plugins that need setup or teardown.
type Lifecycle interface {
	Init(ctx context.Context) error
	Exit(ctx context.Context) error
}

// WindowSource lists open windows.
type WindowSource interface {
	Clients(ctx context.Context) ([]wm.Window, error)
}

// Deps are the shared services handed to plugin factories. History is nil
// when no history store is configured.
type Deps struct {
	Windows  WindowSource
	History  *postgres.Client
	Notifier notify.Notifier
	Debug    bool
}

// Factory builds a plugin. log already carries the plugin name.
type Factory func(log *logger.Logger, deps Deps) (Plugin, error)

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory, replacing any previous one with the same name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// New builds the named plugin.
func (r *Registry) New(name string, log *logger.Logger, deps Deps) (Plugin, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	return factory(log, deps)
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
