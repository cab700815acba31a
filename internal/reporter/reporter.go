// Package reporter sends the title of the focused Hyprland window to a sleepy
// status server.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/notify"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
	"github.com/Christopher-Hayes/sleepy-hyprland/sleepy"
)

// Name is the plugin name and the config section the reporter reads.
const Name = "sleepy"

// ErrMissingConfig is returned by Send when device_id, device_name or
// server_url is empty.
var ErrMissingConfig = errors.New("missing sleepy configuration: device_id/device_name/server_url")

// missingConfigMessage is the error line logged when a push is refused.
const missingConfigMessage = "Missing sleepy configuration: device_id/device_name/server_url"

// WindowLister returns the currently open windows.
type WindowLister interface {
	Clients(ctx context.Context) ([]wm.Window, error)
}

// Recorder keeps a history of push attempts.
type Recorder interface {
	RecordPush(ctx context.Context, push sleepy.PushResult) error
}

type Option func(*Reporter)

// WithRecorder records every attempted push.
func WithRecorder(rec Recorder) Option {
	return func(r *Reporter) {
		r.recorder = rec
	}
}

// WithNotifier sets where notify_on_failure notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Reporter) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithDebug enables the HTTP client's request/response debug output.
func WithDebug(debug bool) Option {
	return func(r *Reporter) {
		r.debug = debug
	}
}

// Reporter is the sleepy plugin.
type Reporter struct {
	log      *logger.Logger
	windows  WindowLister
	recorder Recorder
	notifier notify.Notifier
	debug    bool
	now      func() time.Time

	cfg     atomic.Pointer[Config]
	failing atomic.Bool
}

// New returns a reporter with an empty configuration. Pushes are refused
// until Reload supplies device_id, device_name and server_url.
func New(log *logger.Logger, windows WindowLister, opts ...Option) *Reporter {
	r := &Reporter{
		log:      log,
		windows:  windows,
		notifier: notify.Silent{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cfg.Store(&Config{RequestTimeout: defaultRequestTimeout})
	return r
}

func (r *Reporter) Name() string {
	return Name
}

// Config returns the configuration currently in effect.
func (r *Reporter) Config() *Config {
	return r.cfg.Load()
}

// Reload replaces the configuration. It never fails; an incomplete section
// only produces a warning, and pushes are refused until it is fixed.
func (r *Reporter) Reload(_ context.Context, section config.Section) error {
	cfg := ConfigFromSection(section)
	r.cfg.Store(cfg)

	for _, key := range coercedKeys(section) {
		r.log.Warn("Sleepy setting is not a string, quote it in the config to keep it verbatim",
			"key", key,
			"value", section.String(key))
	}

	if !cfg.Complete() {
		r.log.Warn("Sleepy configuration incomplete, status will not be reported",
			"server_url", cfg.ServerURL != "",
			"device_name", cfg.DeviceName != "",
			"device_id", cfg.DeviceID != "")
		return nil
	}
	r.log.Debug("Loaded sleepy configuration",
		"server_url", cfg.ServerURL,
		"device_id", cfg.DeviceID,
		"token", cfg.Token != "",
		"ignore_classes", len(cfg.IgnoreClasses))
	return nil
}

func (r *Reporter) Events() []string {
	return []string{wm.EventActiveWindowV2}
}

// HandleEvent reacts to activewindowv2 events.
func (r *Reporter) HandleEvent(ctx context.Context, ev wm.Event) {
	if ev.Name != wm.EventActiveWindowV2 {
		return
	}
	r.FocusChanged(ctx, ev.Data)
}

// FocusChanged looks up the window at addr and pushes its title. Unknown and
// ignored windows are skipped silently.
func (r *Reporter) FocusChanged(ctx context.Context, addr string) {
	addr = wm.NormalizeAddress(addr)

	windows, err := r.windows.Clients(ctx)
	if err != nil {
		r.log.Error("Failed to list windows", err, "address", addr)
		return
	}

	window, ok := wm.FindByAddress(windows, addr)
	if !ok {
		r.log.Debug("Focused window not found", "address", addr)
		return
	}

	if r.cfg.Load().Ignored(window.Class) {
		r.log.Debug("Skipping ignored window", "class", window.Class)
		return
	}

	r.PushStatus(ctx, window.Title)
}

// PushStatus sends title and logs the outcome. Errors never reach the caller.
func (r *Reporter) PushStatus(ctx context.Context, title string) {
	result, err := r.Send(ctx, title)
	switch {
	case errors.Is(err, ErrMissingConfig):
		r.log.Error(missingConfigMessage, nil)
	case err != nil:
		r.log.Error("Failed to set status", err,
			"title", title,
			"http_status", result.HTTPStatus)
	default:
		r.log.Debug("Set status successfully", "title", title)
	}
}

// Send pushes title using the configuration in effect when it is called and
// returns the outcome. A *sleepy.StatusError means the server rejected it.
func (r *Reporter) Send(ctx context.Context, title string) (sleepy.PushResult, error) {
	cfg := r.cfg.Load()
	if !cfg.Complete() {
		return sleepy.PushResult{}, ErrMissingConfig
	}

	result := sleepy.PushResult{
		DeviceID:   cfg.DeviceID,
		DeviceName: cfg.DeviceName,
		Status:     title,
		PushedAt:   r.now(),
	}

	err := r.post(ctx, cfg, title)
	if err == nil {
		result.Success = true
		result.HTTPStatus = 200
	} else {
		var statusErr *sleepy.StatusError
		if errors.As(err, &statusErr) {
			result.HTTPStatus = statusErr.Code
		}
		result.Error = err.Error()
	}

	r.record(ctx, result)
	r.track(ctx, cfg, result)
	return result, err
}

// post sends one request with a client that lives only for this call.
func (r *Reporter) post(ctx context.Context, cfg *Config, title string) error {
	client, err := sleepy.NewClient(cfg.ServerURL)
	if err != nil {
		return err
	}
	defer client.Close()

	client.DebugMode = r.debug
	client.SetToken(cfg.Token)
	client.SetTimeout(cfg.RequestTimeout)

	return client.SetStatus(ctx, sleepy.Status{
		ID:       cfg.DeviceID,
		ShowName: cfg.DeviceName,
		Using:    true,
		Status:   title,
	})
}

func (r *Reporter) record(ctx context.Context, result sleepy.PushResult) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordPush(ctx, result); err != nil {
		r.log.Warn("Failed to record push history", "error", err.Error())
	}
}

// track raises a notification when pushes start failing. Further failures
// stay quiet until a push succeeds again.
func (r *Reporter) track(ctx context.Context, cfg *Config, result sleepy.PushResult) {
	if result.Success {
		if r.failing.Swap(false) {
			r.log.Info("Sleepy server reachable again")
		}
		return
	}
	if !r.failing.CompareAndSwap(false, true) || !cfg.NotifyOnFailure {
		return
	}

	body := fmt.Sprintf("Could not report status to %s: %s", cfg.ServerURL, result.Error)
	if err := r.notifier.Notify(ctx, "Sleepy status update failed", body); err != nil {
		r.log.Warn("Failed to send desktop notification", "error", err.Error())
	}
}
