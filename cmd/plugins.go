package cmd

import (
	"errors"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/host"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/reporter"
)

// newRegistry returns the plugins this binary ships with.
func newRegistry() *host.Registry {
	reg := host.NewRegistry()
	reg.Register(reporter.Name, newReporterPlugin)
	return reg
}

func newReporterPlugin(log *logger.Logger, deps host.Deps) (host.Plugin, error) {
	if deps.Windows == nil {
		return nil, errors.New("sleepy plugin requires a window source")
	}

	opts := []reporter.Option{
		reporter.WithNotifier(deps.Notifier),
		reporter.WithDebug(deps.Debug),
	}
	if deps.History != nil {
		opts = append(opts, reporter.WithRecorder(deps.History))
	}
	return reporter.New(log, deps.Windows, opts...), nil
}
