package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/reporter"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
)

var pushCmd = &cobra.Command{
	Use:   "push <title>",
	Short: "Send a single status to the sleepy server",
	Long: `Send one status using the sleepy section of the config file. Useful for
checking server_url and token without running the daemon.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	warnIfNotListed(log, cfg)

	opts := []reporter.Option{reporter.WithDebug(debugMode)}
	history, err := openHistory(cfg)
	if err != nil {
		log.Warn("Push history disabled", "error", err.Error())
	} else if history != nil {
		defer history.Close()
		opts = append(opts, reporter.WithRecorder(history))
	}

	title := strings.Join(args, " ")
	return pushTitle(cmd.Context(), cmd, log, cfg.Section(reporter.Name), title, opts...)
}

// pushTitle sends title with a reporter built from section and prints the result.
func pushTitle(ctx context.Context, cmd *cobra.Command, log *logger.Logger, section config.Section, title string, opts ...reporter.Option) error {
	rep := reporter.New(log, noWindows{}, opts...)
	rep.Reload(ctx, section)

	result, err := rep.Send(ctx, title)
	if errors.Is(err, reporter.ErrMissingConfig) {
		return fmt.Errorf("%w\n\nSet them in the sleepy section of %s", err, configPathForDisplay())
	}
	if err != nil {
		return fmt.Errorf("failed to set status %q: %w", title, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), colorSuccess("[SUCCESS] ")+fmt.Sprintf("Set status of %s to %q on %s (HTTP %d)",
		result.DeviceID, title, rep.Config().ServerURL, result.HTTPStatus))
	return nil
}

// warnIfNotListed flags a config whose sleepy section would be ignored by
// `run` because the plugin is missing from the plugins list.
func warnIfNotListed(log *logger.Logger, cfg *config.Config) bool {
	if cfg.HasPlugin(reporter.Name) {
		return false
	}
	log.Warn("sleepy is not listed under plugins, `run` will not report status",
		"plugins", cfg.Plugins)
	return true
}

// noWindows backs the one-shot reporter, which never looks up windows.
type noWindows struct{}

func (noWindows) Clients(context.Context) ([]wm.Window, error) {
	return nil, nil
}

func configPathForDisplay() string {
	if configPath != "" {
		return configPath
	}
	return "the config file"
}
