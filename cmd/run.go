package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/host"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/notify"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Listen for Hyprland events and run the configured plugins",
	Long: `Connect to the running Hyprland instance and report every focus change to
the sleepy server. The config file is reloaded on SIGHUP and whenever it
changes on disk.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	hypr, err := wm.NewHyprland(log)
	if err != nil {
		return err
	}

	deps := host.Deps{
		Windows:  hypr,
		Notifier: notify.NewDBus(),
		Debug:    debugMode,
	}

	history, err := openHistory(cfg)
	if err != nil {
		log.Warn("Push history disabled", "error", err.Error())
	} else if history != nil {
		defer history.Close()
		deps.History = history
		log.Info("Recording push history to PostgreSQL")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := host.New(log, newRegistry(), deps)
	if err := h.Load(ctx, cfg); err != nil {
		return err
	}

	log.Info("Starting sleepy-hyprland", "version", Version, "config", cfg.Path())
	source := wm.NewEventListener(wm.EventSocket(hypr.SocketDir()), log)
	err = h.Run(ctx, source)
	log.Info("Shutting down")
	return err
}
