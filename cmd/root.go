// Package cmd implements the sleepy-hyprland command line.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/config"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/postgres"
	"github.com/Christopher-Hayes/sleepy-hyprland/sleepy"
)

// Set at build time with -ldflags "-X .../cmd.Version=v1.2.3".
var Version = "dev"

// Global flags
var (
	configPath string
	envFile    string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "sleepy-hyprland",
	Short: "Report the focused Hyprland window to a sleepy status server",
	Long: `sleepy-hyprland listens for focus changes in Hyprland and posts the
title of the focused window to a sleepy server's /api/device/set endpoint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		sleepy.UserAgent = "sleepy-hyprland/" + Version
		if err := config.LoadEnvFile(envFile); err != nil {
			return fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/sleepy-hyprland/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load KEY=VALUE pairs from this file before reading the config")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("%w\n\nCreate it with at least:\n  plugins: [sleepy]\n  sleepy:\n    server_url: https://sleepy.example.com\n    device_name: laptop\n    device_id: laptop-1", err)
	}
	return cfg, err
}

// newLogger builds the console logger, plus a file logger when log.file is set.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	level := logger.ParseLevel(cfg.Log.Level)
	if debugMode {
		level = zerolog.DebugLevel
	}

	opts := []logger.Option{logger.WithConsole(), logger.WithLevel(level)}

	switch cfg.Log.File {
	case "":
	case "default":
		path, err := logger.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFile(path))
	default:
		opts = append(opts, logger.WithFile(cfg.Log.File))
	}

	return logger.New(opts...)
}

// openHistory connects to the push history store. It returns nil, nil when
// no store is configured.
func openHistory(cfg *config.Config) (*postgres.Client, error) {
	connStr := cfg.History.PostgresURL
	if connStr == "" && os.Getenv("SLEEPY_POSTGRES_URL") == "" {
		return nil, nil
	}

	client, err := postgres.NewClient(connStr)
	if err != nil {
		return nil, err
	}
	client.DebugMode = debugMode
	return client, nil
}
