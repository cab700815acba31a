package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/logger"
	"github.com/Christopher-Hayes/sleepy-hyprland/internal/wm"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List open Hyprland windows",
	Long:  "List the windows Hyprland reports, with the address used by focus events, the title and the class.",
	Args:  cobra.NoArgs,
	RunE:  runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	clientsCmd.Flags().Bool("all", false, "Include unmapped windows")
}

func runClients(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	log := logger.Nop()
	if debugMode {
		var err error
		log, err = logger.New(logger.WithConsole(), logger.WithLevel(zerolog.DebugLevel))
		if err != nil {
			return err
		}
		defer log.Close()
	}

	hypr, err := wm.NewHyprland(log)
	if err != nil {
		return err
	}

	windows, err := hypr.Clients(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, w := range windows {
		if !w.Mapped && !all {
			continue
		}
		fmt.Fprintln(out, formatWindowOutput(w))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(out, colorWarning("No windows open."))
	}
	return nil
}
