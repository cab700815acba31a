package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent status pushes",
	Long:  "Show the most recent pushes recorded in the PostgreSQL history store (history.postgres_url or SLEEPY_POSTGRES_URL).",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of pushes to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", limit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("push history is not configured\n\nSet history.postgres_url in the config file or SLEEPY_POSTGRES_URL")
	}
	defer client.Close()

	pushes, err := client.RecentPushes(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pushes) == 0 {
		fmt.Fprintln(out, colorWarning("No pushes recorded."))
		return nil
	}
	for _, p := range pushes {
		fmt.Fprintln(out, formatPushOutput(p))
	}
	return nil
}
