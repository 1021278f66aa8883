package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/qehealth/brisk/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history --app <name>",
	Short: "Show recent analyses recorded for an app",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("app", "", "application name (required)")
	historyCmd.Flags().Int("limit", 20, "number of entries to show")
	historyCmd.MarkFlagRequired("app")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, _ := cmd.Flags().GetString("app")
	limit, _ := cmd.Flags().GetInt("limit")

	if !cfg.History.Enabled {
		return fmt.Errorf("history store not configured: set POSTGRES_DSN or history.dsn")
	}

	store, err := history.Open(ctx, cfg.History.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, app, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("no recorded analyses for %s\n", app)
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%s  %3d (%s)  %d components  %s\n",
			entry.CreatedAt.Format(time.RFC3339), entry.Score, entry.Level,
			entry.Components, entry.ID)
	}
	return nil
}
