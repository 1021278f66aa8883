package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/qehealth/brisk/internal/analyzer"
)

var filesCmd = &cobra.Command{
	Use:   "files <query>",
	Short: "Resolve a path against an application's file corpus",
	Long: `Runs the resolution ladder (exact, case-insensitive, filename,
partial path, edit distance) for a single query and reports which
strategy matched, or suggestions when nothing did.`,
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().String("app", "", "application whose cached corpus to search")
	filesCmd.Flags().String("root", "", "scan this directory instead of the cached corpus")
	filesCmd.MarkFlagsOneRequired("app", "root")
}

func runFiles(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, _ := cmd.Flags().GetString("app")
	root, _ := cmd.Flags().GetString("root")

	available, err := loadCorpus(ctx, app, root, root == "")
	if err != nil {
		return err
	}

	resolved := analyzer.New().FindFiles(args[0], available)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resolved)
}
