package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/qehealth/brisk/internal/analyzer"
)

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "Show inferred dependencies and dependents for one file",
	Long: `Expands the naming-convention dependency graph around a single
file, in both directions, without scoring. Useful for checking what the
analyzer believes a file touches.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	depsCmd.Flags().Int("depth", 0, "transitive expansion depth (default 2)")
}

func runDeps(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	if depth == 0 {
		depth = cfg.Analysis.DefaultDepth
	}

	report := analyzer.New().Dependencies(args[0], depth)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
