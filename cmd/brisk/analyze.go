package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qehealth/brisk/internal/analyzer"
	"github.com/qehealth/brisk/internal/classify"
	"github.com/qehealth/brisk/internal/corpus"
	"github.com/qehealth/brisk/internal/depgraph"
	"github.com/qehealth/brisk/internal/history"
	"github.com/qehealth/brisk/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze --app <name> [file...]",
	Short: "Estimate the blast radius of a set of changed files",
	Long: `Resolves each changed file against the application's file corpus,
expands the inferred dependency graph to the requested depth, classifies
touched integration points, and produces a 0-100 risk score with
recommendations. Unresolvable files are reported, never fatal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("app", "", "application under analysis (required)")
	analyzeCmd.Flags().Int("depth", 0, "transitive expansion depth (default 2)")
	analyzeCmd.Flags().String("root", "", "scan this directory as the available-file corpus")
	analyzeCmd.Flags().Bool("cached-corpus", false, "use the cached corpus snapshot for --app")
	analyzeCmd.Flags().Bool("quiet", false, "one-line summary (for pre-commit hooks)")
	analyzeCmd.Flags().Bool("json", false, "machine-readable JSON output")
	analyzeCmd.MarkFlagsMutuallyExclusive("quiet", "json")
	analyzeCmd.MarkFlagsMutuallyExclusive("root", "cached-corpus")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, _ := cmd.Flags().GetString("app")
	depth, _ := cmd.Flags().GetInt("depth")
	root, _ := cmd.Flags().GetString("root")
	useCache, _ := cmd.Flags().GetBool("cached-corpus")

	if depth == 0 {
		depth = cfg.Analysis.DefaultDepth
	}

	available, err := loadCorpus(ctx, app, root, useCache)
	if err != nil {
		return err
	}

	opts := []analyzer.Option{}

	// Site-specific integration keywords, when configured.
	if cfg.Analysis.RulesFile != "" {
		rules, err := classify.LoadRules(cfg.Analysis.RulesFile)
		if err != nil {
			return err
		}
		opts = append(opts, analyzer.WithClassifier(classify.NewIntegrationClassifier(rules)))
	}

	// Prefer the structural import graph when the collaborator is up.
	if cfg.Structural.Enabled {
		provider, err := depgraph.NewStructuralProvider(ctx,
			cfg.Structural.URI, cfg.Structural.User, cfg.Structural.Password, app)
		if err != nil {
			logger.WithError(err).Warn("Structural graph unavailable, falling back to naming inference")
		} else {
			defer provider.Close(ctx)
			opts = append(opts, analyzer.WithProvider(provider))
		}
	}

	result, err := analyzer.New(opts...).Analyze(analyzer.Request{
		App:            app,
		ChangedFiles:   args,
		Depth:          depth,
		AvailableFiles: available,
	})
	if err != nil {
		if errors.Is(err, analyzer.ErrMissingApp) {
			return fmt.Errorf("%w (pass --app)", err)
		}
		return err
	}

	if cfg.History.Enabled {
		if store, err := history.Open(ctx, cfg.History.DSN); err != nil {
			logger.WithError(err).Warn("History store unavailable, result not recorded")
		} else {
			defer store.Close()
			if err := store.Record(ctx, result); err != nil {
				logger.WithError(err).Warn("Failed to record analysis")
			}
		}
	}

	return formatterFor(cmd).Format(result, os.Stdout)
}

func formatterFor(cmd *cobra.Command) output.Formatter {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return output.NewFormatter(output.ModeQuiet)
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return output.NewFormatter(output.ModeJSON)
	}
	return output.NewFormatter(output.DefaultMode())
}

// loadCorpus picks the available-file corpus: a fresh scan of --root, the
// cached snapshot, or none (changed paths are then taken at face value).
func loadCorpus(ctx context.Context, app, root string, useCache bool) ([]string, error) {
	if root != "" {
		return corpus.NewScanner().Scan(ctx, root)
	}
	if !useCache {
		return nil, nil
	}

	cache, err := corpus.OpenCache(cfg.Corpus.CachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	snapshot, ok, err := cache.Get(app)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no corpus snapshot for %s: run 'brisk corpus scan --app %s --root <dir>' first", app, app)
	}
	return snapshot.Files, nil
}
