package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qehealth/brisk/internal/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage cached file-corpus snapshots",
}

var corpusScanCmd = &cobra.Command{
	Use:   "scan --app <name> --root <dir>",
	Short: "Scan a source tree and cache it as the app's corpus snapshot",
	RunE:  runCorpusScan,
}

var corpusShowCmd = &cobra.Command{
	Use:   "show --app <name>",
	Short: "Show the cached corpus snapshot for an app",
	RunE:  runCorpusShow,
}

func init() {
	corpusScanCmd.Flags().String("app", "", "application name (required)")
	corpusScanCmd.Flags().String("root", "", "source tree root (required)")
	corpusScanCmd.MarkFlagRequired("app")
	corpusScanCmd.MarkFlagRequired("root")

	corpusShowCmd.Flags().String("app", "", "application name (required)")
	corpusShowCmd.MarkFlagRequired("app")

	corpusCmd.AddCommand(corpusScanCmd)
	corpusCmd.AddCommand(corpusShowCmd)
}

func runCorpusScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, _ := cmd.Flags().GetString("app")
	root, _ := cmd.Flags().GetString("root")

	files, err := corpus.NewScanner().Scan(ctx, root)
	if err != nil {
		return err
	}

	cache, err := corpus.OpenCache(cfg.Corpus.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	snapshot := corpus.Snapshot{App: app, Files: files, ScannedAt: time.Now()}
	if err := cache.Put(snapshot); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"app":   app,
		"files": len(files),
	}).Info("Corpus snapshot stored")
	return nil
}

func runCorpusShow(cmd *cobra.Command, args []string) error {
	app, _ := cmd.Flags().GetString("app")

	cache, err := corpus.OpenCache(cfg.Corpus.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	snapshot, ok, err := cache.Get(app)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no corpus snapshot for %s", app)
	}

	fmt.Printf("%s: %d files, scanned %s\n", snapshot.App, len(snapshot.Files),
		snapshot.ScannedAt.Format(time.RFC3339))
	for _, file := range snapshot.Files {
		fmt.Println("  " + file)
	}
	return nil
}
