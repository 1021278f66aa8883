package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Scanner walks an application's source tree and produces the corpus of
// file paths the resolver matches against. Directories are walked
// concurrently; the result order is normalized so snapshots compare
// stably across runs.
type Scanner struct {
	skipDirs map[string]bool
	logger   *slog.Logger
}

// NewScanner returns a scanner that skips the usual vendored and
// generated trees.
func NewScanner() *Scanner {
	return &Scanner{
		skipDirs: map[string]bool{
			".git":         true,
			"node_modules": true,
			"bin":          true,
			"obj":          true,
			"vendor":       true,
		},
		logger: slog.Default().With("component", "corpus"),
	}
}

// Scan returns every file path under root, relative to root, using
// forward slashes. Top-level directories are scanned in parallel.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %s: %w", root, err)
	}

	// Top-level files are collected before any walker goroutine starts,
	// so only the walkers contend for the slice.
	files := []string{}
	dirs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			if !s.skipDirs[entry.Name()] {
				dirs = append(dirs, entry.Name())
			}
			continue
		}
		files = append(files, entry.Name())
	}

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	for _, dir := range dirs {
		dir := dir
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, err := s.walkDir(root, dir)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	s.logger.Debug("corpus scan complete", "root", root, "files", len(files))
	return files, nil
}

func (s *Scanner) walkDir(root, dir string) ([]string, error) {
	found := []string{}
	start := filepath.Join(root, dir)

	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		found = append(found, strings.ReplaceAll(rel, string(filepath.Separator), "/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", start, err)
	}

	return found, nil
}
