package analyzer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/qehealth/brisk/internal/classify"
	"github.com/qehealth/brisk/internal/depgraph"
	"github.com/qehealth/brisk/internal/resolver"
	"github.com/qehealth/brisk/internal/risk"
)

// DefaultDepth bounds transitive expansion when the caller does not
// supply one.
const DefaultDepth = 2

// Validation errors are surfaced verbatim to the caller before any
// analysis work begins.
var (
	ErrMissingApp          = errors.New("app is required")
	ErrMissingChangedFiles = errors.New("changedFiles is required")
)

// BlastRadiusAnalyzer coordinates the single-pass pipeline:
// resolve, expand, classify, score, recommend, assemble. Each call
// allocates its own state, so concurrent analyses are independent.
type BlastRadiusAnalyzer struct {
	files      *resolver.FileResolver
	graph      depgraph.Provider
	classifier *classify.IntegrationClassifier
	scorer     *risk.Scorer
	engine     *risk.RecommendationEngine
	logger     *slog.Logger
}

// Option adjusts analyzer construction.
type Option func(*BlastRadiusAnalyzer)

// WithProvider substitutes the dependency graph strategy, e.g. a
// structural import graph in place of naming inference.
func WithProvider(provider depgraph.Provider) Option {
	return func(a *BlastRadiusAnalyzer) { a.graph = provider }
}

// WithClassifier substitutes the integration classifier, e.g. one built
// from a site-specific rule table.
func WithClassifier(classifier *classify.IntegrationClassifier) Option {
	return func(a *BlastRadiusAnalyzer) { a.classifier = classifier }
}

// New builds an analyzer with the naming-convention graph and the
// built-in integration rule table.
func New(opts ...Option) *BlastRadiusAnalyzer {
	a := &BlastRadiusAnalyzer{
		files:      resolver.NewFileResolver(),
		graph:      depgraph.NewNamingGraph(),
		classifier: classify.NewIntegrationClassifier(nil),
		scorer:     risk.NewScorer(),
		engine:     risk.NewRecommendationEngine(),
		logger:     slog.Default().With("component", "analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline for one change set. Unresolvable files
// never abort the run; they are recorded as unresolved and contribute no
// edges. Only missing required fields fail the call.
func (a *BlastRadiusAnalyzer) Analyze(req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	depth := req.Depth
	if depth <= 0 {
		depth = DefaultDepth
	}

	start := time.Now()
	a.logger.Info("starting analysis", "app", req.App, "changed_files", len(req.ChangedFiles), "depth", depth)

	// 1. Resolve each changed file against the corpus. Without a corpus
	// the requested paths are taken at face value.
	resolved := make([]resolver.ResolvedFile, 0, len(req.ChangedFiles))
	for _, path := range req.ChangedFiles {
		if len(req.AvailableFiles) == 0 {
			resolved = append(resolved, resolver.ResolvedFile{
				RequestedPath: path,
				Exists:        true,
				MatchType:     resolver.MatchExact,
				ResolvedPath:  path,
			})
			continue
		}
		resolved = append(resolved, a.files.Resolve(path, req.AvailableFiles))
	}

	// 2-3. Type each resolved file and merge transitive neighbors into
	// the affected set.
	affected := newAffectedSet()
	depthSeen := map[string]int{} // file -> shortest depth across all origins
	nearSet := newAffectedSet()   // resolved files plus depth-1 neighbors

	for _, file := range resolved {
		if !file.Exists {
			continue
		}
		component := classify.ComponentFromPath(file.ResolvedPath)
		affected.add(component)
		nearSet.add(component)

		nodes := append(
			depgraph.TransitiveDependencies(a.graph, file.ResolvedPath, depth),
			depgraph.TransitiveDependents(a.graph, file.ResolvedPath, depth)...,
		)
		for _, node := range nodes {
			neighbor := classify.ComponentFromPath(node.File)
			affected.add(neighbor)
			if node.Depth == 1 {
				nearSet.add(neighbor)
			}
			if prev, ok := depthSeen[node.File]; !ok || node.Depth < prev {
				depthSeen[node.File] = node.Depth
			}
		}
	}

	// A file reachable at depth 1 from any origin counts as direct, never
	// also as transitive.
	directCount, transitiveCount := 0, 0
	for _, depth := range depthSeen {
		if depth == 1 {
			directCount++
		} else {
			transitiveCount++
		}
	}

	components := affected.slice()

	// 4. Classify integrations over the full affected set.
	integrations := a.classifier.Classify(components)

	// 5. Directly affected tests come from the resolved files and their
	// depth-1 neighbors only.
	affectedTests := []string{}
	for _, component := range nearSet.slice() {
		if component.Type == classify.ComponentTest {
			affectedTests = append(affectedTests, component.Name)
		}
	}

	// 6-7. Score and recommend.
	assessment := a.scorer.Score(len(components), integrations, len(affectedTests))
	recommendations := a.engine.Recommend(assessment, components, integrations, affectedTests)

	// 8. Assemble.
	result := &Result{
		ID:           uuid.NewString(),
		App:          req.App,
		Risk:         assessment,
		ChangedFiles: resolved,
		Impact: Impact{
			AffectedComponents:     componentNames(components),
			AffectedTests:          affectedTests,
			AffectedIntegrations:   integrationNames(integrations),
			DirectDependencies:     directCount,
			TransitiveDependencies: transitiveCount,
		},
		Recommendations: recommendations,
		Timestamp:       start,
	}

	a.logger.Info("analysis complete",
		"app", req.App,
		"score", assessment.Score,
		"level", assessment.Level,
		"components", len(components),
		"duration", time.Since(start).String(),
	)

	return result, nil
}

// Dependencies exposes graph expansion for one file in both directions.
func (a *BlastRadiusAnalyzer) Dependencies(file string, depth int) DependencyReport {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return DependencyReport{
		File:                   file,
		DirectDependencies:     a.graph.Dependencies(file),
		DirectDependents:       a.graph.Dependents(file),
		TransitiveDependencies: depgraph.TransitiveDependencies(a.graph, file, depth),
		TransitiveDependents:   depgraph.TransitiveDependents(a.graph, file, depth),
	}
}

// FindFiles exposes path resolution directly.
func (a *BlastRadiusAnalyzer) FindFiles(query string, available []string) resolver.ResolvedFile {
	return a.files.Resolve(query, available)
}

func validate(req Request) error {
	if req.App == "" {
		return ErrMissingApp
	}
	if len(req.ChangedFiles) == 0 {
		return ErrMissingChangedFiles
	}
	return nil
}

func componentNames(components []classify.Component) []string {
	names := make([]string, 0, len(components))
	for _, component := range components {
		names = append(names, component.Name)
	}
	return names
}

func integrationNames(integrations []classify.IntegrationPoint) []string {
	names := make([]string, 0, len(integrations))
	for _, point := range integrations {
		names = append(names, string(point.Type))
	}
	return names
}
