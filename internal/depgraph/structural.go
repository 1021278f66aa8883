package depgraph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// StructuralProvider serves dependency edges from a precise import graph
// that the structural analyzer has loaded into Neo4j. When configured it
// is preferred over naming inference; a query failure degrades to no
// edges rather than failing the analysis, since the heuristic core must
// stay available when the collaborator is not.
type StructuralProvider struct {
	driver       neo4j.DriverWithContext
	app          string
	queryTimeout time.Duration
	logger       *slog.Logger
}

// NewStructuralProvider connects to Neo4j and verifies connectivity
// before returning, so a misconfigured URI fails at startup.
func NewStructuralProvider(ctx context.Context, uri, user, password, app string) (*StructuralProvider, error) {
	if uri == "" || user == "" {
		return nil, fmt.Errorf("neo4j credentials missing: uri=%s, user=%s", uri, user)
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}

	logger := slog.Default().With("component", "structural-graph")
	logger.Info("structural graph connected", "uri", uri, "app", app)

	return &StructuralProvider{
		driver:       driver,
		app:          app,
		queryTimeout: 5 * time.Second,
		logger:       logger,
	}, nil
}

// Close releases the driver connection.
func (p *StructuralProvider) Close(ctx context.Context) error {
	if err := p.driver.Close(ctx); err != nil {
		return fmt.Errorf("failed to close neo4j driver: %w", err)
	}
	return nil
}

// Dependencies returns the files the given file imports, per the
// structural graph.
func (p *StructuralProvider) Dependencies(file string) []string {
	query := `
		MATCH (f:File {path: $path, app: $app})-[:DEPENDS_ON]->(dep:File)
		RETURN dep.path AS path
	`
	return p.queryPaths(query, file)
}

// Dependents returns the files that import the given file.
func (p *StructuralProvider) Dependents(file string) []string {
	query := `
		MATCH (f:File {path: $path, app: $app})<-[:DEPENDS_ON]-(dep:File)
		RETURN dep.path AS path
	`
	return p.queryPaths(query, file)
}

func (p *StructuralProvider) queryPaths(query, file string) []string {
	ctx, cancel := context.WithTimeout(context.Background(), p.queryTimeout)
	defer cancel()

	result, err := neo4j.ExecuteQuery(ctx, p.driver, query,
		map[string]any{"path": file, "app": p.app},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		p.logger.Warn("structural graph query failed, no edges returned", "file", file, "error", err)
		return []string{}
	}

	paths := []string{}
	for _, record := range result.Records {
		value, ok := record.Get("path")
		if !ok {
			continue
		}
		if path, ok := value.(string); ok {
			paths = append(paths, path)
		}
	}

	p.logger.Debug("structural edges resolved", "file", file, "count", len(paths))
	return paths
}
