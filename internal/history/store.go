package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for sqlx
	"github.com/jmoiron/sqlx"

	"github.com/qehealth/brisk/internal/analyzer"
)

// Store records completed analyses in Postgres so risk trends per
// application can be reviewed later. It is an optional collaborator: the
// analyzer never depends on it.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS blast_radius_analyses (
	id          TEXT PRIMARY KEY,
	app         TEXT NOT NULL,
	score       INT NOT NULL,
	level       TEXT NOT NULL,
	components  INT NOT NULL,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

// Open connects to Postgres, verifies the connection, and ensures the
// analyses table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history store: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure history schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "history"),
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one analysis result.
func (s *Store) Record(ctx context.Context, result *analyzer.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis %s: %w", result.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blast_radius_analyses (id, app, score, level, components, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`, result.ID, result.App, result.Risk.Score, string(result.Risk.Level),
		len(result.Impact.AffectedComponents), payload, result.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record analysis %s: %w", result.ID, err)
	}

	s.logger.Debug("analysis recorded", "id", result.ID, "app", result.App, "score", result.Risk.Score)
	return nil
}

// Entry is one row of recent history for an application.
type Entry struct {
	ID         string    `db:"id" json:"id"`
	App        string    `db:"app" json:"app"`
	Score      int       `db:"score" json:"score"`
	Level      string    `db:"level" json:"level"`
	Components int       `db:"components" json:"components"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Recent returns the latest analyses for an app, newest first.
func (s *Store) Recent(ctx context.Context, app string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries := []Entry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, app, score, level, components, created_at
		FROM blast_radius_analyses
		WHERE app = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, app, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", app, err)
	}

	return entries, nil
}
