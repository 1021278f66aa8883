package corpus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var snapshotBucket = []byte("corpus_snapshots")

// Snapshot is a cached file-tree scan for one application.
type Snapshot struct {
	App       string    `json:"app"`
	Files     []string  `json:"files"`
	ScannedAt time.Time `json:"scanned_at"`
}

// Cache persists corpus snapshots in a local bbolt database so repeated
// analyses of the same application skip the tree walk.
type Cache struct {
	db     *bolt.DB
	logger *slog.Logger
}

// OpenCache opens (creating if needed) the snapshot database at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize corpus cache: %w", err)
	}

	return &Cache{
		db:     db,
		logger: slog.Default().With("component", "corpus-cache"),
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores a snapshot for an app, replacing any previous one.
func (c *Cache) Put(snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", snapshot.App, err)
	}

	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(snapshot.App), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", snapshot.App, err)
	}

	c.logger.Debug("snapshot stored", "app", snapshot.App, "files", len(snapshot.Files))
	return nil
}

// Get loads the snapshot for an app. The second return value is false
// when no snapshot exists.
func (c *Cache) Get(app string) (Snapshot, bool, error) {
	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket(snapshotBucket).Get([]byte(app)); value != nil {
			data = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read snapshot for %s: %w", app, err)
	}
	if data == nil {
		return Snapshot{}, false, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to unmarshal snapshot for %s: %w", app, err)
	}
	return snapshot, true, nil
}
