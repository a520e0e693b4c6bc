// Package cache stores expansion results keyed by source content, so
// unchanged files skip re-parsing and re-expansion on repeat runs.
//
// The cache is strictly a speed layer: a hit returns exactly the text a
// miss would regenerate, and interface names are never looked up here.
// Deleting the database is always safe.
package cache

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// formatVersion is bumped when the expansion format changes, so stale
// entries from an older binary are never served.
const formatVersion = "v1"

const schema = `
CREATE TABLE IF NOT EXISTS expansions (
	key    TEXT PRIMARY KEY,
	output TEXT NOT NULL
);
`

// Cache is a sqlite-backed expansion cache. The zero value is not
// usable; call Open.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for one source file's content.
func Key(source []byte) string {
	h := fnv.New64a()
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(formatVersion))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Lookup returns the cached expansion output for key, if present.
func (c *Cache) Lookup(key string) (string, bool, error) {
	var output string
	err := c.db.QueryRow(`SELECT output FROM expansions WHERE key = ?`, key).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return output, true, nil
}

// Store records the expansion output for key, replacing any prior entry.
func (c *Cache) Store(key, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO expansions (key, output) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET output = excluded.output`,
		key, output,
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Clean drops every cached entry.
func (c *Cache) Clean() error {
	_, err := c.db.Exec(`DELETE FROM expansions`)
	if err != nil {
		return fmt.Errorf("cache clean: %w", err)
	}
	return nil
}
