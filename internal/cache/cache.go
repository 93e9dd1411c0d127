// Package cache provides the data-load artifact cache: parsed data-file
// tables and the adjacency graph are expensive to reparse on every run, so
// successful parses are stored keyed by source-file content hash plus a
// manifest hash, and reused on the next load when validation passes. See
// design doc Section 5.9 and spec.md §2.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Mode selects how aggressively a cache entry is revalidated before reuse.
type Mode uint8

const (
	// ModeFast trusts a cache entry if the source file's mtime hasn't
	// changed since the entry was written — no rehash.
	ModeFast Mode = iota
	// ModeStrict rehashes the source file's full content on every lookup
	// and only reuses the entry if the hash still matches.
	ModeStrict
)

// ModeFromString parses a cache-mode config string; anything other than
// "strict" is treated as "fast", matching spec.md's "fast (mtime only) or
// strict (full content hash)" wording — unrecognized values fail safe
// toward the cheaper, more permissive mode rather than erroring.
func ModeFromString(s string) Mode {
	if s == "strict" {
		return ModeStrict
	}
	return ModeFast
}

// Store is a SQLite-backed artifact cache, one row per (manifest hash,
// artifact key) pair.
type Store struct {
	conn *sqlx.DB
	mode Mode
}

// Open opens or creates the cache database at dir/cache.db, migrating its
// schema if needed. A corrupt database file is treated as a cache miss: it
// is removed and recreated rather than surfaced as a fatal error, since the
// artifacts it held can always be regenerated from source.
func Open(dir string, mode Mode) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	path := filepath.Join(dir, "cache.db")

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	s := &Store{conn: conn, mode: mode}
	if err := s.migrate(); err != nil {
		conn.Close()
		slog.Warn("cache database corrupt, recreating", "path", path, "error", err)
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return nil, fmt.Errorf("cache: remove corrupt db: %w", rmErr)
		}
		conn, err = sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
		if err != nil {
			return nil, fmt.Errorf("cache: reopen after recreate: %w", err)
		}
		s.conn = conn
		if err := s.migrate(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("cache: migrate after recreate: %w", err)
		}
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		manifest_hash TEXT NOT NULL,
		artifact_key  TEXT NOT NULL,
		source_hash   TEXT NOT NULL,
		source_mtime  INTEGER NOT NULL,
		payload       BLOB NOT NULL,
		PRIMARY KEY (manifest_hash, artifact_key)
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// entryRow mirrors the artifacts table for sqlx scanning.
type entryRow struct {
	SourceHash  string `db:"source_hash"`
	SourceMtime int64  `db:"source_mtime"`
	Payload     []byte `db:"payload"`
}

// Lookup returns the cached payload for (manifestHash, artifactKey) if the
// entry exists and validates against sourcePath under the store's mode. A
// ModeFast lookup only compares the stored mtime; a ModeStrict lookup
// rehashes sourcePath's full content. Any miss — absent entry, stale mtime,
// or hash mismatch — returns ok=false rather than an error, since a miss is
// the normal "parse it fresh" path, not a failure.
func (s *Store) Lookup(manifestHash, artifactKey, sourcePath string) (payload []byte, ok bool, err error) {
	var row entryRow
	err = s.conn.Get(&row, `SELECT source_hash, source_mtime, payload FROM artifacts
		WHERE manifest_hash = ? AND artifact_key = ?`, manifestHash, artifactKey)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: lookup: %w", err)
	}

	info, statErr := os.Stat(sourcePath)
	if statErr != nil {
		return nil, false, nil
	}

	switch s.mode {
	case ModeStrict:
		hash, hashErr := HashFile(sourcePath)
		if hashErr != nil {
			return nil, false, nil
		}
		if hash != row.SourceHash {
			return nil, false, nil
		}
	default:
		if info.ModTime().Unix() != row.SourceMtime {
			return nil, false, nil
		}
	}

	return row.Payload, true, nil
}

// Store writes an artifact's payload keyed by (manifestHash, artifactKey),
// recording sourcePath's current content hash and mtime for future
// validation.
func (s *Store) Store(manifestHash, artifactKey, sourcePath string, payload []byte) error {
	hash, err := HashFile(sourcePath)
	if err != nil {
		return fmt.Errorf("cache: hash source: %w", err)
	}
	info, err := os.Stat(sourcePath)
	if err != nil {
		return fmt.Errorf("cache: stat source: %w", err)
	}

	_, err = s.conn.Exec(`INSERT INTO artifacts (manifest_hash, artifact_key, source_hash, source_mtime, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(manifest_hash, artifact_key) DO UPDATE SET
			source_hash = excluded.source_hash,
			source_mtime = excluded.source_mtime,
			payload = excluded.payload`,
		manifestHash, artifactKey, hash, info.ModTime().Unix(), payload)
	if err != nil {
		return fmt.Errorf("cache: store: %w", err)
	}
	return nil
}

// HashFile returns the lowercase hex SHA-256 digest of path's contents.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ManifestHash combines a set of already-computed file hashes (e.g. every
// source file a loader consulted) into a single hash identifying that
// combination — changing any one input file, or adding/removing one,
// changes the manifest hash and invalidates every artifact keyed under it.
func ManifestHash(fileHashes []string) string {
	h := sha256.New()
	for _, fh := range fileHashes {
		h.Write([]byte(fh))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
