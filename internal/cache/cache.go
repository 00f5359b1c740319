// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores extracted page texts in SQLite so that re-running an
// extraction on an unchanged PDF skips the backend entirely. Entries are
// keyed by the SHA-256 of the PDF bytes and the backend name.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

const dbFile = "pages.db"

// Cache manages the extraction cache database.
type Cache struct {
	db *sql.DB
}

// Open opens or creates dir/pages.db and its schema.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			backend TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			cached_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			doc_key TEXT NOT NULL REFERENCES documents(key) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (doc_key, number)
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Key returns the cache key for the PDF at path read through backend.
func Key(path string, backend types.Backend) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return string(backend) + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached page texts for key in page order. The boolean is
// false on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]string, bool, error) {
	var count int
	err := c.db.QueryRowContext(ctx,
		`SELECT page_count FROM documents WHERE key = ?`, key,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up %s: %w", key, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT text FROM pages WHERE doc_key = ? ORDER BY number`, key)
	if err != nil {
		return nil, false, fmt.Errorf("reading pages for %s: %w", key, err)
	}
	defer rows.Close()

	texts := make([]string, 0, count)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, false, fmt.Errorf("scanning page: %w", err)
		}
		texts = append(texts, text)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	// A partial entry is treated as a miss; Put will overwrite it.
	if len(texts) != count {
		return nil, false, nil
	}
	return texts, true, nil
}

// Put stores the page texts for key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key, path string, backend types.Backend, texts []string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE doc_key = ?`, key); err != nil {
		return fmt.Errorf("clearing pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (key, path, backend, page_count, cached_at) VALUES (?, ?, ?, ?, ?)`,
		key, path, string(backend), len(texts), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pages (doc_key, number, text) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for i, text := range texts {
		if _, err := stmt.ExecContext(ctx, key, i+1, text); err != nil {
			return fmt.Errorf("inserting page %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Source wraps a PageSource with the cache. Only documents whose every page
// extracted cleanly are stored, so a later strict run still sees real
// per-page failures.
type Source struct {
	next   extract.PageSource
	cache  *Cache
	logger *zap.Logger
}

// Wrap returns a PageSource that consults c before calling next.
func (c *Cache) Wrap(next extract.PageSource, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{next: next, cache: c, logger: logger}
}

// Name reports the wrapped backend.
func (s *Source) Name() types.Backend {
	return s.next.Name()
}

// Pages implements extract.PageSource. Cache failures are logged and fall
// through to the wrapped backend.
func (s *Source) Pages(ctx context.Context, path string) ([]extract.PageText, error) {
	key, err := Key(path, s.next.Name())
	if err != nil {
		s.logger.Warn("cache key unavailable", zap.String("file", path), zap.Error(err))
		return s.next.Pages(ctx, path)
	}

	texts, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed", zap.String("file", path), zap.Error(err))
	}
	if ok {
		s.logger.Debug("cache hit", zap.String("file", path), zap.Int("pages", len(texts)))
		pages := make([]extract.PageText, len(texts))
		for i, t := range texts {
			pages[i] = extract.PageText{Text: t}
		}
		return pages, nil
	}

	pages, err := s.next.Pages(ctx, path)
	if err != nil {
		return nil, err
	}

	texts = make([]string, len(pages))
	for i, p := range pages {
		if p.Err != nil {
			return pages, nil
		}
		texts[i] = p.Text
	}
	if err := s.cache.Put(ctx, key, path, s.next.Name(), texts); err != nil {
		s.logger.Warn("cache store failed", zap.String("file", path), zap.Error(err))
	}
	return pages, nil
}
