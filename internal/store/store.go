// Package store caches fetched article markup and search history in a
// local sqlite database, so revisited articles load without the network.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.init(); err != nil {
		conn.Close() //nolint:errcheck
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			title TEXT PRIMARY KEY,
			markup TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY,
			query TEXT NOT NULL,
			searched_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(searched_at DESC);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetArticle returns cached markup for a title, if present.
func (s *Store) GetArticle(title string) (string, bool, error) {
	var markup string
	err := s.conn.QueryRow(
		"SELECT markup FROM articles WHERE title = ?", title,
	).Scan(&markup)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read article: %w", err)
	}
	return markup, true, nil
}

// PutArticle stores (or replaces) the markup for a title.
func (s *Store) PutArticle(title, markup string) error {
	_, err := s.conn.Exec(`
		INSERT INTO articles (title, markup, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			markup = excluded.markup,
			fetched_at = excluded.fetched_at
	`, title, markup, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}
	return nil
}

// RecordSearch appends a query to the search history.
func (s *Store) RecordSearch(query string) error {
	_, err := s.conn.Exec(
		"INSERT INTO searches (query, searched_at) VALUES (?, ?)",
		query, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns distinct queries, most recent first.
func (s *Store) RecentSearches(limit int) ([]string, error) {
	rows, err := s.conn.Query(`
		SELECT query FROM searches
		GROUP BY query
		ORDER BY MAX(id) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// ArticleCount reports how many articles are cached.
func (s *Store) ArticleCount() (int, error) {
	var n int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n)
	return n, err
}
