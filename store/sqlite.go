package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on top of an embedded SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path. ":memory:" is
// accepted for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the schema
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS best_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			grid_size INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadBestScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM best_score WHERE id = 1`).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load best score: %w", err)
	}
	return score, nil
}

func (s *SQLiteStore) SaveBestScore(score int) error {
	_, err := s.db.Exec(`
		INSERT INTO best_score (id, score, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		score, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save best score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordGame(record Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	_, err := s.db.Exec(`
		INSERT INTO games (id, score, length, cause, grid_size, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Score, record.Length, record.Cause, record.GridSize,
		record.StartTime.UnixNano(), record.EndTime.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(limit int) ([]Record, error) {
	query := `SELECT id, score, length, cause, grid_size, started_at, ended_at
		FROM games ORDER BY ended_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		var started, ended int64
		if err := rows.Scan(&r.ID, &r.Score, &r.Length, &r.Cause, &r.GridSize, &started, &ended); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		r.StartTime = time.Unix(0, started)
		r.EndTime = time.Unix(0, ended)
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetGame returns a single game by ID
func (s *SQLiteStore) GetGame(id string) (*Record, error) {
	var r Record
	var started, ended int64
	err := s.db.QueryRow(`
		SELECT id, score, length, cause, grid_size, started_at, ended_at
		FROM games WHERE id = ?`, id).
		Scan(&r.ID, &r.Score, &r.Length, &r.Cause, &r.GridSize, &started, &ended)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	r.StartTime = time.Unix(0, started)
	r.EndTime = time.Unix(0, ended)
	return &r, nil
}
