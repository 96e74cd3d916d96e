package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Store persists the best score and the history of finished games.
type Store interface {
	// LoadBestScore returns 0 when nothing has been saved yet.
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
	RecordGame(record Record) error
	// History returns the most recent games first. limit <= 0 means all.
	History(limit int) ([]Record, error)
	// GetGame returns ErrNotFound when no game has the given ID.
	GetGame(id string) (*Record, error)
	Close() error
}

// Record is one finished game
type Record struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Cause     string    `json:"cause"`
	GridSize  int       `json:"gridSize"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Duration returns how long the game lasted
func (r Record) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
	KindMemory = "memory"

	jsonFileName   = "gamestats.json"
	sqliteFileName = "snake.db"
)

// Open creates the store of the given kind under dataDir.
func Open(kind, dataDir string) (Store, error) {
	switch kind {
	case KindJSON, "":
		return NewJSONStore(filepath.Join(dataDir, jsonFileName))
	case KindSQLite:
		s, err := NewSQLiteStore(filepath.Join(dataDir, sqliteFileName))
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

func findRecord(records []Record, id string) (*Record, error) {
	for _, r := range records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func limitRecords(records []Record, limit int) []Record {
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
