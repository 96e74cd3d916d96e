package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxJSONHistory caps the number of games kept in the JSON file
const MaxJSONHistory = 1000

type gameStats struct {
	HighScore int      `json:"highScore"`
	Games     []Record `json:"games"`
}

// JSONStore keeps everything in a single JSON document on disk.
type JSONStore struct {
	path  string
	mu    sync.RWMutex
	stats gameStats
}

func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &JSONStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var stats gameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return s.quarantine(err)
	}
	s.stats = stats
	return nil
}

// quarantine moves an unreadable stats file aside and leaves the store
// empty, so play continues and the old file can still be inspected.
func (s *JSONStore) quarantine(parseErr error) error {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("failed to move corrupt stats file aside: %w", err)
	}
	log.Printf("stats file %s is corrupt (%v), moved to %s", s.path, parseErr, aside)
	s.stats = gameStats{}
	return nil
}

// save writes to a temp file first so a crash never leaves a torn document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadBestScore() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.HighScore, nil
}

func (s *JSONStore) SaveBestScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.HighScore = score
	return s.save()
}

func (s *JSONStore) RecordGame(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Games = append([]Record{record}, s.stats.Games...)
	if len(s.stats.Games) > MaxJSONHistory {
		s.stats.Games = s.stats.Games[:MaxJSONHistory]
	}
	return s.save()
}

func (s *JSONStore) History(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return limitRecords(s.stats.Games, limit), nil
}

func (s *JSONStore) GetGame(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findRecord(s.stats.Games, id)
}

func (s *JSONStore) Close() error {
	return nil
}
