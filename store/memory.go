package store

import "sync"

// MemoryStore keeps state for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.RWMutex
	best  int
	games []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadBestScore() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.best, nil
}

func (m *MemoryStore) SaveBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}

func (m *MemoryStore) RecordGame(record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append([]Record{record}, m.games...)
	return nil
}

func (m *MemoryStore) History(limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return limitRecords(m.games, limit), nil
}

func (m *MemoryStore) GetGame(id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findRecord(m.games, id)
}

func (m *MemoryStore) Close() error {
	return nil
}
