package storage

import "sync"

// MemoryStore keeps records for the lifetime of the process
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Best(levelID string) (Record, bool, error) {
	if levelID == "" {
		return Record{}, false, ErrInvalidLevel
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[levelID]
	return r, ok, nil
}

func (m *MemoryStore) Submit(r Record) (bool, error) {
	if r.LevelID == "" {
		return false, ErrInvalidLevel
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// A missing record counts as zero
	if r.Score <= m.records[r.LevelID].Score {
		return false, nil
	}
	m.records[r.LevelID] = r
	return true, nil
}

func (m *MemoryStore) All() ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sortRecords(out)
	return out, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
