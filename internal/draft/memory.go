package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"formeo_backend/internal/scoring"
)

// MemoryStore is the in-process fallback used in tests and in deployments
// without Redis. Payloads go through JSON like the Redis store so both
// implementations share round-trip behavior.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, key string, answers scoring.AnswerMap) (time.Time, error) {
	now := time.Now()
	b, err := json.Marshal(payload{Answers: answers, SavedAt: now})
	if err != nil {
		return time.Time{}, err
	}
	s.mu.Lock()
	s.data[key] = b
	s.mu.Unlock()
	return now, nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (scoring.AnswerMap, time.Time, bool) {
	s.mu.Lock()
	b, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return nil, time.Time{}, false
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil || p.Answers == nil {
		return nil, time.Time{}, false
	}
	return p.Answers, p.SavedAt, true
}

func (s *MemoryStore) Clear(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Corrupt overwrites a stored draft with garbage. Test hook.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	s.data[key] = []byte("{not json")
	s.mu.Unlock()
}
