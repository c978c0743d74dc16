// Package draft stages in-progress answer sets for crash/reload recovery.
// Drafts are best-effort: a corrupt or missing payload behaves as "no draft"
// and is never surfaced as an error to the assessment flow.
package draft

import (
	"context"
	"encoding/json"
	"time"

	"formeo_backend/internal/scoring"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "formeo:draft:"

type payload struct {
	Answers scoring.AnswerMap `json:"answers"`
	SavedAt time.Time         `json:"savedAt"`
}

// RedisStore keeps one draft per key with a TTL so abandoned drafts age out.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, answers scoring.AnswerMap) (time.Time, error) {
	now := time.Now()
	b, err := json.Marshal(payload{Answers: answers, SavedAt: now})
	if err != nil {
		return time.Time{}, err
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, b, s.ttl).Err(); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (scoring.AnswerMap, time.Time, bool) {
	b, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, time.Time{}, false
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil || p.Answers == nil {
		// Corrupt drafts are treated as absent.
		return nil, time.Time{}, false
	}
	return p.Answers, p.SavedAt, true
}

func (s *RedisStore) Clear(ctx context.Context, key string) {
	s.rdb.Del(ctx, keyPrefix+key)
}
