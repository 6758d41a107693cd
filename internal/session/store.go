package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/libremedic_admin/pkg/crypto"
)

// Record is what a remembered login keeps. Token is sealed.
type Record struct {
	Token     string    `json:"token"`
	UserType  string    `json:"user_type"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists remembered logins keyed by session id.
type Store interface {
	Save(ctx context.Context, id string, rec Record, ttl time.Duration) error
	// Load returns ErrSessionNotFound when the id is unknown or expired.
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// redisKeySession returns the Redis key for a session. The id is hashed so
// keys cannot be turned back into cookies.
func redisKeySession(id string) string { return "session:" + crypto.Hash(id) }

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, id string, rec Record, ttl time.Duration) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeySession(id), b, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (Record, error) {
	raw, err := s.rdb.Get(ctx, redisKeySession(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrSessionNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeySession(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore keeps remembered logins in process memory. It backs sessions
// when no Redis is configured; records are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	records map[string]memoryRecord
}

type memoryRecord struct {
	rec       Record
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, records: map[string]memoryRecord{}}
}

func (s *MemoryStore) Save(_ context.Context, id string, rec Record, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("store session: ttl must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.records[redisKeySession(id)] = memoryRecord{rec: rec, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.records[redisKeySession(id)]
	if !ok || !s.now().Before(m.expiresAt) {
		return Record{}, ErrSessionNotFound
	}
	return m.rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, redisKeySession(id))
	return nil
}

// sweep drops expired records. Callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for k, m := range s.records {
		if !now.Before(m.expiresAt) {
			delete(s.records, k)
		}
	}
}
