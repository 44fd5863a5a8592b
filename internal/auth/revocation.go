package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// JwtRevocationStore tracks revoked token ids until they would have
// expired anyway.
type JwtRevocationStore interface {
	// IsRevoked checks if the given JWT ID (jti) has been revoked.
	IsRevoked(jti string) (bool, error)
	// Revoke marks the given JWT ID (jti) revoked until exp.
	Revoke(jti string, exp time.Time) error
}

// InMemoryRevocationStore is the single-process backend. Entries are
// swept out a while after their token expiry passes.
type InMemoryRevocationStore struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

func NewInMemoryRevocationStore() *InMemoryRevocationStore {
	store := &InMemoryRevocationStore{
		revoked: make(map[string]time.Time),
	}
	go periodiclyCleanUp(store, time.Minute*5)
	return store
}

func periodiclyCleanUp(store *InMemoryRevocationStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		store.CleanUpExpired()
	}
}

func (s *InMemoryRevocationStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for jti, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, jti)
		}
	}
}

func (s *InMemoryRevocationStore) IsRevoked(jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.revoked[jti]
	return exists, nil
}

func (s *InMemoryRevocationStore) Revoke(jti string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[jti] = exp
	return nil
}

// RedisRevocationStore shares revocations across processes. Keys carry
// a TTL matching the token expiry, so redis handles cleanup itself.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

const revokedKeyPrefix = "jwt:revoked:"

func (s *RedisRevocationStore) IsRevoked(jti string) (bool, error) {
	n, err := s.client.Exists(context.Background(), revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisRevocationStore) Revoke(jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// Already expired, nothing to track.
		return nil
	}
	return s.client.Set(context.Background(), revokedKeyPrefix+jti, "1", ttl).Err()
}

var (
	_ JwtRevocationStore = (*InMemoryRevocationStore)(nil)
	_ JwtRevocationStore = (*RedisRevocationStore)(nil)
)
