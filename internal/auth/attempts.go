package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxFailures is the number of failed logins after which an IP is blocked
// for blockWindow. A successful login resets the counter.
const (
	maxFailures = 5
	blockWindow = 24 * time.Hour
)

// AttemptStore tracks failed logins per client IP.
type AttemptStore interface {
	Failed(ctx context.Context, ip string) error
	Blocked(ctx context.Context, ip string) (bool, error)
	Reset(ctx context.Context, ip string) error
}

// RedisAttemptStore keeps the counters in redis so the block survives a
// restart and is shared across instances.
type RedisAttemptStore struct {
	Client *redis.Client
}

func NewRedisAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{Client: client}
}

func attemptKey(ip string) string {
	return fmt.Sprintf("login_attempts:%s", ip)
}

func (s *RedisAttemptStore) Failed(ctx context.Context, ip string) error {
	key := attemptKey(ip)
	count, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return s.Client.Expire(ctx, key, blockWindow).Err()
	}
	return nil
}

func (s *RedisAttemptStore) Blocked(ctx context.Context, ip string) (bool, error) {
	count, err := s.Client.Get(ctx, attemptKey(ip)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= maxFailures, nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, ip string) error {
	return s.Client.Del(ctx, attemptKey(ip)).Err()
}

// MemoryAttemptStore is the in-process fallback used when redis is not
// configured, and in tests.
type MemoryAttemptStore struct {
	mu       sync.Mutex
	failures map[string]int
	expiry   map[string]time.Time
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		failures: map[string]int{},
		expiry:   map[string]time.Time{},
	}
}

func (s *MemoryAttemptStore) Failed(ctx context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures[ip] == 0 {
		s.expiry[ip] = time.Now().Add(blockWindow)
	}
	s.failures[ip]++
	return nil
}

func (s *MemoryAttemptStore) Blocked(ctx context.Context, ip string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry, ok := s.expiry[ip]; ok && time.Now().After(expiry) {
		delete(s.failures, ip)
		delete(s.expiry, ip)
	}
	return s.failures[ip] >= maxFailures, nil
}

func (s *MemoryAttemptStore) Reset(ctx context.Context, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, ip)
	delete(s.expiry, ip)
	return nil
}
