package keysetpager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store is the external key-value backend of the stash codec. Both methods
// may block; the store owns its own mutation discipline across concurrent
// paginate calls.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// stashCodec keeps serialized payloads out-of-band: Encode stores the value
// under a fresh v4 UUID and returns the UUID as the token; Decode looks the
// value back up. Unreferenced keys left behind by cancelled calls are
// harmless.
//
// The stash itself sees plaintext. If value integrity matters, chain an
// authenticated stage before the stash:
//
//	Pipe3(NewStructuredCodec(), NewAESCodec(secret), NewStashCodec(store))
type stashCodec struct {
	store Store
}

// NewStashCodec returns a string <-> string codec backed by the given store.
func NewStashCodec(store Store) Codec[string, string] {
	return &stashCodec{store: store}
}

// Encode - implements Codec.
func (c *stashCodec) Encode(ctx context.Context, in string) (string, error) {
	key := uuid.NewString()
	if err := c.store.Set(ctx, key, in); err != nil {
		return "", fmt.Errorf("failed to stash cursor payload: %w", err)
	}

	return key, nil
}

// Decode - implements Codec.
func (c *stashCodec) Decode(ctx context.Context, out string) (string, error) {
	value, err := c.store.Get(ctx, out)
	if err != nil {
		return "", fmt.Errorf("failed to fetch stashed cursor payload: %w", err)
	}

	return value, nil
}

// MemoryStore is a process-local Store. Suitable for tests and single-node
// deployments; stashed tokens do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get - implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("stash key '%s' not found", key)
	}

	return value, nil
}

// Set - implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

// RedisStore keeps stashed payloads in Redis so tokens stay valid across
// processes. Entries expire after TTL; an expired token surfaces as a decode
// failure on the next paginate call.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) redisKey(key string) string {
	if s.prefix == "" {
		return key
	}

	return s.prefix + ":" + key
}

// Get - implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read stash key '%s': %w", key, err)
	}

	return value, nil
}

// Set - implements Store.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	err := s.client.Set(ctx, s.redisKey(key), value, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to write stash key '%s': %w", key, err)
	}

	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
