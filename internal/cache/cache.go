package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store guarda listagens serializadas em JSON.
//
// Listagens são gravadas sob VersionedKey(chave, geração). Invalidate
// incrementa a geração, então um Set feito com a geração lida antes da
// invalidação grava numa chave que ninguém mais lê.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Generation(ctx context.Context, key string) (int64, error)
	Invalidate(ctx context.Context, keys ...string) error
}

func BarbershopBookingsKey(barbershopID uint) string {
	return fmt.Sprintf("bookings:barbershop:%d", barbershopID)
}

func UserBookingsKey(userID uint) string {
	return fmt.Sprintf("bookings:user:%d", userID)
}

func VersionedKey(key string, generation int64) string {
	return fmt.Sprintf("%s:g%d", key, generation)
}

func generationKey(key string) string {
	return key + ":gen"
}

// ------------------------------------------------------
// Redis
// ------------------------------------------------------

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, ttl).Err()
}

func (s *RedisStore) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := s.client.Get(ctx, generationKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, generationKey(k))
		}
		return nil
	})
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// ------------------------------------------------------
// Memória (dev sem Redis e testes)
// ------------------------------------------------------

type memoryEntry struct {
	raw     []byte
	expires time.Time
}

type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]memoryEntry
	generations map[string]int64
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]memoryEntry),
		generations: make(map[string]int64),
		now:         time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(e.raw, dst)
}

func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := memoryEntry{raw: raw}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Generation(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[key], nil
}

// Invalidate também descarta as entradas da geração anterior, que não
// seriam mais lidas.
func (s *MemoryStore) Invalidate(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.entries, VersionedKey(k, s.generations[k]))
		s.generations[k]++
	}
	s.mu.Unlock()
	return nil
}
