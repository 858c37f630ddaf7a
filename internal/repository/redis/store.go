package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "othello:save:"

// Cache is the subset of Redis the save store needs.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// SaveStore keeps saved games as Redis strings in the same text format as
// the file store.
type SaveStore struct {
	cache Cache
	ttl   time.Duration
}

// NewSaveStore creates a store; ttl 0 keeps saves forever.
func NewSaveStore(cache Cache, ttl time.Duration) *SaveStore {
	return &SaveStore{cache: cache, ttl: ttl}
}

func key(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return "", fmt.Errorf("%w: save name %q", domain.ErrInvalidCommand, name)
	}
	return keyPrefix + name, nil
}

func (s *SaveStore) Save(ctx context.Context, name string, rec domain.SaveRecord) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, k, string(rec.Marshal()), s.ttl); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	log.Debug().Str("component", "redis").Str("key", k).Msg("save written")
	return nil
}

func (s *SaveStore) Load(ctx context.Context, name string) (domain.SaveRecord, error) {
	k, err := key(name)
	if err != nil {
		return domain.SaveRecord{}, err
	}
	data, err := s.cache.Get(ctx, k)
	if errors.Is(err, redis.Nil) {
		return domain.SaveRecord{}, fmt.Errorf("%w: %s", domain.ErrSaveNotFound, name)
	}
	if err != nil {
		return domain.SaveRecord{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}
	rec, err := domain.UnmarshalSaveRecord([]byte(data))
	if err != nil {
		return domain.SaveRecord{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}
	return rec, nil
}

// Delete removes a save; deleting a missing save is not an error.
func (s *SaveStore) Delete(ctx context.Context, name string) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	return s.cache.Del(ctx, k)
}
