package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// CachedStore wraps a Store with a Redis read-through cache. Writes and
// deletes invalidate the cached entry; cache failures degrade to the
// inner store rather than failing the operation.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore wraps inner with a read-through cache. A zero ttl uses
// the default.
func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

func (s *CachedStore) Read(ctx context.Context, path Path) (Document, error) {
	key := cacheKey(path)

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var doc Document
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc, nil
		}
		slog.Warn("dropping undecodable cache entry", "key", key)
		s.client.Del(ctx, key)
	} else if err != redis.Nil {
		slog.Warn("cache read failed, falling through", "key", key, "error", err)
	}

	doc, err := s.inner.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(doc); err == nil {
		if err := s.client.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
			slog.Warn("cache set failed", "key", key, "error", err)
		}
	}
	return doc, nil
}

func (s *CachedStore) Write(ctx context.Context, path Path, doc Document) error {
	if err := s.inner.Write(ctx, path, doc); err != nil {
		return err
	}
	if err := s.client.Del(ctx, cacheKey(path)).Err(); err != nil {
		slog.Warn("cache invalidation failed", "path", path, "error", err)
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, path Path) error {
	if err := s.inner.Delete(ctx, path); err != nil {
		return err
	}
	if err := s.client.Del(ctx, cacheKey(path)).Err(); err != nil {
		slog.Warn("cache invalidation failed", "path", path, "error", err)
	}
	return nil
}

func cacheKey(path Path) string {
	return "doc:" + path.String()
}
