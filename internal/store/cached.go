package store

import (
	"context"

	"github.com/sushihentaime/blogfiles/internal/common"
)

// CachedStore serves loads from an in-process cache and writes through to the
// wrapped store. Documents changed behind its back are seen once the cache entry
// expires.
type CachedStore struct {
	next  Store
	cache *common.Cache
}

func NewCachedStore(next Store, cache *common.Cache) *CachedStore {
	return &CachedStore{next: next, cache: cache}
}

func (s *CachedStore) Load(ctx context.Context, kind Kind) ([]byte, error) {
	key := common.CacheKeyCollection(string(kind))

	if v, ok := s.cache.Get(key); ok {
		if doc, ok := v.([]byte); ok {
			return append([]byte(nil), doc...), nil
		}
	}

	data, err := s.next.Load(ctx, kind)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, append([]byte(nil), data...))
	return data, nil
}

func (s *CachedStore) Save(ctx context.Context, kind Kind, data []byte) error {
	key := common.CacheKeyCollection(string(kind))

	if err := s.next.Save(ctx, kind, data); err != nil {
		s.cache.Delete(key)
		return err
	}

	s.cache.Set(key, append([]byte(nil), data...))
	return nil
}
