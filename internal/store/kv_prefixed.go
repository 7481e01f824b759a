package store

import "context"

type prefixedStore struct {
	prefix string
	next   KeyValueStore
}

// Prefixed returns a KeyValueStore that prepends prefix to every key before
// delegating to next. An empty prefix returns next unchanged.
func Prefixed(prefix string, next KeyValueStore) KeyValueStore {
	if prefix == "" {
		return next
	}
	return &prefixedStore{prefix: prefix, next: next}
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	prefixed := make(map[string][]byte, len(entries))
	for key, value := range entries {
		prefixed[p.prefix+key] = value
	}
	return p.next.SetMany(ctx, prefixed)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}
