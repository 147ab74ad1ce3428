package pkg

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// KeySet is an ordered set of keys.
type KeySet struct {
	order   []string
	members map[string]struct{}
}

func (k *KeySet) Contains(key string) bool {
	_, ok := k.members[key]
	return ok
}

func (k *KeySet) Keys() []string {
	return k.order
}

func (k *KeySet) Len() int {
	return len(k.order)
}

func NewKeySet(keys ...string) *KeySet {
	set := &KeySet{members: make(map[string]struct{})}
	for _, key := range RemoveDuplicates(keys) {
		set.order = append(set.order, key)
		set.members[key] = struct{}{}
	}
	return set
}

type Prober struct {
	Searcher Searcher
	Macro    string
	Workers  int
}

// IsUsed reports whether the key is referenced by an invocation in dir.
// The multi-line probe only runs when the single-line probe finds nothing.
func (p *Prober) IsUsed(ctx context.Context, key, dir string) (bool, error) {
	single, err := p.Searcher.Search(ctx, SingleLinePattern(p.Macro, key), dir)
	if err != nil {
		return false, err
	}
	if TotalMatches(single) > 0 {
		return true, nil
	}

	multi, err := p.Searcher.Search(ctx, MultiLinePattern(p.Macro, key), dir)
	if err != nil {
		return false, err
	}
	if TotalMatches(multi) > 0 {
		slog.DebugContext(ctx, "Key only used in multi-line invocation")
		return true, nil
	}
	return false, nil
}

// Unused probes every catalog key and returns those without any usage, in catalog order.
func (p *Prober) Unused(ctx context.Context, catalog *Catalog, dir string) (*KeySet, error) {
	keys := catalog.Keys()
	used := make([]bool, len(keys))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(max(p.Workers, 1))
	for i, key := range keys {
		i, key := i, key
		group.Go(func() error {
			keyCtx := WithValue(gctx, KeyKey, key)
			isUsed, err := p.IsUsed(keyCtx, key, dir)
			if err != nil {
				return fmt.Errorf("probing %q: %w", key, err)
			}
			used[i] = isUsed
			if !isUsed {
				slog.DebugContext(keyCtx, "No usage found")
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var unused []string
	for i, key := range keys {
		if !used[i] {
			unused = append(unused, key)
		}
	}
	return NewKeySet(unused...), nil
}

func NewProber(searcher Searcher, macro string, workers int) *Prober {
	return &Prober{Searcher: searcher, Macro: macro, Workers: workers}
}

func RemoveDuplicates[T comparable](input []T) []T {
	seen := make(map[T]struct{})
	result := make([]T, 0, len(input))

	for _, v := range input {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
