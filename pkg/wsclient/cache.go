package wsclient

import (
	"context"
	"encoding/json"
	"sync"
)

// FetchFunc loads the authoritative list from the REST API.
type FetchFunc func(ctx context.Context) ([]json.RawMessage, error)

// CachedList mirrors one authoritative server-side list (notifications or
// chat messages). Envelopes never mutate the items directly: an incoming
// event only invalidates the cache, which re-fetches from the store. That
// costs one extra round trip per event but sidesteps merge and ordering
// bugs entirely.
type CachedList struct {
	mu    sync.Mutex
	fetch FetchFunc
	items []json.RawMessage
}

func NewCachedList(fetch FetchFunc) *CachedList {
	return &CachedList{fetch: fetch}
}

// Invalidate discards the cached items and re-fetches the authoritative
// list. On fetch failure the previous items are kept so the UI never shows
// an intermediate invalid state.
func (l *CachedList) Invalidate(ctx context.Context) error {
	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items returns the current cached items.
func (l *CachedList) Items() []json.RawMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]json.RawMessage, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of cached items.
func (l *CachedList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}
