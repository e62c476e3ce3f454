package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenyList remembers revoked token ids until the token would expire anyway.
type TokenDenyList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryDenyList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryDenyList() *MemoryDenyList {
	return &MemoryDenyList{entries: map[string]time.Time{}, now: time.Now}
}

func (l *MemoryDenyList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()
	l.entries[tokenID] = until
	return nil
}

func (l *MemoryDenyList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	until, ok := l.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !l.now().Before(until) {
		delete(l.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// sweep drops expired entries; callers hold mu.
func (l *MemoryDenyList) sweep() {
	now := l.now()
	for id, until := range l.entries {
		if !now.Before(until) {
			delete(l.entries, id)
		}
	}
}

const denyListPrefix = "helishuttle:revoked:"

// RedisDenyList stores revoked ids as keys that expire with the token.
type RedisDenyList struct {
	Client *redis.Client
}

func (l RedisDenyList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.Client.Set(ctx, denyListPrefix+tokenID, "1", ttl).Err()
}

func (l RedisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := l.Client.Get(ctx, denyListPrefix+tokenID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
