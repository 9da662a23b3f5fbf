package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local Limiter backed by a map from client ID to
// the last accepted submission instant.
//
// Known limitation: state lives in process memory only. A restarted or
// horizontally scaled deployment starts from an empty map, resetting every
// client's cooldown. Substitute DynamoDbLimiter when that matters; the
// Limiter contract is identical.
type MemoryLimiter struct {
	Cooldown     time.Duration
	mu           sync.Mutex
	lastAccepted map[string]time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		Cooldown:     DefaultCooldown,
		lastAccepted: map[string]time.Time{},
	}
}

// CheckAndRecord denies clients still inside the cooldown window and records
// now as the new last accepted instant otherwise, unconditionally
// overwriting any prior value.
func (l *MemoryLimiter) CheckAndRecord(
	ctx context.Context, clientID string, now time.Time,
) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastAccepted[clientID]; ok {
		if elapsed := now.Sub(last); elapsed < l.Cooldown {
			return Decision{RetryAfter: l.Cooldown - elapsed}, nil
		}
	}
	l.lastAccepted[clientID] = now
	return Decision{Allowed: true}, nil
}

// Sweep drops every entry older than RetentionWindow.
func (l *MemoryLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, last := range l.lastAccepted {
		if now.Sub(last) > RetentionWindow {
			delete(l.lastAccepted, id)
		}
	}
}

// Start launches a goroutine that sweeps every SweepInterval until ctx is
// done. The sweep only ever deletes expired entries, so it needs no
// coordination with CheckAndRecord beyond the map lock.
func (l *MemoryLimiter) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.Sweep(now)
			}
		}
	}()
}

// Len reports the number of tracked clients; used by sweep tests.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastAccepted)
}
