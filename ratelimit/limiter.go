// Package ratelimit throttles form submissions per client address.
package ratelimit

import (
	"context"
	"time"
)

// DefaultCooldown is the minimum interval between two accepted submissions
// from the same client.
const DefaultCooldown = 5 * time.Minute

// RetentionWindow is how long an accepted-submission record is kept before a
// sweep may discard it. Sweeping is a memory bound, not a correctness
// mechanism: CheckAndRecord only ever consults the most recent timestamp.
const RetentionWindow = 5 * time.Minute

// SweepInterval is how often the background sweep runs.
const SweepInterval = time.Hour

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RetryAfterMinutes returns the remaining wait rounded up to whole minutes,
// never less than one. The API reports waits in minutes even though the
// window is defined in seconds.
func (d Decision) RetryAfterMinutes() int {
	minutes := int((d.RetryAfter + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Limiter decides whether a client may submit now and, if so, records the
// submission instant in the same operation.
//
// The check-and-record pair must be atomic per client so two near
// simultaneous requests cannot both pass the check.
type Limiter interface {
	CheckAndRecord(
		ctx context.Context, clientID string, now time.Time,
	) (Decision, error)
}
