//go:build small_tests || medium_tests || contract_tests || all_tests

package testdoubles

import (
	"context"
	"time"

	"github.com/lettered/verifyapi/ratelimit"
)

// Limiter returns a canned rate limiting decision.
type Limiter struct {
	ClientID string
	Now      time.Time
	Decision ratelimit.Decision
	Error    error
	NumCalls int
}

func (l *Limiter) CheckAndRecord(
	_ context.Context, clientID string, now time.Time,
) (ratelimit.Decision, error) {
	l.NumCalls++
	l.ClientID = clientID
	l.Now = now
	if l.Error != nil {
		return ratelimit.Decision{}, l.Error
	}
	return l.Decision, nil
}
