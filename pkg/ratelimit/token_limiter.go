package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget, used to stay under the AI
// provider's token-per-minute quota.
type TokenLimiter struct {
	mu        sync.Mutex
	maxTokens int
	remaining int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokens: maxTokensPerMinute,
		remaining: maxTokensPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.remaining
}

// Wait blocks until `tokens` can be consumed or the context is done. Requests
// larger than the whole budget are allowed through once the window resets.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.remaining >= tokens || tokens >= l.maxTokens {
			l.remaining -= tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (l *TokenLimiter) refill() {
	if now := time.Now(); now.After(l.windowEnd) {
		l.remaining = l.maxTokens
		l.windowEnd = now.Add(time.Minute)
	}
}
