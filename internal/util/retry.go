// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared by the LLM client and the escalation webhook client
package util

import (
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift (max 30 for safety)
	if attempt > 30 {
		attempt = 30
	}
	// Exponential: 2^attempt * base
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	// Cap at 30 seconds
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	// Add jitter: -25% to +25% using auto-seeded math/rand/v2
	// rand.Int64N panics on non-positive n, so skip jitter when the
	// backoff is too small to have any
	half := int64(backoff) / 2
	if half <= 0 {
		return backoff
	}
	jitter := time.Duration(rand.Int64N(half)) - backoff/4
	return backoff + jitter
}
