package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// withRetry wraps every external write in the same bounded exponential
// backoff: attempts tries total, starting at baseDelay and doubling.
// Cancellation of ctx stops the retrying immediately.
func withRetry(ctx context.Context, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = baseDelay
	policy.Multiplier = 2
	policy.MaxInterval = 30 * time.Second

	attempt := 0
	operation := func() error {
		attempt++
		err := fn()
		if err != nil && attempt < attempts {
			log.Printf("⚠️ %s failed (attempt %d/%d): %v", name, attempt, attempts, err)
		}
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx))
	if err != nil {
		return fmt.Errorf("%s exhausted %d attempts: %w", name, attempts, err)
	}
	return nil
}
