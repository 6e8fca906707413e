package llm

import "time"

// RetryConfig holds per-endpoint retry configuration.
//
// The default is a single attempt per model: ordering of the fallback chain
// is the retry policy, and a failed model hands over to the next one rather
// than being retried. Deployments that want in-place retries can raise
// MaxAttempts.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per endpoint.
	MaxAttempts int

	// BackoffBase is the initial backoff duration between attempts.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns the default single-attempt configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       1,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}
