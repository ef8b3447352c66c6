// Package httputil fetches remote images.
//
// # Fetching
//
// [Fetcher] downloads an image over HTTP(S) with a size limit and retries
// transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Usage:
//
//	f := httputil.NewFetcher(64 << 20)
//	data, err := f.Fetch(ctx, "https://example.com/photo.jpg")
//
// # Retry
//
// [Backoff] runs any operation with a doubling, capped delay. Only errors
// wrapped in [RetryableError] are retried, and a Retry-After hint replaces
// the computed delay:
//
//	b := httputil.Backoff{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}
//	err := b.Do(ctx, func(attempt int) error {
//	    return &httputil.RetryableError{Err: errors.New("try again")}
//	})
package httputil
