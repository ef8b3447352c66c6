package httputil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testFetcher(max int64) *Fetcher {
	f := NewFetcher(max)
	f.Delay = time.Millisecond
	return f
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a.png", true},
		{"http://localhost:8080/x", true},
		{"photo.jpg", false},
		{"/tmp/photo.jpg", false},
		{"ftp://example.com/a.png", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "slicereveal/") {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Write([]byte("image bytes"))
	}))
	defer srv.Close()

	data, err := testFetcher(1024).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := testFetcher(1024).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "ok" || calls.Load() != 3 {
		t.Errorf("Fetch() = %q after %d calls, want ok after 3", data, calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      []byte
		wantErr   error
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, nil, ErrNotFound, 1},
		{"forbidden", http.StatusForbidden, nil, ErrNetwork, 1},
		{"rate limited", http.StatusTooManyRequests, nil, ErrNetwork, 3},
		{"too large", http.StatusOK, bytes.Repeat([]byte("x"), 100), ErrTooLarge, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write(tt.body)
			}))
			defer srv.Close()

			_, err := testFetcher(10).Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("Retry() = %v after %d calls, want permanent after 1", err, calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 5, time.Hour, func() error {
		return &RetryableError{Err: errors.New("again")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestBackoffAttemptsAndCap(t *testing.T) {
	var seen []int
	b := Backoff{Attempts: 4, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	err := b.Do(context.Background(), func(attempt int) error {
		seen = append(seen, attempt)
		return &RetryableError{Err: ErrNetwork, After: time.Hour}
	})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Do() = %v, want ErrNetwork", err)
	}
	if len(seen) != 4 || seen[3] != 3 {
		t.Errorf("attempts = %v, want [0 1 2 3]", seen)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.header != "" {
			h.Set("Retry-After", tt.header)
		}
		if got := retryAfter(h); got != tt.want {
			t.Errorf("retryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
