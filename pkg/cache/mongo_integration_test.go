//go:build integration

package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

// Run with SLICEREVEAL_TEST_MONGO_URL=mongodb://localhost:27017/slicereveal_test.
func newTestMongo(t *testing.T) *MongoCache {
	t.Helper()
	uri := os.Getenv("SLICEREVEAL_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("SLICEREVEAL_TEST_MONGO_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, uri)
	if err != nil {
		t.Fatalf("NewMongoCache() error: %v", err)
	}
	t.Cleanup(func() {
		c.Clear(context.Background())
		c.Close()
	})
	return c
}

func TestMongoCache_Integration(t *testing.T) {
	ctx := context.Background()
	c := newTestMongo(t)

	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2}
	if err := c.Set(ctx, "layer:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "layer:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get = %v, want %v", got, payload)
	}

	now := time.Now()
	c.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, hit, _ := c.Get(ctx, "layer:abc"); hit {
		t.Error("expired entry hit = true, want false")
	}
	c.now = time.Now

	if err := c.Delete(ctx, "layer:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layer:abc"); hit {
		t.Error("Get after Delete hit = true, want false")
	}

	for _, k := range []string{"a", "b"} {
		c.Set(ctx, k, []byte(k), 0)
	}
	if n, err := c.Clear(ctx); err != nil || n != 2 {
		t.Errorf("Clear = %d, %v, want 2", n, err)
	}
}
