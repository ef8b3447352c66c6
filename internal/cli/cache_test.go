package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/slicereveal/pkg/cache"
	"github.com/matzehuels/slicereveal/pkg/errors"
)

func TestCachePathCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)
	t.Setenv(cacheURLEnv, "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}

	want := filepath.Join(tmp, appName)
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)
	t.Setenv(cacheURLEnv, "")

	fc, err := cache.NewFileCache(filepath.Join(tmp, appName))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := fc.Get(ctx, key); hit {
			t.Errorf("Get(%q) hit after clear", key)
		}
	}
	entries, _ := os.ReadDir(fc.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear, want 0", len(entries))
	}
}

func TestCacheClearRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	mr.Set(cache.DefaultRedisPrefix+"a", "1")
	mr.Set(cache.DefaultRedisPrefix+"b", "2")
	mr.Set("unrelated", "3")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--cache-url", url, "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != url {
		t.Errorf("cache path = %q, want %q", got, url)
	}

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--cache-url", url, "cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if mr.Exists(cache.DefaultRedisPrefix+"a") || mr.Exists(cache.DefaultRedisPrefix+"b") {
		t.Error("prefixed keys survived cache clear")
	}
	if !mr.Exists("unrelated") {
		t.Error("cache clear removed an unrelated key")
	}
}

func TestNewCacheSelectsBackend(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	mr := miniredis.RunT(t)

	tests := []struct {
		name     string
		cli      CLI
		wantType string
	}{
		{"file", CLI{}, "*cache.FileCache"},
		{"disabled", CLI{noCache: true, cacheURL: "redis://" + mr.Addr()}, "cache.NullCache"},
		{"redis", CLI{cacheURL: "redis://" + mr.Addr()}, "*cache.RedisCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.cli.newCache(context.Background())
			if err != nil {
				t.Fatalf("newCache() error = %v", err)
			}
			defer c.Close()
			if got := fmt.Sprintf("%T", c); got != tt.wantType {
				t.Errorf("newCache() = %s, want %s", got, tt.wantType)
			}
		})
	}

	bad := CLI{cacheURL: "ftp://nowhere"}
	if _, err := bad.newCache(context.Background()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("newCache(bad url) = %v, want invalid config", err)
	}
}
