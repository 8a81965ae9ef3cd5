package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set QUALMAP_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("QUALMAP_TEST_REDIS_URL")
	if url == "" {
		t.Skip("QUALMAP_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	c.prefix = "qualmap-test:" + t.Name() + ":"

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "k"); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("expected an error for a malformed url")
	}
}
