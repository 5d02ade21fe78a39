package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (IRedis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client), srv
}

func TestSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Expected %q, got %q", "v", got)
	}
}

func TestGetMissing(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestExpiry(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	srv.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected expired key to miss, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Deleting a missing key should not fail: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected miss after delete, got %v", err)
	}
}

func TestNoop(t *testing.T) {
	cache := NewNoop()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Noop cache should always miss, got %v", err)
	}
}
