package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestLock_AcquireAndRelease(t *testing.T) {
	client, _ := setupTestRedis(t)
	lock := NewLock(client)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "ingest:doc-1", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire free lock")
	}

	if err := lock.Release(ctx, "ingest:doc-1"); err != nil {
		t.Fatalf("release: %v", err)
	}

	acquired, err = lock.Acquire(ctx, "ingest:doc-1", time.Minute)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	if !acquired {
		t.Error("expected to re-acquire after release")
	}
}

func TestLock_HeldByOther(t *testing.T) {
	client, _ := setupTestRedis(t)
	lock1 := NewLock(client)
	lock2 := NewLock(client)
	ctx := context.Background()

	if acquired, _ := lock1.Acquire(ctx, "ingest:doc-1", time.Minute); !acquired {
		t.Fatal("lock1 should acquire")
	}
	if acquired, _ := lock2.Acquire(ctx, "ingest:doc-1", time.Minute); acquired {
		t.Error("lock2 should not acquire a held lock")
	}

	// Release by a non-owner must not free the lock.
	if err := lock2.Release(ctx, "ingest:doc-1"); err != nil {
		t.Fatalf("non-owner release: %v", err)
	}
	if acquired, _ := lock2.Acquire(ctx, "ingest:doc-1", time.Minute); acquired {
		t.Error("lock still held by lock1, acquire should fail")
	}
}

func TestLock_ExpiresByTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	lock1 := NewLock(client)
	lock2 := NewLock(client)
	ctx := context.Background()

	if acquired, _ := lock1.Acquire(ctx, "ingest:doc-1", time.Second); !acquired {
		t.Fatal("lock1 should acquire")
	}

	mr.FastForward(2 * time.Second)

	if acquired, _ := lock2.Acquire(ctx, "ingest:doc-1", time.Minute); !acquired {
		t.Error("expected to acquire after TTL expiry")
	}
}

func TestLock_UniqueOwnerIDs(t *testing.T) {
	client, _ := setupTestRedis(t)

	if NewLock(client).OwnerID() == NewLock(client).OwnerID() {
		t.Error("expected unique owner IDs")
	}
}
