package driven

import (
	"context"
	"time"
)

// DistributedLock provides named mutual exclusion across instances.
// Used to serialize per-document upserts: the vector index replaces
// chunks with delete-then-insert, which is unsafe to interleave.
type DistributedLock interface {
	// Acquire attempts to take a named lock with the given TTL.
	// Returns true if acquired, false if held elsewhere.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release releases a named lock if held by this instance
	Release(ctx context.Context, name string) error
}
