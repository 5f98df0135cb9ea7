package postgres

import (
	"context"
	"testing"
)

func TestHashLockName(t *testing.T) {
	a := hashLockName("ingest:doc-1")
	b := hashLockName("ingest:doc-1")
	c := hashLockName("ingest:doc-2")

	if a != b {
		t.Error("expected the same name to hash identically")
	}
	if a == c {
		t.Error("expected different names to hash differently")
	}
}

func TestAdvisoryLock_ReleaseUnheld(t *testing.T) {
	// A release for a lock this adapter never acquired must be a no-op:
	// no session holds it, so there is nothing to unlock and no
	// connection to touch.
	l := NewAdvisoryLock(nil)

	if err := l.Release(context.Background(), "ingest:doc-1"); err != nil {
		t.Errorf("expected releasing an unheld lock to be a no-op, got %v", err)
	}
}

func TestAdvisoryLock_ReleaseForgetsConn(t *testing.T) {
	l := NewAdvisoryLock(nil)
	l.held["ingest:doc-1"] = nil // held entry without a live session

	if err := l.Release(context.Background(), "ingest:doc-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok := l.held["ingest:doc-1"]; ok {
		t.Error("expected the held entry to be dropped on release")
	}
}
