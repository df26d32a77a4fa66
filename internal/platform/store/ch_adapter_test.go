package store

import (
	"context"
	"testing"

	"safetymapper/internal/platform/store/ch"
)

// TestCHAdapter_InsertRejectsShape ensures the adapter only accepts batched rows
func TestCHAdapter_InsertRejectsShape(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})

	if err := a.Insert(context.Background(), "some_table", struct{}{}); err == nil {
		t.Fatalf("Insert expected error on non-batch shape")
	}
}

// TestCHAdapter_InsertNilConn propagates the client error
func TestCHAdapter_InsertNilConn(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})

	err := a.Insert(context.Background(), "some_table", [][]any{{1, "x"}})
	if err == nil {
		t.Fatalf("Insert expected error on nil conn")
	}
}

// TestCHAdapter_QueryNilConn propagates the client error without rows
func TestCHAdapter_QueryNilConn(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})

	rows, err := a.Query(context.Background(), "SELECT 1")
	if err == nil {
		t.Fatalf("Query expected error on nil conn")
	}
	if rows != nil {
		t.Fatalf("Query expected nil rows on error, got %#v", rows)
	}
}

// TestCHAdapter_PingNilAdapter guards the readiness probe
func TestCHAdapter_PingNilAdapter(t *testing.T) {
	t.Parallel()

	var a *clickhouseAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("Ping expected error on nil adapter")
	}
}

// TestCHAdapter_CloseNilConn is a no op
func TestCHAdapter_CloseNilConn(t *testing.T) {
	t.Parallel()

	a := newCHAdapter(&ch.CH{})
	if err := a.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
