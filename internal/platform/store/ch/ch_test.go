package ch

import (
	"context"
	"strings"
	"testing"
)

// TestOpen_EmptyURL rejects missing DSN up front
func TestOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{})
	if err == nil {
		t.Fatalf("Open expected error on empty URL")
	}
}

// TestOpen_BadDSN surfaces the parse error
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "not a dsn"})
	if err == nil {
		t.Fatalf("Open expected error on malformed DSN")
	}
}

// TestOpen_LazyDial returns a client without dialing the server
func TestOpen_LazyDial(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{
		URL:  "clickhouse://127.0.0.1:19000/default",
		Role: "api",
		Tag:  "test",
	})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	_ = cl.Close()
}

// TestNilConn guards every method against a zero value client
func TestNilConn(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	ctx := context.Background()

	if err := cl.Insert(ctx, "t", nil); err == nil {
		t.Fatalf("Insert expected error on nil conn")
	}
	if _, err := cl.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Query expected error on nil conn")
	}
	if err := cl.Exec(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Exec expected error on nil conn")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on nil conn: %v", err)
	}
}

// TestBuildClientInfo stamps role and tag into the product list
func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo("worker", "v0.1.0")
	s := info.String()
	if !strings.Contains(s, "safetymapper/v0.1.0") {
		t.Fatalf("client info missing product tag: %q", s)
	}
	if !strings.Contains(s, "role/worker") {
		t.Fatalf("client info missing role: %q", s)
	}
}
