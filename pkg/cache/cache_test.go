package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := ArtifactKey("abc123", "svg", false)
	value := []byte("<svg/>")

	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("hit on empty cache")
	}

	if err := c.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || !bytes.Equal(got, value) {
		t.Errorf("Get = %q, %v, want %q, true", got, ok, value)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("hit after delete")
	}
	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "expired", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "expired"); ok {
		t.Error("expired entry served")
	}

	if err := c.Set(ctx, "fresh", []byte("y"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "fresh"); !ok {
		t.Error("fresh entry missed")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestArtifactKey(t *testing.T) {
	base := ArtifactKey("hash1", "svg", false)

	if got := ArtifactKey("hash1", "svg", false); got != base {
		t.Error("key not deterministic")
	}
	for _, other := range []string{
		ArtifactKey("hash2", "svg", false),
		ArtifactKey("hash1", "dot", false),
		ArtifactKey("hash1", "svg", true),
	} {
		if other == base {
			t.Errorf("key collision: %q", other)
		}
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("data"))
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
	if a != Hash([]byte("data")) {
		t.Error("hash not deterministic")
	}
	if a == Hash([]byte("other")) {
		t.Error("distinct inputs collide")
	}
}
