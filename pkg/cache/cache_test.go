package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get missing = hit=%v err=%v, want miss", hit, err)
	}

	want := []byte(`{"positions":[1,2]}`)
	if err := c.Set(ctx, "layout:abc", want, TTLLayout); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("expired entry: hit=%v err=%v, want miss", hit, err)
	}

	// Zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry missed")
	}
}

func TestFileCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry still present")
	}
}

func TestFileCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("old"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("new"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _, _ := c.Get(ctx, "k")
	if string(got) != "new" {
		t.Errorf("Get = %q, want new", got)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), TTLLayout); err != nil {
		t.Errorf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("null cache returned a hit")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.LayoutKey(Hash([]byte("payload")), LayoutKeyOpts{Kind: "class", Sweeps: 2})
	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("key = %q, want layout: prefix", a)
	}
	if same := k.LayoutKey(Hash([]byte("payload")), LayoutKeyOpts{Kind: "class", Sweeps: 2}); same != a {
		t.Error("identical inputs produced different keys")
	}
	if b := k.LayoutKey(Hash([]byte("payload")), LayoutKeyOpts{Kind: "class", Sweeps: 4}); b == a {
		t.Error("sweep count not part of the key")
	}
	if b := k.LayoutKey(Hash([]byte("other")), LayoutKeyOpts{Kind: "class", Sweeps: 2}); b == a {
		t.Error("payload hash not part of the key")
	}

	g := k.GenerationKey("class", "model a shop")
	if !strings.HasPrefix(g, "gen:") {
		t.Errorf("key = %q, want gen: prefix", g)
	}
	if g2 := k.GenerationKey("sequence", "model a shop"); g2 == g {
		t.Error("kind not part of the generation key")
	}
}

func TestHash(t *testing.T) {
	if got, want := len(Hash([]byte("x"))), 64; got != want {
		t.Errorf("hash length = %d, want %d", got, want)
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("distinct inputs hashed equal")
	}
}
