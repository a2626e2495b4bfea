package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string](Config{MaxItems: 10})
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Error("Get() on empty cache returned ok")
	}
	c.Set("a", "x")
	if v, ok := c.Get("a"); !ok || v != "x" {
		t.Errorf("Get() = %v, %v, want x, true", v, ok)
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", st)
	}
	if st.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", st.HitRate)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Millisecond})
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("Get() returned expired entry")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %v, want 0", c.Size())
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[int](Config{MaxItems: 2})
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3) // overwrite, no eviction
	if c.Size() != 2 {
		t.Fatalf("Size() = %v, want 2", c.Size())
	}
	c.Set("c", 4)
	if c.Size() != 2 {
		t.Errorf("Size() = %v, want 2 after eviction", c.Size())
	}
	if v, ok := c.Get("c"); !ok || v != 4 {
		t.Errorf("Get(c) = %v, %v, want 4, true", v, ok)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[int](DefaultConfig())
	defer c.Close()

	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	v, cached, err := c.GetOrSet("k", fn)
	if err != nil || v != 42 || cached {
		t.Errorf("GetOrSet() = %v, %v, %v, want 42, false, nil", v, cached, err)
	}
	v, cached, _ = c.GetOrSet("k", fn)
	if v != 42 || !cached {
		t.Errorf("GetOrSet() second call = %v, %v, want 42, true", v, cached)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, _, err := c.GetOrSet("e", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want %v", err, boom)
	}
	if _, ok := c.Get("e"); ok {
		t.Error("failed computation was cached")
	}
}

func TestKey(t *testing.T) {
	if Key("a") == Key("b") {
		t.Error("Key() collided for different content")
	}
	if len(Key("")) != 64 {
		t.Errorf("len(Key()) = %v, want 64", len(Key("")))
	}
	c := New[int](Config{})
	c.Close()
	c.Close() // idempotent
}
