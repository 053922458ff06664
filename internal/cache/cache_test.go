package cache

import (
	"errors"
	"testing"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatalf("expected error for zero size")
	}
}

func TestPutEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	c.Put("alpha", "a")
	c.Put("beta", "b")

	if _, hit := c.Get("alpha"); !hit {
		t.Fatalf("expected alpha to be cached")
	}

	c.Put("gamma", "g")

	if _, hit := c.Get("beta"); hit {
		t.Fatalf("expected beta to be evicted")
	}
	if v, hit := c.Get("alpha"); !hit || v != "a" {
		t.Fatalf("expected alpha to survive, hit=%v value=%q", hit, v)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestGetOrRender(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	calls := 0
	render := func() (string, error) {
		calls++
		return "rendered", nil
	}

	key := Key("adversary", "id:bear", 80)
	for i := 0; i < 3; i++ {
		got, err := c.GetOrRender(key, render)
		if err != nil || got != "rendered" {
			t.Fatalf("unexpected result %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single render, got %d", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrRender("other", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	if _, hit := c.Get("other"); hit {
		t.Fatalf("failed render must not be cached")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected purge to empty the cache")
	}
}

func TestKeyDistinguishesWidth(t *testing.T) {
	if Key("adversary", "id:bear", 80) == Key("adversary", "id:bear", 100) {
		t.Fatalf("expected width to be part of the key")
	}
	if Key("adversary", "id:bear", 80) == Key("environment", "id:bear", 80) {
		t.Fatalf("expected kind to be part of the key")
	}
	if Key("adversary", "id:a", 80) == Key("adversary", "id:b", 80) {
		t.Fatalf("expected identity to be part of the key")
	}
}
