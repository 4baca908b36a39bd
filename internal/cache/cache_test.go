package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("model-a", "prompt")
	b := Key("model-b", "prompt")
	if a == b {
		t.Error("different models must yield different keys")
	}
	if a != Key("model-a", "prompt") {
		t.Error("keys must be deterministic")
	}

	// The separator keeps (model, prompt) pairs from colliding on
	// concatenation boundaries
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("boundary collision between model and prompt")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache reported a hit")
	}

	c.Set("k", "v", time.Minute)
	if got, found := c.Get("k"); !found || got != "v" {
		t.Errorf("Get = %q, %v; want v, true", got, found)
	}

	c.Clear()
	if _, found := c.Get("k"); found {
		t.Error("Clear should remove all entries")
	}
}
