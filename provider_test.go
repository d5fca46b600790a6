package framelai

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// mapCache is a minimal TranslationCache for provider tests.
type mapCache struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string]string)}
}

func (c *mapCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func TestCachedProvider_CacheHit(t *testing.T) {
	inner := newStubProvider()
	cache := newMapCache()
	p := NewCachedProvider(inner, cache, "gpt-4o-mini")

	req := TranslateRequest{Text: "Hello", SourceLang: "English", TargetLang: "Spanish"}
	for i := 0; i < 3; i++ {
		got, err := p.Translate(context.Background(), req)
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		if got != "Hola" {
			t.Errorf("got %q, want Hola", got)
		}
	}

	if n := len(inner.translateCalls()); n != 1 {
		t.Errorf("Expected 1 provider call, got %d", n)
	}

	key := CacheKeyExtended(HashText("Hello"), "English", "Spanish", "gpt-4o-mini")
	if v, ok := cache.Get(key); !ok || v != "Hola" {
		t.Errorf("cache[%s] = %q, %v", key, v, ok)
	}
}

func TestCachedProvider_KeyIncludesLanguages(t *testing.T) {
	inner := newStubProvider()
	p := NewCachedProvider(inner, newMapCache(), "m")

	ctx := context.Background()
	_, _ = p.Translate(ctx, TranslateRequest{Text: "Goodbye", SourceLang: "English", TargetLang: "Spanish"})
	_, _ = p.Translate(ctx, TranslateRequest{Text: "Goodbye", SourceLang: "English", TargetLang: "French"})
	_, _ = p.Translate(ctx, TranslateRequest{Text: "Goodbye", SourceLang: "German", TargetLang: "French"})

	if n := len(inner.translateCalls()); n != 3 {
		t.Errorf("Expected 3 provider calls, got %d", n)
	}
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := newStubProvider()
	inner.failures["Hello"] = errors.New("boom")
	cache := newMapCache()
	p := NewCachedProvider(inner, cache, "m")

	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello"}); err == nil {
		t.Fatal("Expected error")
	}
	if len(cache.data) != 0 {
		t.Error("failed translation should not be cached")
	}
}

func TestCachedProvider_SetErrorIgnored(t *testing.T) {
	cache := newMapCache()
	cache.setErr = &CacheError{Message: "redis down"}
	p := NewCachedProvider(newStubProvider(), cache, "m")

	got, err := p.Translate(context.Background(), TranslateRequest{Text: "World"})
	if err != nil || got != "Mundo" {
		t.Errorf("Translate = %q, %v", got, err)
	}
}

func TestCachedProvider_DetectNotCached(t *testing.T) {
	inner := newStubProvider()
	p := NewCachedProvider(inner, newMapCache(), "m")

	for i := 0; i < 2; i++ {
		if got, err := p.Detect(context.Background(), "Hello"); err != nil || got != "English" {
			t.Errorf("Detect = %q, %v", got, err)
		}
	}
	if n := len(inner.detectCalls()); n != 2 {
		t.Errorf("Expected 2 detect calls, got %d", n)
	}
}
