package framelai_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZaguanLabs/framelai"
	"github.com/ZaguanLabs/framelai/cache"
	"github.com/ZaguanLabs/framelai/frameio"
	"github.com/ZaguanLabs/framelai/provider"
)

// Benchmarks for performance validation

func BenchmarkHashText(b *testing.B) {
	text := "Hello World, this is a sample text for hashing"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		framelai.HashText(text)
	}
}

func BenchmarkCacheKeyExtended(b *testing.B) {
	hash := "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		framelai.CacheKeyExtended(hash, "English", "Spanish", "gpt-4o-mini")
	}
}

func BenchmarkInMemoryCache_Get(b *testing.B) {
	c := cache.NewInMemoryCache(3600)
	_ = c.Set("test-key", "test-value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("test-key")
	}
}

func BenchmarkInMemoryCache_Set(b *testing.B) {
	c := cache.NewInMemoryCache(3600)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set("test-key", "test-value")
	}
}

func BenchmarkAggregateText(b *testing.B) {
	frames := frameio.DemoFrames()
	selection := framelai.NewSelectionSet("frame1", "frame2", "frame3", "frame4")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		framelai.AggregateText(frames, selection)
	}
}

func benchmarkTranslate(b *testing.B, elements int, p framelai.Provider) {
	frame := framelai.Frame{ID: "bench", Name: "Bench"}
	for i := 0; i < elements; i++ {
		frame.Texts = append(frame.Texts, framelai.TextElement{
			ID:      fmt.Sprintf("t%d", i),
			Content: fmt.Sprintf("Paragraph %d", i),
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s, err := framelai.NewSession(framelai.Collection{frame}, p, p)
		if err != nil {
			b.Fatal(err)
		}
		_ = s.Toggle("bench", true)
		s.Wait()
		b.StartTimer()

		if _, err := s.Translate(context.Background(), "es"); err != nil {
			b.Fatal(err)
		}

		b.StopTimer()
		s.Close()
		b.StartTimer()
	}
}

func BenchmarkSession_Translate_Uncached(b *testing.B) {
	benchmarkTranslate(b, 50, provider.NewMockProvider())
}

func BenchmarkSession_Translate_Cached(b *testing.B) {
	p := framelai.NewCachedProvider(provider.NewMockProvider(), cache.NewInMemoryCache(0), "mock")
	benchmarkTranslate(b, 50, p)
}

func BenchmarkGetDirection(b *testing.B) {
	for i := 0; i < b.N; i++ {
		framelai.GetDirection("ar_SA")
	}
}

func BenchmarkLanguageName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		framelai.LanguageName("zh-TW")
	}
}
