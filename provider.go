package framelai

import "context"

// Translator translates a single text string between two languages.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// Detector detects the language of a text blob and returns a free-text
// language name such as "English".
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Provider is an AI backend that can both detect and translate.
type Provider interface {
	Translator
	Detector
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // Detected language label, e.g. "English"
	TargetLang string // Target display name, e.g. "Spanish"
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// CachedProvider wraps a Provider and caches translations.
// Detection is never cached.
type CachedProvider struct {
	provider Provider
	cache    TranslationCache
	model    string
}

// NewCachedProvider creates a caching provider. The model name becomes part
// of every cache key so translations from different models never mix.
func NewCachedProvider(provider Provider, cache TranslationCache, model string) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		model:    model,
	}
}

// Translate returns a cached translation or calls the wrapped provider.
func (p *CachedProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	key := CacheKeyExtended(HashText(req.Text), req.SourceLang, req.TargetLang, p.model)

	if cached, ok := p.cache.Get(key); ok {
		return cached, nil
	}

	result, err := p.provider.Translate(ctx, req)
	if err != nil {
		return "", err
	}

	_ = p.cache.Set(key, result) // Ignore cache set errors
	return result, nil
}

// Detect calls the wrapped provider.
func (p *CachedProvider) Detect(ctx context.Context, text string) (string, error) {
	return p.provider.Detect(ctx, text)
}

// Verify CachedProvider implements Provider
var _ Provider = (*CachedProvider)(nil)
