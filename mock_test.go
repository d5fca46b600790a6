package framelai

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// stubProvider is a concurrency-safe Provider for session tests.
type stubProvider struct {
	mu           sync.Mutex
	translations map[string]string
	failures     map[string]error
	language     string
	detectErr    error
	detected     []string
	requests     []TranslateRequest

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		translations: map[string]string{
			"Hello": "Hola",
			"World": "Mundo",
		},
		failures: map[string]error{},
		language: "English",
	}
}

func (p *stubProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	n := p.inflight.Add(1)
	defer p.inflight.Add(-1)
	for {
		peak := p.maxInflight.Load()
		if n <= peak || p.maxInflight.CompareAndSwap(peak, n) {
			break
		}
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	err := p.failures[req.Text]
	translated, ok := p.translations[req.Text]
	p.mu.Unlock()

	if err != nil {
		return "", err
	}
	if ok {
		return translated, nil
	}
	return fmt.Sprintf("%s (%s)", req.Text, req.TargetLang), nil
}

func (p *stubProvider) Detect(ctx context.Context, text string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detected = append(p.detected, text)
	if p.detectErr != nil {
		return "", p.detectErr
	}
	return p.language, nil
}

func (p *stubProvider) translateCalls() []TranslateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TranslateRequest(nil), p.requests...)
}

func (p *stubProvider) detectCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.detected...)
}

func (p *stubProvider) setLanguage(label string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.language = label
	p.detectErr = err
}

// detectCall is one Detect invocation parked on a gatedDetector.
type detectCall struct {
	text  string
	reply chan detectReply
}

type detectReply struct {
	label string
	err   error
}

// gatedDetector hands every Detect call to the test, which answers it
// explicitly. It lets tests settle calls out of order.
type gatedDetector struct {
	calls chan detectCall
}

func newGatedDetector() *gatedDetector {
	return &gatedDetector{calls: make(chan detectCall, 16)}
}

func (d *gatedDetector) Detect(ctx context.Context, text string) (string, error) {
	call := detectCall{text: text, reply: make(chan detectReply, 1)}
	d.calls <- call
	select {
	case r := <-call.reply:
		return r.label, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// gatedTranslator blocks every Translate call until release is closed.
type gatedTranslator struct {
	*stubProvider
	started chan struct{}
	release chan struct{}
}

func newGatedTranslator() *gatedTranslator {
	return &gatedTranslator{
		stubProvider: newStubProvider(),
		started:      make(chan struct{}, 64),
		release:      make(chan struct{}),
	}
}

func (t *gatedTranslator) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	t.started <- struct{}{}
	select {
	case <-t.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return t.stubProvider.Translate(ctx, req)
}

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *recorder) titles() []string {
	var out []string
	for _, n := range r.all() {
		out = append(out, n.Title)
	}
	return out
}

// testFrames returns a small collection. Frame "blank" has only whitespace.
func testFrames() Collection {
	return Collection{
		{ID: "f1", Name: "Greeting", Texts: []TextElement{
			{ID: "a", Content: "Hello"},
			{ID: "b", Content: "World"},
		}},
		{ID: "f2", Name: "Footer", Texts: []TextElement{
			{ID: "c", Content: "Goodbye"},
			{ID: "d", Content: "   "},
		}},
		{ID: "blank", Name: "Blank", Texts: []TextElement{
			{ID: "e", Content: " "},
		}},
	}
}
