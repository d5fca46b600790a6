package framelai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Session holds the frames, the selection, and the detected source language
// for one user, and orchestrates detection and translation over them.
//
// All methods are safe for concurrent use. Detection runs in background
// goroutines; every detection and translate call is tagged with a generation
// number and only the most recently started one may commit its result.
type Session struct {
	mu        sync.Mutex
	frames    Collection
	selection *SelectionSet
	detected  DetectedLanguage

	detectGen    uint64
	translateGen uint64

	detector       Detector
	translator     Translator
	notifier       Notifier
	logger         *zap.Logger
	maxConcurrency int

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithNotifier sets the sink for user notifications.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMaxConcurrency caps the number of translation calls in flight during a
// single translate call. Zero or negative means unlimited.
func WithMaxConcurrency(n int) SessionOption {
	return func(s *Session) {
		s.maxConcurrency = n
	}
}

// WithBaseContext sets the parent context of background detection calls.
func WithBaseContext(ctx context.Context) SessionOption {
	return func(s *Session) {
		s.ctx = ctx
	}
}

// NewSession creates a session over a copy of frames. Nothing is selected
// initially and the detected language is unset.
func NewSession(frames Collection, detector Detector, translator Translator, opts ...SessionOption) (*Session, error) {
	if err := frames.Validate(); err != nil {
		return nil, fmt.Errorf("invalid collection: %w", err)
	}

	s := &Session{
		frames:     frames.Clone(),
		selection:  NewSelectionSet(),
		detector:   detector,
		translator: translator,
		notifier:   NotifierFunc(func(Notification) {}),
		logger:     zap.NewNop(),
		ctx:        context.Background(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(s.ctx)
	return s, nil
}

// Toggle selects or deselects a frame. Unknown frame IDs are rejected with
// ErrFrameNotFound and leave the selection unchanged. Repeating a toggle is a
// no-op and does not restart detection. After Close it returns
// ErrSessionClosed.
func (s *Session) Toggle(frameID string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}

	if _, ok := s.frames.Lookup(frameID); !ok {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, frameID)
	}

	if s.selection.Toggle(frameID, selected) {
		s.logger.Debug("selection changed",
			zap.String("frame_id", frameID),
			zap.Bool("selected", selected),
			zap.Int("selected_count", s.selection.Len()))
		s.refreshDetectionLocked()
	}
	return nil
}

// Selected returns the selected frame IDs in collection order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedIDsLocked()
}

// DetectedLanguage returns the current detection state.
func (s *Session) DetectedLanguage() DetectedLanguage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detected
}

// Frames returns a copy of the collection.
func (s *Session) Frames() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames.Clone()
}

// Snapshot returns a consistent copy of the whole session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, f := range s.frames {
		if s.selection.Has(f.ID) {
			count += len(f.Texts)
		}
	}

	return Snapshot{
		Frames:           s.frames.Clone(),
		Selected:         s.selectedIDsLocked(),
		Detected:         s.detected,
		SourceLabel:      s.detected.String(),
		TextElementCount: count,
	}
}

// Wait blocks until every detection started before the call has settled.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close cancels in-flight detections and waits for them to return.
func (s *Session) Close() {
	s.mu.Lock()
	s.detectGen++ // results of cancelled calls are stale
	s.mu.Unlock()

	s.cancel()
	s.inflight.Wait()
}

func (s *Session) selectedIDsLocked() []string {
	ids := make([]string, 0, s.selection.Len())
	for _, f := range s.frames {
		if s.selection.Has(f.ID) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func (s *Session) notify(severity Severity, title, description string) {
	s.notifier.Notify(Notification{
		Severity:    severity,
		Title:       title,
		Description: description,
		Time:        time.Now(),
	})
}
