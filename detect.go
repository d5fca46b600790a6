package framelai

import (
	"strings"

	"go.uber.org/zap"
)

// AggregateText joins the content of every text element of the selected
// frames, in collection order and then frame order, separated by newlines.
func AggregateText(frames Collection, selection *SelectionSet) string {
	var parts []string
	for _, f := range frames {
		if !selection.Has(f.ID) {
			continue
		}
		for _, t := range f.Texts {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// refreshDetectionLocked recomputes the detected language after the selection
// or the content changed. It must be called with s.mu held.
func (s *Session) refreshDetectionLocked() {
	// Bumping the generation first invalidates any detection still in flight,
	// including when the new state needs no detection at all.
	s.detectGen++
	gen := s.detectGen

	if s.selection.Len() == 0 {
		s.detected = DetectedLanguage{State: DetectionUnset}
		return
	}

	text := AggregateText(s.frames, s.selection)
	if strings.TrimSpace(text) == "" {
		s.detected = DetectedLanguage{State: DetectionUnset}
		return
	}

	if s.ctx.Err() != nil {
		return
	}

	s.detected = DetectedLanguage{State: DetectionPending}
	s.inflight.Add(1)
	go s.detect(gen, text)
}

func (s *Session) detect(gen uint64, text string) {
	defer s.inflight.Done()

	s.logger.Debug("detecting source language",
		zap.Uint64("generation", gen),
		zap.Int("text_len", len(text)))

	label, err := s.detector.Detect(s.ctx, text)
	label = strings.TrimSpace(label)
	if err == nil && label == "" {
		err = &ProviderError{Message: "empty language label"}
	}

	s.mu.Lock()
	if gen != s.detectGen {
		current := s.detectGen
		s.mu.Unlock()
		s.logger.Debug("discarding stale detection result",
			zap.Uint64("generation", gen),
			zap.Uint64("current", current))
		return
	}

	if err != nil {
		s.detected = DetectedLanguage{State: DetectionFailed}
		s.mu.Unlock()

		s.logger.Warn("source language detection failed",
			zap.Uint64("generation", gen),
			zap.Error(&DetectionFailure{Cause: err}))
		s.notify(SeverityError, "Error", "Could not detect the source language.")
		return
	}

	s.detected = DetectedLanguage{State: DetectionResolved, Label: label}
	s.mu.Unlock()

	s.logger.Info("source language detected",
		zap.Uint64("generation", gen),
		zap.String("language", label))
}
