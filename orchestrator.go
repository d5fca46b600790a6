package framelai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// candidate is a text element queued for translation.
type candidate struct {
	ElementID string
	Content   string
	FrameID   string
}

// collectCandidates lists every non-blank text element of the selected frames.
func collectCandidates(frames Collection, selection *SelectionSet) []candidate {
	var out []candidate
	for _, f := range frames {
		if !selection.Has(f.ID) {
			continue
		}
		for _, t := range f.Texts {
			if strings.TrimSpace(t.Content) == "" {
				continue
			}
			out = append(out, candidate{ElementID: t.ID, Content: t.Content, FrameID: f.ID})
		}
	}
	return out
}

// Translate translates every non-blank text element of the selected frames
// into the target language and merges the results back by element ID.
//
// The call is rejected with a *ValidationError, before any provider call, when
// targetCode is empty, nothing is selected, or the source language is not
// resolved. All element calls run concurrently; if any of them fails the
// whole batch fails with a *TranslationFailure and no frame is modified. If
// another Translate call started while this one was in flight, this one
// returns ErrStaleResult without merging or notifying, whether its calls
// succeeded or not.
func (s *Session) Translate(ctx context.Context, targetCode string) (*TranslateResult, error) {
	s.mu.Lock()
	if reason := s.validateLocked(targetCode); reason != "" {
		s.mu.Unlock()
		s.logger.Info("translate rejected", zap.String("reason", reason))
		s.notify(SeverityError, "Translation Error", "Please select frames and a target language first.")
		return nil, &ValidationError{Reason: reason}
	}

	candidates := collectCandidates(s.frames, s.selection)
	source := s.detected.Label
	s.translateGen++
	gen := s.translateGen
	s.mu.Unlock()

	target := Language{Code: targetCode, Name: LanguageName(targetCode)}

	s.logger.Info("translating",
		zap.Uint64("generation", gen),
		zap.Int("elements", len(candidates)),
		zap.String("source", source),
		zap.String("target", target.Name))

	mapping, err := s.translateAll(ctx, candidates, source, target.Name)

	s.mu.Lock()
	if gen != s.translateGen {
		current := s.translateGen
		s.mu.Unlock()
		s.logger.Info("discarding stale translation",
			zap.Uint64("generation", gen),
			zap.Uint64("current", current),
			zap.Error(err))
		return nil, ErrStaleResult
	}

	if err != nil {
		s.mu.Unlock()
		s.logger.Error("translation failed",
			zap.Uint64("generation", gen),
			zap.Error(err))
		s.notify(SeverityError, "Translation Failed", "An error occurred during translation. Please try again.")
		return nil, err
	}

	changed := s.frames.merge(mapping)
	if changed > 0 {
		s.refreshDetectionLocked()
	}
	s.mu.Unlock()

	s.notify(SeverityInfo, "Success!", fmt.Sprintf("Translated %d text elements to %s.", len(mapping), target.Name))

	return &TranslateResult{
		Target:     target,
		SourceLang: source,
		Translated: len(mapping),
		Changed:    changed,
		Mapping:    mapping,
	}, nil
}

// validateLocked returns a non-empty reason when a translate call must be rejected.
func (s *Session) validateLocked(targetCode string) string {
	switch {
	case strings.TrimSpace(targetCode) == "":
		return "no target language selected"
	case s.selection.Len() == 0:
		return "no frames selected"
	case !s.detected.Resolved():
		return fmt.Sprintf("source language is %s", s.detected.State)
	}
	return ""
}

// translateAll issues one call per candidate concurrently and joins them all
// or nothing. The first failure cancels the remaining calls.
func (s *Session) translateAll(ctx context.Context, candidates []candidate, source, target string) (map[string]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	results := make([]string, len(candidates))
	for i, c := range candidates {
		g.Go(func() error {
			translated, err := s.translator.Translate(gctx, TranslateRequest{
				Text:       c.Content,
				SourceLang: source,
				TargetLang: target,
			})
			if err != nil {
				return &TranslationFailure{ElementID: c.ElementID, Total: len(candidates), Cause: err}
			}
			results[i] = translated
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(candidates))
	for i, c := range candidates {
		mapping[c.ElementID] = results[i]
	}
	return mapping, nil
}
