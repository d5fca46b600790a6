package framelai

import (
	"fmt"
	"strings"
	"time"
)

// TextElement is an atomic unit of translatable text with a stable identity.
type TextElement struct {
	ID      string `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
}

// Frame is a named container of text elements (a design-tool artboard).
type Frame struct {
	ID    string        `json:"id" yaml:"id"`
	Name  string        `json:"name" yaml:"name"`
	Texts []TextElement `json:"texts" yaml:"texts"`
}

// Collection is the ordered set of frames a session works on.
type Collection []Frame

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, f := range c {
		out[i] = Frame{
			ID:    f.ID,
			Name:  f.Name,
			Texts: append([]TextElement(nil), f.Texts...),
		}
	}
	return out
}

// Lookup returns the frame with the given ID.
func (c Collection) Lookup(id string) (Frame, bool) {
	for _, f := range c {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}

// Validate checks that frame IDs and text element IDs are non-empty and unique.
// Element IDs must be unique across the whole collection because translations
// are merged back by element ID alone.
func (c Collection) Validate() error {
	frames := make(map[string]bool, len(c))
	elements := make(map[string]string)
	for _, f := range c {
		if f.ID == "" {
			return fmt.Errorf("frame %q has an empty id", f.Name)
		}
		if frames[f.ID] {
			return fmt.Errorf("duplicate frame id %q", f.ID)
		}
		frames[f.ID] = true

		for _, t := range f.Texts {
			if t.ID == "" {
				return fmt.Errorf("frame %q has a text element with an empty id", f.ID)
			}
			if owner, ok := elements[t.ID]; ok {
				return fmt.Errorf("duplicate text element id %q in frames %q and %q", t.ID, owner, f.ID)
			}
			elements[t.ID] = f.ID
		}
	}
	return nil
}

// merge replaces the content of every element whose ID is a key in
// translations. It returns the number of elements whose content changed.
func (c Collection) merge(translations map[string]string) int {
	changed := 0
	for i := range c {
		for j := range c[i].Texts {
			el := &c[i].Texts[j]
			if translated, ok := translations[el.ID]; ok && translated != el.Content {
				el.Content = translated
				changed++
			}
		}
	}
	return changed
}

// DetectionState is the lifecycle state of source language detection.
type DetectionState int

const (
	// DetectionUnset means nothing is selected or the selected text is blank.
	DetectionUnset DetectionState = iota
	// DetectionPending means a detection call is in flight.
	DetectionPending
	// DetectionResolved means the language label is known.
	DetectionResolved
	// DetectionFailed means the last detection call failed.
	DetectionFailed
)

var detectionStateNames = map[DetectionState]string{
	DetectionUnset:    "unset",
	DetectionPending:  "pending",
	DetectionResolved: "resolved",
	DetectionFailed:   "failed",
}

func (s DetectionState) String() string {
	if name, ok := detectionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DetectionState(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s DetectionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DetectionState) UnmarshalText(text []byte) error {
	for state, name := range detectionStateNames {
		if name == strings.ToLower(string(text)) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown detection state %q", text)
}

// Display labels shown for the non-resolved detection states.
const (
	LabelUnset   = "N/A"
	LabelPending = "Detecting..."
	LabelFailed  = "Detection failed"
)

// DetectedLanguage is the detected source language of the selected text.
type DetectedLanguage struct {
	State DetectionState `json:"state"`
	Label string         `json:"label,omitempty"` // Free-text language name, set when resolved
}

// Resolved reports whether a usable language label is available.
func (d DetectedLanguage) Resolved() bool {
	return d.State == DetectionResolved && d.Label != ""
}

// String returns the display label.
func (d DetectedLanguage) String() string {
	switch d.State {
	case DetectionPending:
		return LabelPending
	case DetectionResolved:
		return d.Label
	case DetectionFailed:
		return LabelFailed
	default:
		return LabelUnset
	}
}

// Severity classifies a user notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is user-visible feedback emitted by a session.
type Notification struct {
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
}

// Notifier receives user notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// TranslateResult summarizes a committed translate call.
type TranslateResult struct {
	Target     Language          `json:"target"`
	SourceLang string            `json:"source_lang"`
	Translated int               `json:"translated"` // Elements that received a translation
	Changed    int               `json:"changed"`    // Elements whose content actually changed
	Mapping    map[string]string `json:"mapping"`    // Element ID to translated text
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	Frames           Collection       `json:"frames"`
	Selected         []string         `json:"selected"`
	Detected         DetectedLanguage `json:"detected"`
	SourceLabel      string           `json:"source_label"`
	TextElementCount int              `json:"text_element_count"` // Elements in selected frames
}
