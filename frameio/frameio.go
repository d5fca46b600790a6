// Package frameio loads and writes frame collections as JSON, YAML, or HTML.
package frameio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/framelai"
	"github.com/google/uuid"
)

// Format identifies a frame file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ParseFormat converts a user-supplied name ("yml", "HTML", ...) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported frame format %q", name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Load reads a frame collection from a file, choosing the format by extension.
// The path is provided by the caller and is intentionally user-controlled.
func Load(path string) (framelai.Collection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("reading frames: %w", err)
	}

	return Parse(bytes.NewReader(data), format)
}

// Parse decodes a collection, assigns IDs to frames and elements that lack
// one, and validates the result.
func Parse(r io.Reader, format Format) (framelai.Collection, error) {
	var (
		frames framelai.Collection
		err    error
	)

	switch format {
	case FormatJSON:
		frames, err = parseJSON(r)
	case FormatYAML:
		frames, err = parseYAML(r)
	case FormatHTML:
		frames, err = parseHTML(r)
	default:
		return nil, fmt.Errorf("unsupported frame format %q", format)
	}
	if err != nil {
		return nil, err
	}

	assignIDs(frames)

	if err := frames.Validate(); err != nil {
		return nil, &framelai.ProcessorError{
			Message:     "invalid frame collection",
			Cause:       err,
			ContentType: string(format),
		}
	}
	return frames, nil
}

// Write encodes a collection. lang is only used by HTML output, where it sets
// the document's lang and dir attributes; it may be empty.
func Write(w io.Writer, frames framelai.Collection, format Format, lang string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, frames)
	case FormatYAML:
		return writeYAML(w, frames)
	case FormatHTML:
		return RenderHTML(w, frames, lang)
	}
	return fmt.Errorf("unsupported frame format %q", format)
}

// assignIDs gives every frame and text element without an ID a random one.
func assignIDs(frames framelai.Collection) {
	for i := range frames {
		if frames[i].ID == "" {
			frames[i].ID = uuid.NewString()
		}
		if frames[i].Name == "" {
			frames[i].Name = frames[i].ID
		}
		for j := range frames[i].Texts {
			if frames[i].Texts[j].ID == "" {
				frames[i].Texts[j].ID = uuid.NewString()
			}
		}
	}
}
