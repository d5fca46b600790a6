package frameio

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/ZaguanLabs/framelai"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of JSON and YAML frame files.
type document struct {
	Frames framelai.Collection `json:"frames" yaml:"frames"`
}

// parseJSON accepts either {"frames": [...]} or a bare array of frames.
func parseJSON(r io.Reader) (framelai.Collection, error) {
	br := bufio.NewReader(r)
	bare, err := startsWithArray(br)
	if err != nil {
		return nil, decodeError("json", err)
	}

	dec := json.NewDecoder(br)
	dec.DisallowUnknownFields()

	if bare {
		var frames framelai.Collection
		if err := dec.Decode(&frames); err != nil {
			return nil, decodeError("json", err)
		}
		return frames, nil
	}

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError("json", err)
	}
	return doc.Frames, nil
}

func parseYAML(r io.Reader) (framelai.Collection, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return framelai.Collection{}, nil
		}
		return nil, decodeError("yaml", err)
	}
	return doc.Frames, nil
}

func writeJSON(w io.Writer, frames framelai.Collection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Frames: frames}); err != nil {
		return &framelai.ProcessorError{Message: "failed to encode frames", Cause: err, ContentType: "json"}
	}
	return nil
}

func writeYAML(w io.Writer, frames framelai.Collection) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Frames: frames}); err != nil {
		return &framelai.ProcessorError{Message: "failed to encode frames", Cause: err, ContentType: "yaml"}
	}
	if err := enc.Close(); err != nil {
		return &framelai.ProcessorError{Message: "failed to encode frames", Cause: err, ContentType: "yaml"}
	}
	return nil
}

// startsWithArray peeks past leading whitespace for a '['.
func startsWithArray(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return false, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return false, err
			}
		default:
			return b[0] == '[', nil
		}
	}
}

func decodeError(contentType string, err error) error {
	return &framelai.ProcessorError{
		Message:     "failed to decode frames",
		Cause:       err,
		ContentType: contentType,
	}
}
