package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Marshal writes doc as JSON, the canonical wire format.
func Marshal(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

func Unmarshal(b []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	return &doc, nil
}

// MarshalYAML writes doc as YAML for scenes kept under version control or
// edited by hand.
func MarshalYAML(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

func UnmarshalYAML(b []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	return &doc, nil
}

// Decode picks the encoding from the first non-blank byte: JSON documents
// always open with '{'.
func Decode(b []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return Unmarshal(trimmed)
	}
	return UnmarshalYAML(b)
}
