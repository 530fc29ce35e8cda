package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ivlev/mte/internal/model"
)

// ErrMalformedDocument is returned for payloads that are not JSON or carry
// no slides array.
var ErrMalformedDocument = errors.New("malformed project document")

// Export renders p as the exchanged JSON document.
func Export(p model.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

// Import parses an exchanged document. Anything without a "slides" array is
// rejected with ErrMalformedDocument.
func Import(data []byte) (model.Project, error) {
	var p model.Project

	var head map[string]json.RawMessage
	if err := json.Unmarshal(data, &head); err != nil {
		return p, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	raw, ok := head["slides"]
	if !ok {
		return p, fmt.Errorf("%w: missing slides", ErrMalformedDocument)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return p, fmt.Errorf("%w: slides is not an array", ErrMalformedDocument)
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return p, nil
}
