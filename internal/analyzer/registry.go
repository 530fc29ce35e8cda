package analyzer

import "fmt"

// NewDetector creates a detector based on the specified variant. "none"
// yields a nil detector, which disables block detection.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
