package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds vertex IDs and labels read from input files.
const maxIdentifierLength = 256

// ValidateVertexID validates a vertex identifier read from an input file.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters (IDs end up inside SVG, DOT and GraphML output)
//   - No surrounding whitespace
//   - Maximum length of 256 characters
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidVertexID, "vertex ID cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidVertexID, "vertex ID too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVertexID, "vertex ID %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidVertexID, "vertex ID %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateAnchorLabel validates a label used to look up an anchor vertex.
// Labels are matched verbatim, so only emptiness and length are checked.
func ValidateAnchorLabel(role, label string) error {
	if label == "" {
		return New(ErrCodeInvalidConfig, "%s anchor label cannot be empty", role)
	}
	if len(label) > maxIdentifierLength {
		return New(ErrCodeInvalidConfig, "%s anchor label too long (max %d characters)", role, maxIdentifierLength)
	}
	return nil
}
