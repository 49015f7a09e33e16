package errors

import (
	"strings"
	"unicode"
)

const (
	maxNodeIDLength   = 1024
	maxAttrNameLength = 64
	maxPathLength     = 4096
)

// ValidateNodeID validates a node identifier taken from untrusted input
// (JSON or DOT documents, HTTP request bodies).
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No null bytes or control characters other than tab
//   - Maximum length of 1024 bytes
//
// Node IDs end up in SVG attributes and Graphviz input, both of which are
// escaped separately; these checks only reject input that cannot be a label.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node ID too long (max %d bytes)", maxNodeIDLength)
	}
	for _, r := range id {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID %q contains control characters", id)
		}
	}
	return nil
}

// ValidateAttrName validates an attribute key. Keys must be non-empty,
// short, and made of letters, digits, '_' or '-'.
func ValidateAttrName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "attribute name cannot be empty")
	}
	if len(name) > maxAttrNameLength {
		return New(ErrCodeInvalidInput, "attribute name too long (max %d characters)", maxAttrNameLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return New(ErrCodeInvalidInput, "attribute name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}
	return nil
}
