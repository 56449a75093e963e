package errors

import (
	"strings"
	"unicode"
)

// ValidateProductName validates a product name used to locate
// <configs>/<name>.config and report<name>.xml files.
// It rejects names that could be used for path traversal.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateProductName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "product name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "product name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "product name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "product name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFeatureName validates a feature name read from a product
// configuration or scenario map. Names are single-line and non-empty.
func ValidateFeatureName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "feature name cannot be empty")
	}

	for _, r := range name {
		if r == '\n' || r == '\r' || r == '\x00' {
			return New(ErrCodeInvalidInput, "feature name %q spans lines or contains null bytes", name)
		}
	}

	return nil
}

// ValidatePath validates a project-relative path from the configuration file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
