package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxCityNameLength bounds city names; real place names are far shorter.
const maxCityNameLength = 256

// ValidateCityName checks that a city name can be used as a graph key and
// as a label in DOT output.
//
// The rules are deliberately small:
//   - No empty names
//   - No control characters (they break DOT labels and terminals)
//   - Maximum length of 256 characters
func ValidateCityName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCity, "city name cannot be empty")
	}

	if len(name) > maxCityNameLength {
		return New(ErrCodeInvalidCity, "city name too long (max %d characters)", maxCityNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCity, "city name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateOutputPath validates a path an image will be written to.
// The extension must be one of allowed (without the dot, lower case).
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
//   - Extension must be in allowed
func ValidateOutputPath(path string, allowed ...string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}

	if len(allowed) == 0 {
		return nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "output %q must end in one of: .%s", path, strings.Join(allowed, ", ."))
}
