package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds entity and group names.
const maxNameLength = 256

// ValidateName validates an entity or group name.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters (they break SVG text and element ids)
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name %q contains control characters", name)
		}
	}
	return nil
}

// workbookExtensions lists the document types accepted as input.
var workbookExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateWorkbookPath checks that path names a supported workbook document.
func ValidateWorkbookPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "input path contains invalid characters")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !workbookExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported input %q (must be .json, .yaml, .yml or .toml)", filepath.Base(path))
	}
	return nil
}

// ValidateOutputPath validates a path an export will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}
	return nil
}
