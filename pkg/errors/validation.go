package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates a local file path supplied on the command line or in
// a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateChoice checks that value is one of allowed. The kind names the
// setting in the error message (e.g. "format", "theme").
func ValidateChoice(kind, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	code := ErrCodeInvalidInput
	if kind == "format" {
		code = ErrCodeInvalidFormat
	}
	return New(code, "invalid %s: %s (must be one of %s)", kind, value, quoteJoin(allowed))
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
