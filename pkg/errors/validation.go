package errors

import (
	"os"
	"slices"
	"strings"
)

// ValidateInputPath checks that path names a readable regular file.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "input path cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Wrap(ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "input %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidInput, "input %s is a directory", path)
	}
	return nil
}

// ValidateComponentID checks that id is a non-empty string of digits, the
// only form a filament_<id>[...] header can carry.
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "component id %q must be numeric", id)
		}
	}
	return nil
}

// ValidateOneOf checks that value is among allowed, reporting failures with
// code and the list of allowed values.
func ValidateOneOf(code Code, what, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(code, "invalid %s: %q (must be one of %s)", what, value, strings.Join(allowed, ", "))
}
