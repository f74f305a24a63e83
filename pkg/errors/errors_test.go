package errors

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestError(t *testing.T) {
	err := New(ErrCodeInvalidView, "unknown view %q", "4d")
	if got := err.Error(); got != `INVALID_VIEW: unknown view "4d"` {
		t.Errorf("Error() = %q", got)
	}

	cause := fmt.Errorf("boom")
	wrapped := Wrap(ErrCodeInternal, cause, "render")
	if !errors.Is(wrapped, cause) {
		t.Error("Wrap should preserve the cause for errors.Is")
	}
	if got := wrapped.Error(); got != "INTERNAL_ERROR: render: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeNotLayered, "layer first"))

	if !Is(err, ErrCodeNotLayered) {
		t.Error("Is should find the code through fmt wrapping")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match other codes")
	}
	if GetCode(err) != ErrCodeNotLayered {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode of a plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", fmt.Errorf("plain"), "plain"},
		{"coded", New(ErrCodeInvalidRoot, "bad root"), "bad root"},
		{"with cause", Wrap(ErrCodeDepthNotFound, fmt.Errorf("no nodes at depth: 4"), "depth 4"), "depth 4: no nodes at depth: 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cell.hoc")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code Code
	}{
		{"file", file, ""},
		{"empty", "", ErrCodeInvalidInput},
		{"missing", filepath.Join(dir, "nope.hoc"), ErrCodeFileNotFound},
		{"directory", dir, ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path)
			if GetCode(err) != tt.code {
				t.Errorf("ValidateInputPath(%q) = %v, want code %q", tt.path, err, tt.code)
			}
		})
	}
}

func TestValidateComponentID(t *testing.T) {
	for _, id := range []string{"0", "12", "007"} {
		if err := ValidateComponentID(id); err != nil {
			t.Errorf("ValidateComponentID(%q) = %v", id, err)
		}
	}
	for _, id := range []string{"", "a", "1a", "-1", " 1"} {
		if err := ValidateComponentID(id); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateComponentID(%q) = %v, want INVALID_INPUT", id, err)
		}
	}
}

func TestValidateOneOf(t *testing.T) {
	allowed := []string{"svg", "png"}
	if err := ValidateOneOf(ErrCodeInvalidFormat, "format", "svg", allowed); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateOneOf(ErrCodeInvalidFormat, "format", "gif", allowed)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
