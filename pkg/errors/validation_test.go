package errors

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		code    Code
	}{
		{"https", "https://github.com/octocat/Hello-World", false, ""},
		{"http", "http://github.com/octocat", false, ""},

		{"empty", "", true, ErrCodeInvalidInput},
		{"blank", "   ", true, ErrCodeInvalidInput},
		{"ftp", "ftp://github.com/octocat", true, ErrCodeInvalidURL},
		{"javascript", "javascript:alert(1)", true, ErrCodeInvalidURL},
		{"no scheme", "github.com/octocat", true, ErrCodeInvalidURL},
		{"not a url", "not a url", true, ErrCodeInvalidURL},
		{"control char", "https://github.com/oct\x01cat", true, ErrCodeInvalidURL},
		{"too long", "https://github.com/" + strings.Repeat("a", 3000), true, ErrCodeInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, tt.code) {
				t.Errorf("ValidateURL(%q) code = %q, want %q", tt.input, GetCode(err), tt.code)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "package.json", false},
		{"valid nested", ".github/workflows", false},
		{"valid with dots", "v1.2.3/package.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidURL,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeNetwork,
		ErrCodeRateLimited,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
