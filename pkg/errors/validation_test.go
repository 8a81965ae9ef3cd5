package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Alice", false},
		{"valid with spaces", "Local fishery board", false},
		{"valid ideographic", "地方漁會", false},
		{"valid punctuation", "R&D (north)", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkbookPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"json", "data/map.json", ""},
		{"yaml", "map.yaml", ""},
		{"yml upper", "MAP.YML", ""},
		{"toml", "map.toml", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"xlsx", "map.xlsx", ErrCodeInvalidFormat},
		{"no extension", "map", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkbookPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateWorkbookPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"file", "qualitative-map.svg", false},
		{"nested", "out/map.pdf", false},

		{"empty", "", true},
		{"directory", "out/", true},
		{"control char", "map\x07.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
