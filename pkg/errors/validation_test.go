package errors

import (
	"strings"
	"testing"
)

func TestValidateVertexID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "v1", false},
		{"valid with dash", "spot-12", false},
		{"valid unicode", "cellule-é", false},
		{"valid inner space", "AB a", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
		{"leading space", " v1", true},
		{"trailing space", "v1 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVertexID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVertexID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidVertexID) {
				t.Errorf("ValidateVertexID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidVertexID)
			}
		})
	}
}

func TestValidateAnchorLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"valid", "AB", false},
		{"valid with spaces", " AB ", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnchorLabel("north", tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnchorLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
		})
	}
}
