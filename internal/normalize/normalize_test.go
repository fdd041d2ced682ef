package normalize

import (
	"strings"
	"testing"
)

func TestPaletteName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unchanged", "Vivid Dream", "Vivid Dream"},
		{"trim", "  Ocean Pulse  ", "Ocean Pulse"},
		{"collapse whitespace", "Misty \t\n Forest", "Misty Forest"},
		{"drop control", "Neon\x00Glow", "NeonGlow"},
		{"compose", "Crème", "Crème"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PaletteName(tt.input)
			if result != tt.expected {
				t.Errorf("PaletteName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestPaletteName_Truncates(t *testing.T) {
	result := PaletteName(strings.Repeat("é", MaxNameLength+10))
	if n := len([]rune(result)); n != MaxNameLength {
		t.Errorf("expected %d runes, got %d", MaxNameLength, n)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Crème Brûlée", "creme brulee"},
		{"SUNSET", "sunset"},
		{"Ångström", "angstrom"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Fold(tt.input)
			if result != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces", "Sunset Glow", "sunset-glow"},
		{"accents", "Crème Brûlée!", "creme-brulee"},
		{"punctuation", "Retro/Pop -- 2", "retro-pop-2"},
		{"emoji only", "🎨", "palette"},
		{"empty", "", "palette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slug(tt.input, "palette")
			if result != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
