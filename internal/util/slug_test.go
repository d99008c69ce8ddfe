package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Halo Dunia",
			expected: "halo-dunia",
		},
		{
			name:     "punctuation and year",
			input:    "Berita Baru! 2024",
			expected: "berita-baru-2024",
		},
		{
			name:     "with special characters",
			input:    "Kunjungan Kerja, Jakarta!",
			expected: "kunjungan-kerja-jakarta",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "with multiple spaces",
			input:    "Halo   Dunia",
			expected: "halo-dunia",
		},
		{
			name:     "with hyphens",
			input:    "Halo - Dunia",
			expected: "halo-dunia",
		},
		{
			name:     "leading and trailing spaces",
			input:    "  Halo Dunia  ",
			expected: "halo-dunia",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed case",
			input:    "HaLo DuNia",
			expected: "halo-dunia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugIfEmpty(t *testing.T) {
	// Auto-slug only fires while the slug field is still empty.
	if got := SlugIfEmpty("", "Berita Baru! 2024"); got != "berita-baru-2024" {
		t.Errorf("SlugIfEmpty empty = %q, want %q", got, "berita-baru-2024")
	}
	if got := SlugIfEmpty("sudah-ada", "Berita Baru! 2024"); got != "sudah-ada" {
		t.Errorf("SlugIfEmpty existing = %q, want %q", got, "sudah-ada")
	}
	if got := SlugIfEmpty("   ", "Judul Lain"); got != "judul-lain" {
		t.Errorf("SlugIfEmpty whitespace = %q, want %q", got, "judul-lain")
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"halo-dunia", true},
		{"berita-123", true},
		{"123", true},
		{"", false},
		{"Halo-Dunia", false},
		{"halo dunia", false},
		{"halo!dunia", false},
		{"-halo", false},
		{"halo-", false},
		{"halo--dunia", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidLangCode(t *testing.T) {
	valid := []string{"id", "en", "ru"}
	for _, code := range valid {
		if !IsValidLangCode(code) {
			t.Errorf("IsValidLangCode(%q) = false, want true", code)
		}
	}
	invalid := []string{"", "i", "ind", "ID", "1d"}
	for _, code := range invalid {
		if IsValidLangCode(code) {
			t.Errorf("IsValidLangCode(%q) = true, want false", code)
		}
	}
}
