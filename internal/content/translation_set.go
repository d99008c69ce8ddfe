// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"profilcms/internal/model"
)

var stripPolicy = bluemonday.StrictPolicy()

// TrimmedText strips HTML markup from s and trims surrounding whitespace.
// It decides whether a field counts as "filled in".
func TrimmedText(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// Fields holds one language's text fields of an item.
type Fields struct {
	LanguageCode string `json:"language_code"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Body         string `json:"body,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// field returns the named field's value.
func (f Fields) field(name string) string {
	switch name {
	case FieldTitle:
		return f.Title
	case FieldSubtitle:
		return f.Subtitle
	case FieldBody:
		return f.Body
	case FieldCaption:
		return f.Caption
	}
	return ""
}

// TranslationSet collects per-language form state for one item. It always
// carries a record per supported language so form handling never has to
// special-case a missing language.
type TranslationSet struct {
	records map[string]*Fields
}

// NewTranslationSet returns a set with an empty record per supported language.
func NewTranslationSet() *TranslationSet {
	s := &TranslationSet{records: make(map[string]*Fields, len(model.SupportedLanguageCodes))}
	for _, code := range model.SupportedLanguageCodes {
		s.records[code] = &Fields{LanguageCode: code}
	}
	return s
}

// SetField writes one field of one language.
func (s *TranslationSet) SetField(lang, field, value string) error {
	rec, ok := s.records[lang]
	if !ok {
		return fmt.Errorf("unsupported language %q", lang)
	}
	switch field {
	case FieldTitle:
		rec.Title = value
	case FieldSubtitle:
		rec.Subtitle = value
	case FieldBody:
		rec.Body = value
	case FieldCaption:
		rec.Caption = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Set replaces a whole language record.
func (s *TranslationSet) Set(f Fields) error {
	if _, ok := s.records[f.LanguageCode]; !ok {
		return fmt.Errorf("unsupported language %q", f.LanguageCode)
	}
	rec := f
	s.records[f.LanguageCode] = &rec
	return nil
}

// Get returns the record for a language; a zero Fields for unknown codes.
func (s *TranslationSet) Get(lang string) Fields {
	if rec, ok := s.records[lang]; ok {
		return *rec
	}
	return Fields{LanguageCode: lang}
}

// HasContent reports whether any user-facing field of the language is
// non-empty after markup and whitespace trimming.
func (s *TranslationSet) HasContent(lang string) bool {
	rec, ok := s.records[lang]
	if !ok {
		return false
	}
	for _, name := range []string{FieldTitle, FieldSubtitle, FieldBody, FieldCaption} {
		if TrimmedText(rec.field(name)) != "" {
			return true
		}
	}
	return false
}

// Flatten returns the filled-in languages in fixed order (id, en, ru),
// dropping languages with no content. The result is what gets persisted
// or serialized.
func (s *TranslationSet) Flatten() []Fields {
	var out []Fields
	for _, code := range model.SupportedLanguageCodes {
		if s.HasContent(code) {
			out = append(out, *s.records[code])
		}
	}
	return out
}

// FromFields builds a set from a decoded translations array. Records for
// unsupported languages are rejected.
func FromFields(fields []Fields) (*TranslationSet, error) {
	s := NewTranslationSet()
	for _, f := range fields {
		if err := s.Set(f); err != nil {
			return nil, err
		}
	}
	return s, nil
}
