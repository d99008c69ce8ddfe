// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Default content language codes seeded on first start.
const (
	LangIndonesian = "id"
	LangEnglish    = "en"
	LangRussian    = "ru"
)

// DefaultLanguageCode is the mandatory content language. Every item must
// carry an Indonesian translation before it can be saved.
const DefaultLanguageCode = LangIndonesian

// SupportedLanguageCodes lists the fixed language set, default first.
var SupportedLanguageCodes = []string{LangIndonesian, LangEnglish, LangRussian}

// Language represents a content language of the site.
type Language struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`        // ISO 639-1: id, en, ru
	Name       string    `json:"name"`        // Indonesian, English, Russian
	NativeName string    `json:"native_name"` // Bahasa Indonesia, English, Русский
	IsDefault  bool      `json:"is_default"`  // only one can be default
	IsActive   bool      `json:"is_active"`   // enabled for the site
	Position   int       `json:"position"`    // sort order in language switcher
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsSupportedLanguage reports whether code is one of the fixed language set.
func IsSupportedLanguage(code string) bool {
	for _, c := range SupportedLanguageCodes {
		if c == code {
			return true
		}
	}
	return false
}
