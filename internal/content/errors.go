// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"strings"

	"profilcms/internal/model"
)

// ErrNotFound reports a missing item, translation or section.
var ErrNotFound = errors.New("tidak ditemukan")

// ErrLanguageNotFound reports a request for an unknown language code.
var ErrLanguageNotFound = errors.New("bahasa tidak ditemukan")

// ValidationError carries per-field validation failures. Field keys are
// "<lang>.<field>" for translation fields and the bare name otherwise.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validasi gagal"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validasi gagal: %s", strings.Join(keys, ", "))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks a translation set against a section config. The default
// language must have every required field filled in; other languages only
// need their required fields once they have any content at all.
func Validate(cfg Config, set *TranslationSet, defaultLang string) error {
	fields := make(map[string]string)
	for _, name := range cfg.RequiredFields {
		if TrimmedText(set.Get(defaultLang).field(name)) == "" {
			fields[defaultLang+"."+name] = "wajib diisi"
		}
	}
	for _, lang := range model.SupportedLanguageCodes {
		if lang == defaultLang || !set.HasContent(lang) {
			continue
		}
		for _, name := range cfg.RequiredFields {
			if TrimmedText(set.Get(lang).field(name)) == "" {
				fields[lang+"."+name] = "wajib diisi"
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
