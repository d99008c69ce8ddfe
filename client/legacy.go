// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package client

// LegacyFields is the flat single-language record shape of the previous
// site's exports (judul/isi columns, Indonesian only). It adapts old
// dumps to the translated item payload.
type LegacyFields struct {
	Judul      string `json:"judul"`
	Subjudul   string `json:"subjudul,omitempty"`
	Isi        string `json:"isi,omitempty"`
	Keterangan string `json:"keterangan,omitempty"`
}

// Translations converts the legacy record into a translation slice for
// lang; an empty lang maps to the default language.
func (l LegacyFields) Translations(lang string) []Fields {
	if lang == "" {
		lang = DefaultLanguage
	}
	return []Fields{{
		LanguageCode: lang,
		Title:        l.Judul,
		Subtitle:     l.Subjudul,
		Body:         l.Isi,
		Caption:      l.Keterangan,
	}}
}
