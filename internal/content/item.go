// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"profilcms/internal/model"
	"profilcms/internal/util"
)

// Item is the API view of one content record: the language-independent
// fields, the full translations array, and the requested language's text
// flattened on top. When the requested language has no record the default
// language's text is used instead, per item.
type Item struct {
	ID          int64  `json:"id"`
	Section     string `json:"section"`
	Slug        string `json:"slug,omitempty"`
	Urutan      int64  `json:"urutan,omitempty"`
	Category    string `json:"category,omitempty"`
	IsPublished bool   `json:"is_published"`
	Foto        string `json:"foto,omitempty"`
	Tahun       *int64 `json:"tahun,omitempty"`
	LinkURL     string `json:"link_url,omitempty"`

	// Flattened from the requested (or fallback) language.
	Language string `json:"language_code"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
	Caption  string `json:"caption,omitempty"`

	Translations []Fields        `json:"translations"`
	Fotos        []model.Photo   `json:"fotos,omitempty"`
	Kegiatan     []KegiatanEntry `json:"kegiatan,omitempty"`

	PublishedAt string `json:"published_at,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// KegiatanEntry is one activity of a pengalaman item as serialized to the API.
type KegiatanEntry struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Urutan int64  `json:"urutan"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// BuildItem assembles the API view from storage rows. lang selects the
// flattened text; when that language is absent the default language wins.
func BuildItem(it model.ContentItem, trs []model.Translation, photos []model.Photo, acts []model.Activity, lang string) Item {
	out := Item{
		ID:          it.ID,
		Section:     it.Section,
		Slug:        it.Slug.String,
		Urutan:      it.Urutan,
		Category:    it.Category.String,
		IsPublished: it.IsPublished,
		Foto:        it.Foto.String,
		LinkURL:     it.LinkURL.String,
		Fotos:       photos,
		CreatedAt:   it.CreatedAt.Format(timeLayout),
		UpdatedAt:   it.UpdatedAt.Format(timeLayout),
	}
	if it.Tahun.Valid {
		tahun := it.Tahun.Int64
		out.Tahun = &tahun
	}
	if it.PublishedAt.Valid {
		out.PublishedAt = it.PublishedAt.Time.Format(timeLayout)
	}
	if it.ScheduledAt.Valid {
		out.ScheduledAt = it.ScheduledAt.Time.Format(timeLayout)
	}

	out.Translations = make([]Fields, 0, len(trs))
	var selected, fallback *model.Translation
	for i := range trs {
		tr := &trs[i]
		out.Translations = append(out.Translations, Fields{
			LanguageCode: tr.LanguageCode,
			Title:        tr.Title,
			Subtitle:     tr.Subtitle,
			Body:         tr.Body,
			Caption:      tr.Caption,
		})
		switch tr.LanguageCode {
		case lang:
			selected = tr
		case model.DefaultLanguageCode:
			fallback = tr
		}
	}
	if selected == nil {
		selected = fallback
	}
	if selected != nil {
		out.Language = selected.LanguageCode
		out.Title = selected.Title
		out.Subtitle = selected.Subtitle
		out.Body = selected.Body
		out.Caption = selected.Caption
	}

	for _, a := range acts {
		out.Kegiatan = append(out.Kegiatan, KegiatanEntry{ID: a.ID, Name: a.Name, Urutan: a.Urutan})
	}
	return out
}

// AutoSlug derives the item slug from the default-language title when the
// provided slug is blank. Sections without slug support always get none.
func AutoSlug(cfg Config, slug string, set *TranslationSet) string {
	if !cfg.HasSlug {
		return ""
	}
	return util.SlugIfEmpty(slug, set.Get(model.DefaultLanguageCode).Title)
}
