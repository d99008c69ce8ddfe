// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Section names. Each is one content section of the profile site and shares
// the same generic item/translation storage.
const (
	SectionBerita      = "berita"
	SectionBiografi    = "biografi"
	SectionGaleri      = "galeri"
	SectionHero        = "hero"
	SectionLogo        = "logo"
	SectionPengalaman  = "pengalaman"
	SectionPublikasi   = "publikasi"
	SectionRekamJejak  = "rekam-jejak"
	SectionSosialMedia = "sosial-media"
	SectionTentang     = "tentang"
	SectionTestimoni   = "testimoni"
)

// ContentItem is one content record, identified by a numeric id stable
// across languages. Language-specific text lives in Translation rows;
// everything here is language-independent, including the slug.
type ContentItem struct {
	ID          int64          `json:"id"`
	Section     string         `json:"section"`
	Slug        sql.NullString `json:"-"`
	Urutan      int64          `json:"urutan"`
	Category    sql.NullString `json:"-"`
	IsPublished bool           `json:"is_published"`
	Foto        sql.NullString `json:"-"`
	Tahun       sql.NullInt64  `json:"-"`
	LinkURL     sql.NullString `json:"-"`
	PublishedAt sql.NullTime   `json:"-"`
	ScheduledAt sql.NullTime   `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Translation holds the language-specific text fields of one item in one
// language. A translation is addressed uniquely by (item id, language code).
type Translation struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	LanguageCode string    `json:"language_code"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Body         string    `json:"body,omitempty"`
	Caption      string    `json:"caption,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Photo is one attachment of a multi-photo item (galeri, pengalaman),
// ordered by urutan.
type Photo struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Path      string    `json:"path"`
	Urutan    int64     `json:"urutan"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is a kegiatan sub-item of a pengalaman record. Activities are
// displayed sorted by urutan; urutan is renumbered 1..n after every move
// or removal.
type Activity struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Name      string    `json:"name"`
	Urutan    int64     `json:"urutan"`
	CreatedAt time.Time `json:"created_at"`
}
