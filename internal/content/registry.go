// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the generic content engine behind every
// section of the profile site. All sections share one storage shape;
// a Config describes which fields a section actually uses.
package content

import "profilcms/internal/model"

// Translation field names.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldBody     = "body"
	FieldCaption  = "caption"
)

// Config describes the shape of one content section. The admin
// front-end reads it to decide which form fields to render.
type Config struct {
	Section string `json:"section"`

	// RequiredFields are the translation fields that must be non-empty
	// (after stripping markup and whitespace) in the default language.
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields,omitempty"`

	HasSlug       bool `json:"has_slug"`       // public detail URL by slug
	HasPhoto      bool `json:"has_photo"`      // single foto field
	HasGallery    bool `json:"has_gallery"`    // fotos[] attachments
	HasUrutan     bool `json:"has_urutan"`     // manual ordering
	HasCategory   bool `json:"has_category"`
	HasPublish    bool `json:"has_publish"` // draft/publish + scheduling
	HasTahun      bool `json:"has_tahun"`
	HasLink       bool `json:"has_link"`
	HasActivities bool `json:"has_activities"` // kegiatan sub-items
	Singleton     bool `json:"singleton"`      // at most one item; list returns it alone
}

var registry = map[string]Config{
	model.SectionBerita: {
		Section:        model.SectionBerita,
		RequiredFields: []string{FieldTitle, FieldBody},
		OptionalFields: []string{FieldSubtitle},
		HasSlug:        true,
		HasPhoto:       true,
		HasCategory:    true,
		HasPublish:     true,
	},
	model.SectionBiografi: {
		Section:        model.SectionBiografi,
		RequiredFields: []string{FieldTitle, FieldBody},
		HasPhoto:       true,
		Singleton:      true,
	},
	model.SectionGaleri: {
		Section:        model.SectionGaleri,
		RequiredFields: []string{FieldTitle},
		OptionalFields: []string{FieldCaption},
		HasGallery:     true,
		HasUrutan:      true,
		HasCategory:    true,
	},
	model.SectionHero: {
		Section:        model.SectionHero,
		RequiredFields: []string{FieldTitle},
		OptionalFields: []string{FieldSubtitle},
		HasPhoto:       true,
		Singleton:      true,
	},
	model.SectionLogo: {
		Section:        model.SectionLogo,
		RequiredFields: []string{FieldTitle},
		HasPhoto:       true,
		HasUrutan:      true,
		HasLink:        true,
	},
	model.SectionPengalaman: {
		Section:        model.SectionPengalaman,
		RequiredFields: []string{FieldTitle},
		OptionalFields: []string{FieldSubtitle, FieldBody},
		HasPhoto:       true,
		HasGallery:     true,
		HasUrutan:      true,
		HasTahun:       true,
		HasActivities:  true,
	},
	model.SectionPublikasi: {
		Section:        model.SectionPublikasi,
		RequiredFields: []string{FieldTitle},
		OptionalFields: []string{FieldSubtitle, FieldBody},
		HasSlug:        true,
		HasTahun:       true,
		HasLink:        true,
		HasPublish:     true,
	},
	model.SectionRekamJejak: {
		Section:        model.SectionRekamJejak,
		RequiredFields: []string{FieldTitle},
		OptionalFields: []string{FieldBody},
		HasUrutan:      true,
		HasTahun:       true,
	},
	model.SectionSosialMedia: {
		Section:        model.SectionSosialMedia,
		RequiredFields: []string{FieldTitle},
		HasUrutan:      true,
		HasLink:        true,
	},
	model.SectionTentang: {
		Section:        model.SectionTentang,
		RequiredFields: []string{FieldBody},
		OptionalFields: []string{FieldTitle},
		HasPhoto:       true,
		Singleton:      true,
	},
	model.SectionTestimoni: {
		Section:        model.SectionTestimoni,
		RequiredFields: []string{FieldTitle, FieldBody},
		OptionalFields: []string{FieldSubtitle},
		HasPhoto:       true,
		HasUrutan:      true,
	},
}

// Lookup returns the section config, or ok=false for an unknown section.
func Lookup(section string) (Config, bool) {
	cfg, ok := registry[section]
	return cfg, ok
}

// Sections returns all registered section names in stable order.
func Sections() []string {
	return []string{
		model.SectionBerita,
		model.SectionBiografi,
		model.SectionGaleri,
		model.SectionHero,
		model.SectionLogo,
		model.SectionPengalaman,
		model.SectionPublikasi,
		model.SectionRekamJejak,
		model.SectionSosialMedia,
		model.SectionTentang,
		model.SectionTestimoni,
	}
}
