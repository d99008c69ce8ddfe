// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"fmt"
	"strings"
)

// Fields is one language's text of a content item.
type Fields struct {
	LanguageCode string `json:"language_code"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Body         string `json:"body,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// Blank reports whether every text field is empty after trimming.
func (f Fields) Blank() bool {
	return strings.TrimSpace(f.Title) == "" &&
		strings.TrimSpace(f.Subtitle) == "" &&
		strings.TrimSpace(f.Body) == "" &&
		strings.TrimSpace(f.Caption) == ""
}

// Photo is one gallery attachment.
type Photo struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"item_id"`
	Path   string `json:"path"`
	Urutan int64  `json:"urutan"`
}

// Kegiatan is one activity of a pengalaman item.
type Kegiatan struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Urutan int64  `json:"urutan"`
}

// Item is one content record as returned by the API: the requested
// language flattened on top, the full translation set below.
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

	Language string `json:"language_code"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
	Caption  string `json:"caption,omitempty"`

	Translations []Fields   `json:"translations"`
	Fotos        []Photo    `json:"fotos,omitempty"`
	Kegiatan     []Kegiatan `json:"kegiatan,omitempty"`

	PublishedAt string `json:"published_at,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Language is one entry of the instance's language table.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsDefault  bool   `json:"is_default"`
	IsActive   bool   `json:"is_active"`
	Position   int64  `json:"position"`
}

// Pagination is the list envelope's paging block.
type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ValidationError is raised client-side before any network traffic when
// an input cannot possibly be accepted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// MessageInput is a contact form submission.
type MessageInput struct {
	Nama         string `json:"nama"`
	Email        string `json:"email"`
	Subjek       string `json:"subjek,omitempty"`
	Isi          string `json:"isi"`
	CaptchaToken string `json:"captcha_token,omitempty"`
}

// Validate checks the required contact fields.
func (m MessageInput) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(m.Nama) == "" {
		fields["nama"] = "wajib diisi"
	}
	if strings.TrimSpace(m.Email) == "" {
		fields["email"] = "wajib diisi"
	}
	if strings.TrimSpace(m.Isi) == "" {
		fields["isi"] = "wajib diisi"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ItemInput is a create or update payload. Nil pointers leave the field
// untouched on update.
type ItemInput struct {
	Translations []Fields
	Slug         *string
	Urutan       *int64
	Category     *string
	IsPublished  *bool
	Tahun        *int64
	LinkURL      *string
	ScheduledAt  *string // RFC 3339
	Kegiatan     []string

	// Foto uploads one primary photo; Fotos upload gallery photos.
	Foto  *Upload
	Fotos []Upload
}

// Upload is one file part of a multipart item payload.
type Upload struct {
	Filename string
	Data     []byte
}

// validateTranslations refuses payloads the server is certain to reject:
// a translation set without default-language content never goes on the wire.
func (in ItemInput) validateTranslations() error {
	for _, f := range in.Translations {
		if f.LanguageCode == DefaultLanguage && !f.Blank() {
			return nil
		}
	}
	return &ValidationError{Fields: map[string]string{
		DefaultLanguage: "wajib diisi",
	}}
}
