// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/content"
	"profilcms/internal/uikit"
)

// ListSections handles GET /api/sections: the section registry, read by
// the admin front-end to build its forms.
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	names := content.Sections()
	configs := make([]content.Config, 0, len(names))
	for _, name := range names {
		cfg, _ := content.Lookup(name)
		configs = append(configs, cfg)
	}
	writeData(w, http.StatusOK, configs)
}

// ListSection handles GET /api/{section}. Admin requests see drafts;
// the public route passes publishedOnly.
func (h *Handler) ListSection(publishedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "section")
		if _, ok := content.Lookup(section); !ok {
			h.fail(w, r, content.ErrNotFound)
			return
		}
		lang, err := h.requestLang(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		q := r.URL.Query()
		page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
		limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
		if limit <= 0 {
			limit = uikit.DefaultPageSize
		}
		if limit > uikit.MaxPageSize {
			limit = uikit.MaxPageSize
		}
		if page <= 0 {
			page = 1
		}

		opts := content.ListOptions{
			Search:        q.Get("search"),
			Lang:          lang,
			PublishedOnly: publishedOnly,
			Limit:         limit,
			Offset:        (page - 1) * limit,
		}
		items, total, err := h.content.List(r.Context(), section, opts)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		p := uikit.Paginate(page, limit, total)
		if p.Page != page {
			// requested page was past the end; serve the clamped page
			opts.Offset = p.Offset()
			if items, _, err = h.content.List(r.Context(), section, opts); err != nil {
				h.fail(w, r, err)
				return
			}
		}
		writeList(w, items, p)
	}
}

// GetSectionItem handles GET /api/{section}/{id}.
func (h *Handler) GetSectionItem(publishedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "section")
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.fail(w, r, content.ErrNotFound)
			return
		}
		lang, err := h.requestLang(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		item, err := h.content.Get(r.Context(), section, id, lang)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if publishedOnly && !item.IsPublished {
			h.fail(w, r, content.ErrNotFound)
			return
		}
		writeData(w, http.StatusOK, item)
	}
}

// GetSectionItemBySlug handles GET /api/{section}/slug/{slug}.
func (h *Handler) GetSectionItemBySlug(publishedOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "section")
		lang, err := h.requestLang(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		item, err := h.content.GetBySlug(r.Context(), section, chi.URLParam(r, "slug"), lang)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if publishedOnly && !item.IsPublished {
			h.fail(w, r, content.ErrNotFound)
			return
		}
		writeData(w, http.StatusOK, item)
	}
}

// CreateSectionItem handles POST /api/{section} (multipart).
func (h *Handler) CreateSectionItem(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if _, ok := content.Lookup(section); !ok {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	in, extra, err := h.parseItemForm(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	item, err := h.content.Create(r.Context(), section, in)
	if err != nil {
		h.discardUploads(in, extra)
		h.fail(w, r, err)
		return
	}
	item, err = h.attachGalleryUploads(r, item, section, extra)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

// UpdateSectionItem handles PUT /api/{section}/{id} (multipart). Fields
// absent from the form are left untouched.
func (h *Handler) UpdateSectionItem(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	in, extra, err := h.parseItemForm(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var oldFoto string
	if in.Foto != nil {
		if prev, err := h.content.Get(r.Context(), section, id, ""); err == nil {
			oldFoto = prev.Foto
		}
	}

	item, err := h.content.Update(r.Context(), section, id, in)
	if err != nil {
		h.discardUploads(in, extra)
		h.fail(w, r, err)
		return
	}
	if oldFoto != "" && in.Foto != nil && oldFoto != *in.Foto {
		h.media.Remove(oldFoto)
	}
	item, err = h.attachGalleryUploads(r, item, section, extra)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

// DeleteSectionItem handles DELETE /api/{section}/{id}. Stored photos
// are removed after the row delete succeeds.
func (h *Handler) DeleteSectionItem(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	item, err := h.content.Get(r.Context(), section, id, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.content.Delete(r.Context(), section, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.media.Remove(item.Foto)
	for _, p := range item.Fotos {
		h.media.Remove(p.Path)
	}
	lang := h.contextLangCode(r)
	writeMessage(w, http.StatusOK, h.catalog.T(lang, "message.deleted"))
}

// AddSectionPhoto handles POST /api/{section}/{id}/fotos for gallery
// sections.
func (h *Handler) AddSectionPhoto(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.badRequest(w, r, err)
		return
	}
	file, header, err := r.FormFile("foto")
	if err != nil {
		h.badRequest(w, r, fmt.Errorf("missing foto part: %w", err))
		return
	}
	defer file.Close()

	path, err := h.media.Store(file, header)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	photo, err := h.content.AddPhoto(r.Context(), section, id, path)
	if err != nil {
		h.media.Remove(path)
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, photo)
}

// DeleteSectionPhoto handles DELETE /api/{section}/{id}/fotos/{photoID}.
func (h *Handler) DeleteSectionPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	path, err := h.content.RemovePhoto(r.Context(), photoID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.media.Remove(path)
	lang := h.contextLangCode(r)
	writeMessage(w, http.StatusOK, h.catalog.T(lang, "message.deleted"))
}

// TranslateSectionItem handles POST /api/{section}/{id}/translate?target=xx:
// machine-translates the default-language fields into the target language
// and saves the result on the item.
func (h *Handler) TranslateSectionItem(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, content.ErrNotFound)
		return
	}
	target := r.URL.Query().Get("target")
	if !h.languages.IsActive(r.Context(), target) {
		h.fail(w, r, content.ErrLanguageNotFound)
		return
	}
	if !h.translator.Enabled() {
		h.badRequest(w, r, fmt.Errorf("translation is not configured"))
		return
	}

	item, err := h.content.Get(r.Context(), section, id, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var source *content.Fields
	for i := range item.Translations {
		if item.Translations[i].LanguageCode == h.languages.Default(r.Context()).Code {
			source = &item.Translations[i]
			break
		}
	}
	if source == nil {
		h.badRequest(w, r, fmt.Errorf("item has no source translation"))
		return
	}

	translated, err := h.translator.Translate(r.Context(), *source, target)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	set, err := content.FromFields(append(item.Translations, translated))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	item, err = h.content.Update(r.Context(), section, id, content.Input{Translations: set})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

const maxFormMemory = 32 << 20

// parseItemForm decodes the multipart item form shared by create and
// update. The translations field carries a JSON array of per-language
// fields; scalars arrive as plain form values and stay nil when absent.
func (h *Handler) parseItemForm(r *http.Request) (content.Input, []*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return content.Input{}, nil, fmt.Errorf("parsing form: %w", err)
	}
	var in content.Input

	if raw := r.FormValue("translations"); raw != "" {
		var fields []content.Fields
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return in, nil, fmt.Errorf("decoding translations: %w", err)
		}
		set, err := content.FromFields(fields)
		if err != nil {
			return in, nil, err
		}
		in.Translations = set
	}

	form := r.MultipartForm.Value
	if v, ok := formValue(form, "slug"); ok {
		in.Slug = &v
	}
	if v, ok := formValue(form, "category"); ok {
		in.Category = &v
	}
	if v, ok := formValue(form, "link_url"); ok {
		in.LinkURL = &v
	}
	if v, ok := formValue(form, "urutan"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, nil, fmt.Errorf("invalid urutan %q", v)
		}
		in.Urutan = &n
	}
	if v, ok := formValue(form, "tahun"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, nil, fmt.Errorf("invalid tahun %q", v)
		}
		in.Tahun = &n
	}
	if v, ok := formValue(form, "is_published"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return in, nil, fmt.Errorf("invalid is_published %q", v)
		}
		in.IsPublished = &b
	}
	if v, ok := formValue(form, "scheduled_at"); ok {
		if v == "" {
			in.ScheduledAt = &time.Time{}
		} else {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return in, nil, fmt.Errorf("invalid scheduled_at %q", v)
			}
			in.ScheduledAt = &t
		}
	}
	if raw, ok := formValue(form, "kegiatan"); ok {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return in, nil, fmt.Errorf("decoding kegiatan: %w", err)
		}
		if names == nil {
			names = []string{}
		}
		in.Kegiatan = names
	}

	if file, header, err := r.FormFile("foto"); err == nil {
		defer file.Close()
		path, err := h.media.Store(file, header)
		if err != nil {
			return in, nil, err
		}
		in.Foto = &path
	}

	var gallery []*multipart.FileHeader
	if r.MultipartForm.File != nil {
		gallery = r.MultipartForm.File["fotos[]"]
	}
	return in, gallery, nil
}

func formValue(form map[string][]string, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

// attachGalleryUploads stores any fotos[] parts against the item and
// returns the refreshed item.
func (h *Handler) attachGalleryUploads(r *http.Request, item content.Item, section string, headers []*multipart.FileHeader) (content.Item, error) {
	if len(headers) == 0 {
		return item, nil
	}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return item, err
		}
		path, err := h.media.Store(file, header)
		_ = file.Close()
		if err != nil {
			return item, err
		}
		if _, err := h.content.AddPhoto(r.Context(), section, item.ID, path); err != nil {
			h.media.Remove(path)
			return item, err
		}
	}
	return h.content.Get(r.Context(), section, item.ID, item.Language)
}

// discardUploads removes files stored while parsing a form whose write
// then failed.
func (h *Handler) discardUploads(in content.Input, _ []*multipart.FileHeader) {
	if in.Foto != nil {
		h.media.Remove(*in.Foto)
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	lang := h.contextLangCode(r)
	h.log.Warn("bad api request", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadRequest, CodeBadRequest, h.catalog.T(lang, "error.bad_request"), nil)
}
