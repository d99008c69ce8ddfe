// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/content"
	"profilcms/internal/middleware"
	"profilcms/internal/model"
	"profilcms/internal/store"
)

// ListLanguages handles GET /api/languages: the active language set for
// the front-end switcher.
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languages.Active(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, langs)
}

// SetLanguage handles POST /api/languages/{code}: persists the visitor's
// language choice in the cookie.
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	lang, ok := h.languages.ByCode(r.Context(), code)
	if !ok || !lang.IsActive {
		h.fail(w, r, content.ErrLanguageNotFound)
		return
	}
	middleware.SetLanguageCookie(w, lang.Code)
	writeData(w, http.StatusOK, lang)
}

// ListAllLanguages handles GET /api/admin/languages: every language,
// active or not.
func (h *Handler) ListAllLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.languages.All(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, langs)
}

// languageRequest carries the mutable language fields; absent fields are
// left untouched.
type languageRequest struct {
	Name       *string `json:"name"`
	NativeName *string `json:"native_name"`
	IsActive   *bool   `json:"is_active"`
	Position   *int    `json:"position"`
}

// UpdateLanguage handles PUT /api/admin/languages/{code}.
func (h *Handler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.adminLanguage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req languageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		h.badRequest(w, r, fmt.Errorf("decoding language: %w", err))
		return
	}
	p := store.UpdateLanguageParams{
		ID:         lang.ID,
		Name:       lang.Name,
		NativeName: lang.NativeName,
		IsActive:   lang.IsActive,
		Position:   lang.Position,
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.NativeName != nil {
		p.NativeName = *req.NativeName
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Position != nil {
		p.Position = *req.Position
	}
	if lang.IsDefault && !p.IsActive {
		h.badRequest(w, r, fmt.Errorf("the default language cannot be deactivated"))
		return
	}

	if err := h.queries.UpdateLanguage(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	h.languages.Invalidate()
	h.log.Info("language updated", "category", model.EventCategoryConfig, "code", lang.Code)

	updated, err := h.queries.GetLanguageByCode(r.Context(), lang.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// SetDefaultLanguage handles POST /api/admin/languages/{code}/default.
func (h *Handler) SetDefaultLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.adminLanguage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.queries.SetDefaultLanguage(r.Context(), lang.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.languages.Invalidate()
	h.log.Info("default language changed", "category", model.EventCategoryConfig, "code", lang.Code)

	updated, err := h.queries.GetLanguageByCode(r.Context(), lang.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// DeleteLanguage handles DELETE /api/admin/languages/{code}. The default
// language cannot be removed.
func (h *Handler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := h.adminLanguage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if lang.IsDefault {
		h.badRequest(w, r, fmt.Errorf("the default language cannot be deleted"))
		return
	}
	if err := h.queries.DeleteLanguage(r.Context(), lang.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.languages.Invalidate()
	h.log.Info("language deleted", "category", model.EventCategoryConfig, "code", lang.Code)
	writeMessage(w, http.StatusOK, h.catalog.T(h.contextLangCode(r), "message.deleted"))
}

// adminLanguage loads the language addressed by the {code} route param.
func (h *Handler) adminLanguage(r *http.Request) (model.Language, error) {
	lang, err := h.queries.GetLanguageByCode(r.Context(), chi.URLParam(r, "code"))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Language{}, content.ErrNotFound
	}
	return lang, err
}

// Search handles GET /api/search?q= over published news.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	lang, err := h.requestLang(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.search.Query(r.Context(), r.URL.Query().Get("q"), lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}
