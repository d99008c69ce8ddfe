// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api implements the REST API consumed by the React admin app
// and the public site widgets.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"profilcms/internal/cache"
	"profilcms/internal/content"
	"profilcms/internal/i18n"
	"profilcms/internal/middleware"
	"profilcms/internal/search"
	"profilcms/internal/service"
	"profilcms/internal/store"
	"profilcms/internal/uikit"
)

// Error codes carried in API error responses. The admin front-end keys
// its retry and form handling on these.
const (
	CodeNotFound         = "not_found"
	CodeLanguageNotFound = "language_not_found"
	CodeValidation       = "validation_error"
	CodeUnauthorized     = "unauthorized"
	CodeRateLimited      = "rate_limited"
	CodeCaptcha          = "captcha_failed"
	CodeBadRequest       = "bad_request"
	CodeServer           = "server_error"
)

// Handler bundles the dependencies of all API endpoints.
type Handler struct {
	content    *content.Service
	search     *search.Service
	queries    *store.Queries
	languages  *cache.Languages
	catalog    *i18n.Catalog
	media      *service.Media
	captcha    *service.Captcha
	translator *service.Translator
	geoip      *service.GeoIP
	sessions   *scs.SessionManager
	log        *slog.Logger
}

// Config wires a Handler.
type Config struct {
	DB         *sql.DB
	Content    *content.Service
	Search     *search.Service
	Languages  *cache.Languages
	Catalog    *i18n.Catalog
	Media      *service.Media
	Captcha    *service.Captcha
	Translator *service.Translator
	GeoIP      *service.GeoIP
	Sessions   *scs.SessionManager
	Log        *slog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		content:    cfg.Content,
		search:     cfg.Search,
		queries:    store.New(cfg.DB),
		languages:  cfg.Languages,
		catalog:    cfg.Catalog,
		media:      cfg.Media,
		captcha:    cfg.Captcha,
		translator: cfg.Translator,
		geoip:      cfg.GeoIP,
		sessions:   cfg.Sessions,
		log:        cfg.Log,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": true, "message": message})
}

func writeList(w http.ResponseWriter, data any, p uikit.Pagination) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	body := map[string]any{"success": false, "code": code, "message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	writeJSON(w, status, body)
}

// fail maps service errors onto the API error envelope, localized for
// the request language.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	lang := middleware.LanguageFromContext(r.Context()).Code

	var ve *content.ValidationError
	switch {
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, h.catalog.T(lang, "error.not_found"), nil)
	case errors.Is(err, content.ErrLanguageNotFound):
		writeError(w, http.StatusBadRequest, CodeLanguageNotFound, h.catalog.T(lang, "error.language_not_found"), nil)
	case errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, CodeValidation, h.catalog.T(lang, "error.validation"), ve.Fields)
	default:
		h.log.Error("api request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, CodeServer, h.catalog.T(lang, "error.server"), nil)
	}
}

// Unauthorized writes the 401 envelope; used by the auth middleware too.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context()).Code
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, h.catalog.T(lang, "error.unauthorized"), nil)
}

// RateLimited writes the 429 envelope for the rate-limit middleware.
func (h *Handler) RateLimited(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context()).Code
	writeError(w, http.StatusTooManyRequests, CodeRateLimited, h.catalog.T(lang, "error.rate_limited"), nil)
}

// contextLangCode is the middleware-detected language for error text.
func (h *Handler) contextLangCode(r *http.Request) string {
	return middleware.LanguageFromContext(r.Context()).Code
}

// requestLang resolves the content language of an API request: explicit
// ?lang wins and must be an active language; otherwise the middleware's
// detection is used.
func (h *Handler) requestLang(r *http.Request) (string, error) {
	if code := r.URL.Query().Get("lang"); code != "" {
		if !h.languages.IsActive(r.Context(), code) {
			return "", content.ErrLanguageNotFound
		}
		return code, nil
	}
	return middleware.LanguageFromContext(r.Context()).Code, nil
}
