// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"profilcms/internal/auth"
	"profilcms/internal/middleware"
	"profilcms/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. The session token is rotated on
// every successful login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	lang := h.contextLangCode(r)

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if store.IsNotFound(err) || (err == nil && !user.IsActive) {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, h.catalog.T(lang, "auth.invalid_credentials"), nil)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.log.Warn("failed login", "email", req.Email, "category", "auth")
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, h.catalog.T(lang, "auth.invalid_credentials"), nil)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			_ = h.queries.UpdateUserPassword(r.Context(), user.ID, newHash)
		}
	}

	h.log.Info("user logged in", "user_id", user.ID, "category", "auth")
	writeData(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, h.catalog.T(h.contextLangCode(r), "auth.logged_out"))
}

// Me handles GET /api/auth/me behind the auth middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.Unauthorized(w, r)
		return
	}
	writeData(w, http.StatusOK, user)
}
