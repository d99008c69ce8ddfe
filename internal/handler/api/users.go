// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/auth"
	"profilcms/internal/content"
	"profilcms/internal/middleware"
	"profilcms/internal/model"
	"profilcms/internal/store"
)

// minPasswordLength is the shortest accepted account password.
const minPasswordLength = 8

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser handles POST /api/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	lang := h.contextLangCode(r)

	var req createUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = model.RoleEditor
	}

	fields := map[string]string{}
	switch {
	case req.Email == "":
		fields["email"] = "wajib diisi"
	default:
		if _, err := mail.ParseAddress(req.Email); err != nil {
			fields["email"] = "format tidak valid"
		}
	}
	if req.Name == "" {
		fields["name"] = "wajib diisi"
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("minimal %d karakter", minPasswordLength)
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleEditor {
		fields["role"] = "format tidak valid"
	}
	if _, err := h.queries.GetUserByEmail(r.Context(), req.Email); err == nil {
		fields["email"] = "sudah terdaftar"
	}
	if len(fields) > 0 {
		writeError(w, http.StatusUnprocessableEntity, CodeValidation, h.catalog.T(lang, "error.validation"), fields)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email: req.Email, Name: req.Name, PasswordHash: hash, Role: req.Role,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("user created", "category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)
	writeData(w, http.StatusCreated, user)
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// UpdateUser handles PUT /api/admin/users/{id}. Absent fields are left
// untouched; deactivating your own account is refused.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	p := store.UpdateUserParams{ID: user.ID, Name: user.Name, Role: user.Role, IsActive: user.IsActive}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if *req.Role != model.RoleAdmin && *req.Role != model.RoleEditor {
			h.badRequest(w, r, fmt.Errorf("unknown role %q", *req.Role))
			return
		}
		p.Role = *req.Role
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if self, ok := middleware.UserFromContext(r.Context()); ok && self.ID == user.ID && !p.IsActive {
		h.badRequest(w, r, fmt.Errorf("cannot deactivate your own account"))
		return
	}

	if err := h.queries.UpdateUser(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			writeError(w, http.StatusUnprocessableEntity, CodeValidation,
				h.catalog.T(h.contextLangCode(r), "error.validation"),
				map[string]string{"password": fmt.Sprintf("minimal %d karakter", minPasswordLength)})
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.queries.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	updated, err := h.queries.GetUserByID(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /api/admin/users/{id}. Your own account and
// the last remaining account cannot be removed.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if self, ok := middleware.UserFromContext(r.Context()); ok && self.ID == user.ID {
		h.badRequest(w, r, fmt.Errorf("cannot delete your own account"))
		return
	}
	total, err := h.queries.CountUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if total <= 1 {
		h.badRequest(w, r, fmt.Errorf("cannot delete the last account"))
		return
	}

	if err := h.queries.DeleteUser(r.Context(), user.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info("user deleted", "category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)
	writeMessage(w, http.StatusOK, h.catalog.T(h.contextLangCode(r), "message.deleted"))
}

// adminUser loads the user addressed by the {id} route param.
func (h *Handler) adminUser(r *http.Request) (model.User, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return model.User{}, content.ErrNotFound
	}
	user, err := h.queries.GetUserByID(r.Context(), id)
	if store.IsNotFound(err) {
		return model.User{}, content.ErrNotFound
	}
	return user, err
}
