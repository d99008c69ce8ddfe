// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/middleware"
)

// Routes builds the /api router. requireAuth guards the admin surface;
// formLimiter throttles the public contact form and login endpoint.
func (h *Handler) Routes(requireAuth func(http.Handler) http.Handler, formLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()
	limited := formLimiter.Handler(h.RateLimited)

	r.Get("/languages", h.ListLanguages)
	r.Post("/languages/{code}", h.SetLanguage)
	r.Get("/sections", h.ListSections)
	r.Get("/search", h.Search)

	r.Route("/auth", func(r chi.Router) {
		r.With(limited).Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})

	// pesan is registered before the {section} wildcard; chi prefers the
	// static segment either way.
	r.Route("/pesan", func(r chi.Router) {
		r.With(limited).Post("/", h.CreateMessage)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.ListMessages)
			r.Get("/unread-count", h.UnreadCount)
			r.Get("/{id}", h.GetMessage)
			r.Put("/{id}/read", h.MarkMessage)
			r.Delete("/{id}", h.DeleteMessage)
		})
	})

	r.Route("/{section}", func(r chi.Router) {
		r.Get("/", h.ListSection(true))
		r.Get("/slug/{slug}", h.GetSectionItemBySlug(true))
		r.Get("/{id}", h.GetSectionItem(true))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.CreateSectionItem)
			r.Put("/{id}", h.UpdateSectionItem)
			r.Delete("/{id}", h.DeleteSectionItem)
			r.Post("/{id}/fotos", h.AddSectionPhoto)
			r.Delete("/{id}/fotos/{photoID}", h.DeleteSectionPhoto)
			r.Post("/{id}/translate", h.TranslateSectionItem)
		})
	})

	// language management; the static segment beats the {section} param
	r.Route("/admin/languages", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.ListAllLanguages)
		r.Put("/{code}", h.UpdateLanguage)
		r.Post("/{code}/default", h.SetDefaultLanguage)
		r.Delete("/{code}", h.DeleteLanguage)
	})

	r.Route("/admin/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	// admin listings include drafts
	r.Route("/admin/{section}", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.ListSection(false))
		r.Get("/{id}", h.GetSectionItem(false))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		lang := h.contextLangCode(r)
		writeError(w, http.StatusNotFound, CodeNotFound, h.catalog.T(lang, "error.not_found"), nil)
	})
	return r
}
