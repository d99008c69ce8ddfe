// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"profilcms/internal/cache"
	"profilcms/internal/i18n"
	"profilcms/internal/model"
)

// LanguageCookieName stores the visitor's language preference.
const LanguageCookieName = "profil_lang"

// Language resolves the request language. Priority:
//  1. ?lang query parameter (explicit switch, persists the cookie)
//  2. cookie preference
//  3. Accept-Language header, home page only
//  4. the default language
//
// Deep links without an explicit language stay in the default language so
// shared URLs render the same for everyone.
func Language(langs *cache.Languages, catalog *i18n.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if code := strings.ToLower(r.URL.Query().Get("lang")); code != "" {
				if l, ok := langs.ByCode(ctx, code); ok && l.IsActive {
					SetLanguageCookie(w, l.Code)
					next.ServeHTTP(w, r.WithContext(withLanguage(ctx, l)))
					return
				}
			}

			if cookie, err := r.Cookie(LanguageCookieName); err == nil {
				if l, ok := langs.ByCode(ctx, strings.ToLower(cookie.Value)); ok && l.IsActive {
					next.ServeHTTP(w, r.WithContext(withLanguage(ctx, l)))
					return
				}
			}

			if r.URL.Path == "/" || r.URL.Path == "" {
				code := catalog.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
				if l, ok := langs.ByCode(ctx, code); ok && l.IsActive {
					next.ServeHTTP(w, r.WithContext(withLanguage(ctx, l)))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(withLanguage(ctx, langs.Default(ctx))))
		})
	}
}

func withLanguage(ctx context.Context, l model.Language) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, l)
}

// SetLanguageCookie persists the language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false, // the front-end reads it for its switcher state
		SameSite: http.SameSiteLaxMode,
	})
}
