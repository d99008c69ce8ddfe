// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the site: language
// detection, session auth, CORS for the admin front-end, CSRF, rate
// limiting and security headers.
package middleware

import (
	"context"

	"profilcms/internal/model"
)

// ContextKey is the type for request-context keys set by this package.
type ContextKey string

const (
	// ContextKeyLanguage carries the resolved model.Language.
	ContextKeyLanguage ContextKey = "language"

	// ContextKeyUser carries the authenticated model.User.
	ContextKeyUser ContextKey = "user"
)

// LanguageFromContext returns the request language, defaulting when the
// middleware did not run.
func LanguageFromContext(ctx context.Context) model.Language {
	if lang, ok := ctx.Value(ContextKeyLanguage).(model.Language); ok {
		return lang
	}
	return model.Language{Code: model.DefaultLanguageCode}
}

// UserFromContext returns the authenticated user, ok=false when anonymous.
func UserFromContext(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(model.User)
	return u, ok
}
