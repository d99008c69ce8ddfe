// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"profilcms/internal/store"
)

// SessionKeyUserID stores the authenticated user's id in the session.
const SessionKeyUserID = "user_id"

// RequireAuth rejects unauthenticated API requests with 401. The admin
// screens live in the external React app, so there is no login redirect.
func RequireAuth(sm *scs.SessionManager, db *sql.DB, unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				unauthorized(w, r)
				return
			}
			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil || !user.IsActive {
				_ = sm.Destroy(r.Context())
				unauthorized(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
