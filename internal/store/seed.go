// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"profilcms/internal/model"
)

// SeedLanguages inserts the fixed language set if the table is empty.
func (q *Queries) SeedLanguages(ctx context.Context) error {
	langs, err := q.ListLanguages(ctx)
	if err != nil {
		return fmt.Errorf("listing languages: %w", err)
	}
	if len(langs) > 0 {
		return nil
	}

	defaults := []CreateLanguageParams{
		{Code: model.LangIndonesian, Name: "Indonesian", NativeName: "Bahasa Indonesia", IsDefault: true, IsActive: true, Position: 1},
		{Code: model.LangEnglish, Name: "English", NativeName: "English", IsActive: true, Position: 2},
		{Code: model.LangRussian, Name: "Russian", NativeName: "Русский", IsActive: true, Position: 3},
	}
	for _, p := range defaults {
		if _, err := q.CreateLanguage(ctx, p); err != nil {
			return fmt.Errorf("seeding language %s: %w", p.Code, err)
		}
	}
	return nil
}

// SeedAdminUser creates the initial admin account if no users exist.
// Returns true when the account was created.
func (q *Queries) SeedAdminUser(ctx context.Context, email, name, passwordHash string) (bool, error) {
	n, err := q.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = q.CreateUser(ctx, CreateUserParams{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("creating admin user: %w", err)
	}
	return true, nil
}

// IsNotFound reports whether err is sql.ErrNoRows, possibly wrapped.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
