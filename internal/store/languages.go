// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"profilcms/internal/model"
)

const languageColumns = "id, code, name, native_name, is_default, is_active, position, created_at, updated_at"

func scanLanguage(row interface{ Scan(...any) error }) (model.Language, error) {
	var l model.Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsDefault, &l.IsActive,
		&l.Position, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// ListLanguages returns all languages ordered by position.
func (q *Queries) ListLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+languageColumns+" FROM languages ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []model.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// ListActiveLanguages returns active languages ordered by position.
func (q *Queries) ListActiveLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE is_active = 1 ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []model.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// GetLanguageByCode returns the language with the given ISO code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (model.Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE code = ?", code))
}

// GetDefaultLanguage returns the default language.
func (q *Queries) GetDefaultLanguage(ctx context.Context) (model.Language, error) {
	return scanLanguage(q.db.QueryRowContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE is_default = 1 LIMIT 1"))
}

// CreateLanguageParams holds fields for creating a language.
type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
	IsActive   bool
	Position   int
}

// CreateLanguage inserts a language and returns it.
func (q *Queries) CreateLanguage(ctx context.Context, p CreateLanguageParams) (model.Language, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO languages (code, name, native_name, is_default, is_active, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, p.NativeName, p.IsDefault, p.IsActive, p.Position, now, now)
	if err != nil {
		return model.Language{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Language{}, err
	}
	return scanLanguage(q.db.QueryRowContext(ctx,
		"SELECT "+languageColumns+" FROM languages WHERE id = ?", id))
}

// UpdateLanguageParams holds fields for updating a language.
type UpdateLanguageParams struct {
	ID         int64
	Name       string
	NativeName string
	IsActive   bool
	Position   int
}

// UpdateLanguage updates a language's mutable fields.
func (q *Queries) UpdateLanguage(ctx context.Context, p UpdateLanguageParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE languages SET name = ?, native_name = ?, is_active = ?, position = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.NativeName, p.IsActive, p.Position, time.Now(), p.ID)
	return err
}

// SetDefaultLanguage marks one language as default and clears the flag elsewhere.
func (q *Queries) SetDefaultLanguage(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, "UPDATE languages SET is_default = 0"); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx,
		"UPDATE languages SET is_default = 1, is_active = 1, updated_at = ? WHERE id = ?", time.Now(), id)
	return err
}

// DeleteLanguage removes a language. The default language cannot be deleted.
func (q *Queries) DeleteLanguage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM languages WHERE id = ? AND is_default = 0", id)
	return err
}
