// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"profilcms/internal/model"
)

const translationColumns = "id, item_id, language_code, title, subtitle, body, caption, created_at, updated_at"

func scanTranslation(row interface{ Scan(...any) error }) (model.Translation, error) {
	var tr model.Translation
	err := row.Scan(&tr.ID, &tr.ItemID, &tr.LanguageCode, &tr.Title, &tr.Subtitle,
		&tr.Body, &tr.Caption, &tr.CreatedAt, &tr.UpdatedAt)
	return tr, err
}

// ListTranslations returns all translations of an item keyed by insertion order.
func (q *Queries) ListTranslations(ctx context.Context, itemID int64) ([]model.Translation, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+translationColumns+" FROM content_translations WHERE item_id = ? ORDER BY language_code", itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trs []model.Translation
	for rows.Next() {
		tr, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		trs = append(trs, tr)
	}
	return trs, rows.Err()
}

// GetTranslation returns one item's translation for a language.
func (q *Queries) GetTranslation(ctx context.Context, itemID int64, lang string) (model.Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx,
		"SELECT "+translationColumns+" FROM content_translations WHERE item_id = ? AND language_code = ?",
		itemID, lang))
}

// UpsertTranslationParams holds one language's text fields for an item.
type UpsertTranslationParams struct {
	ItemID       int64
	LanguageCode string
	Title        string
	Subtitle     string
	Body         string
	Caption      string
}

// UpsertTranslation inserts or replaces an item's translation for one language.
func (q *Queries) UpsertTranslation(ctx context.Context, p UpsertTranslationParams) error {
	now := time.Now()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO content_translations (item_id, language_code, title, subtitle, body, caption, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id, language_code) DO UPDATE SET
			title = excluded.title, subtitle = excluded.subtitle,
			body = excluded.body, caption = excluded.caption, updated_at = excluded.updated_at`,
		p.ItemID, p.LanguageCode, p.Title, p.Subtitle, p.Body, p.Caption, now, now)
	return err
}

// DeleteTranslationsNotIn removes an item's translations for languages outside keep.
// An empty keep list removes all translations.
func (q *Queries) DeleteTranslationsNotIn(ctx context.Context, itemID int64, keep []string) error {
	if len(keep) == 0 {
		_, err := q.db.ExecContext(ctx,
			"DELETE FROM content_translations WHERE item_id = ?", itemID)
		return err
	}
	placeholders := strings.Repeat("?,", len(keep))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(keep)+1)
	args = append(args, itemID)
	for _, code := range keep {
		args = append(args, code)
	}
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM content_translations WHERE item_id = ? AND language_code NOT IN ("+placeholders+")",
		args...)
	return err
}
