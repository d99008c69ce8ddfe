// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"profilcms/internal/model"
)

const itemColumns = `id, section, slug, urutan, category, is_published, foto, tahun,
	link_url, published_at, scheduled_at, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (model.ContentItem, error) {
	var it model.ContentItem
	err := row.Scan(&it.ID, &it.Section, &it.Slug, &it.Urutan, &it.Category, &it.IsPublished,
		&it.Foto, &it.Tahun, &it.LinkURL, &it.PublishedAt, &it.ScheduledAt,
		&it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// CreateItemParams holds fields for creating a content item.
type CreateItemParams struct {
	Section     string
	Slug        sql.NullString
	Urutan      int64
	Category    sql.NullString
	IsPublished bool
	Foto        sql.NullString
	Tahun       sql.NullInt64
	LinkURL     sql.NullString
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// CreateItem inserts a content item and returns it.
func (q *Queries) CreateItem(ctx context.Context, p CreateItemParams) (model.ContentItem, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO content_items (section, slug, urutan, category, is_published, foto, tahun,
			link_url, published_at, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Section, p.Slug, p.Urutan, p.Category, p.IsPublished, p.Foto, p.Tahun,
		p.LinkURL, p.PublishedAt, p.ScheduledAt, now, now)
	if err != nil {
		return model.ContentItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContentItem{}, err
	}
	return q.GetItemByID(ctx, p.Section, id)
}

// GetItemByID returns one item of a section by id.
func (q *Queries) GetItemByID(ctx context.Context, section string, id int64) (model.ContentItem, error) {
	return scanItem(q.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM content_items WHERE section = ? AND id = ?", section, id))
}

// GetItemBySlug returns one item of a section by slug.
func (q *Queries) GetItemBySlug(ctx context.Context, section, slug string) (model.ContentItem, error) {
	return scanItem(q.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM content_items WHERE section = ? AND slug = ?", section, slug))
}

// SlugExists reports whether a slug is already used within a section,
// excluding the given item id (0 to check all).
func (q *Queries) SlugExists(ctx context.Context, section, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM content_items WHERE section = ? AND slug = ? AND id != ?",
		section, slug, excludeID).Scan(&n)
	return n > 0, err
}

// UpdateItemParams holds fields for updating a content item. All values are
// written as-is; callers start from the existing row and overlay changes.
type UpdateItemParams struct {
	ID          int64
	Slug        sql.NullString
	Urutan      int64
	Category    sql.NullString
	IsPublished bool
	Foto        sql.NullString
	Tahun       sql.NullInt64
	LinkURL     sql.NullString
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// UpdateItem updates a content item's language-independent fields.
func (q *Queries) UpdateItem(ctx context.Context, p UpdateItemParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE content_items
		SET slug = ?, urutan = ?, category = ?, is_published = ?, foto = ?, tahun = ?,
			link_url = ?, published_at = ?, scheduled_at = ?, updated_at = ?
		WHERE id = ?`,
		p.Slug, p.Urutan, p.Category, p.IsPublished, p.Foto, p.Tahun,
		p.LinkURL, p.PublishedAt, p.ScheduledAt, time.Now(), p.ID)
	return err
}

// DeleteItem removes an item; translations, photos and activities cascade.
func (q *Queries) DeleteItem(ctx context.Context, section string, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM content_items WHERE section = ? AND id = ?", section, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListItemsParams holds list/count filters for a section.
type ListItemsParams struct {
	Section       string
	Search        string // matches translation title/body, any language
	PublishedOnly bool
	Limit         int64
	Offset        int64
}

func (p ListItemsParams) whereClause() (string, []any) {
	where := "section = ?"
	args := []any{p.Section}
	if p.PublishedOnly {
		where += " AND is_published = 1"
	}
	if p.Search != "" {
		where += ` AND EXISTS (
			SELECT 1 FROM content_translations t
			WHERE t.item_id = content_items.id
			AND (t.title LIKE ? OR t.body LIKE ? OR t.caption LIKE ?))`
		pattern := "%" + p.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	return where, args
}

// ListItems returns one page of a section's items, newest first within urutan order.
func (q *Queries) ListItems(ctx context.Context, p ListItemsParams) ([]model.ContentItem, error) {
	where, args := p.whereClause()
	args = append(args, p.Limit, p.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM content_items WHERE "+where+
			" ORDER BY urutan, created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContentItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountItems counts a section's items under the same filters as ListItems.
func (q *Queries) CountItems(ctx context.Context, p ListItemsParams) (int64, error) {
	where, args := p.whereClause()
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM content_items WHERE "+where, args...).Scan(&n)
	return n, err
}

// ListScheduledDue returns unpublished items whose scheduled_at is due.
func (q *Queries) ListScheduledDue(ctx context.Context, now time.Time) ([]model.ContentItem, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+itemColumns+` FROM content_items
		WHERE is_published = 0 AND scheduled_at IS NOT NULL AND scheduled_at <= ?`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContentItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// PublishItem marks an item published and clears its schedule.
func (q *Queries) PublishItem(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE content_items
		SET is_published = 1, published_at = ?, scheduled_at = NULL, updated_at = ?
		WHERE id = ?`, now, now, id)
	return err
}
