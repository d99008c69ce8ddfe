// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"profilcms/internal/model"
)

// AddPhoto appends a photo to an item's gallery.
func (q *Queries) AddPhoto(ctx context.Context, itemID int64, path string, urutan int64) (model.Photo, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO content_photos (item_id, path, urutan, created_at) VALUES (?, ?, ?, ?)",
		itemID, path, urutan, now)
	if err != nil {
		return model.Photo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Photo{}, err
	}
	return model.Photo{ID: id, ItemID: itemID, Path: path, Urutan: urutan, CreatedAt: now}, nil
}

// ListPhotos returns an item's photos in display order.
func (q *Queries) ListPhotos(ctx context.Context, itemID int64) ([]model.Photo, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, item_id, path, urutan, created_at FROM content_photos WHERE item_id = ? ORDER BY urutan, id",
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.ItemID, &p.Path, &p.Urutan, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetPhoto returns a photo by id.
func (q *Queries) GetPhoto(ctx context.Context, id int64) (model.Photo, error) {
	var p model.Photo
	err := q.db.QueryRowContext(ctx,
		"SELECT id, item_id, path, urutan, created_at FROM content_photos WHERE id = ?", id).
		Scan(&p.ID, &p.ItemID, &p.Path, &p.Urutan, &p.CreatedAt)
	return p, err
}

// DeletePhoto removes a photo record.
func (q *Queries) DeletePhoto(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM content_photos WHERE id = ?", id)
	return err
}
