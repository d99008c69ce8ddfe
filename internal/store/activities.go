// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"profilcms/internal/model"
)

// ReplaceActivities rewrites an item's activity list. Entries keep the slice
// order: positions are renumbered 1..n.
func (q *Queries) ReplaceActivities(ctx context.Context, itemID int64, names []string) error {
	if _, err := q.db.ExecContext(ctx,
		"DELETE FROM content_activities WHERE item_id = ?", itemID); err != nil {
		return err
	}
	now := time.Now()
	for i, name := range names {
		if _, err := q.db.ExecContext(ctx,
			"INSERT INTO content_activities (item_id, name, urutan, created_at) VALUES (?, ?, ?, ?)",
			itemID, name, i+1, now); err != nil {
			return err
		}
	}
	return nil
}

// ListActivities returns an item's activities in display order.
func (q *Queries) ListActivities(ctx context.Context, itemID int64) ([]model.Activity, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, item_id, name, urutan, created_at FROM content_activities WHERE item_id = ? ORDER BY urutan, id",
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Name, &a.Urutan, &a.CreatedAt); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}
