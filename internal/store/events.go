// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"profilcms/internal/model"
)

// CreateEvent appends a row to the event log.
func (q *Queries) CreateEvent(ctx context.Context, level, category, message string, userID sql.NullInt64, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		level, category, message, userID, metadata, time.Now())
	return err
}

// ListEvents returns one page of the event log, newest first. An empty
// category matches all categories.
func (q *Queries) ListEvents(ctx context.Context, category string, limit, offset int64) ([]model.Event, error) {
	where := "1=1"
	var args []any
	if category != "" {
		where = "category = ?"
		args = append(args, category)
	}
	args = append(args, limit, offset)
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, user_id, metadata, created_at
		FROM events WHERE `+where+`
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PruneEvents removes event-log rows older than the cutoff.
func (q *Queries) PruneEvents(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
