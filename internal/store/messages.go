// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"profilcms/internal/model"
)

const messageColumns = "id, nama, email, subjek, isi, user_agent, country, is_read, created_at"

func scanMessage(row interface{ Scan(...any) error }) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.Nama, &m.Email, &m.Subjek, &m.Isi,
		&m.UserAgent, &m.Country, &m.IsRead, &m.CreatedAt)
	return m, err
}

// CreateMessageParams holds an incoming contact message.
type CreateMessageParams struct {
	Nama      string
	Email     string
	Subjek    string
	Isi       string
	UserAgent sql.NullString
	Country   sql.NullString
}

// CreateMessage stores a contact message and returns it.
func (q *Queries) CreateMessage(ctx context.Context, p CreateMessageParams) (model.Message, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO messages (nama, email, subjek, isi, user_agent, country, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		p.Nama, p.Email, p.Subjek, p.Isi, p.UserAgent, p.Country, now)
	if err != nil {
		return model.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, err
	}
	return q.GetMessage(ctx, id)
}

// GetMessage returns one message by id.
func (q *Queries) GetMessage(ctx context.Context, id int64) (model.Message, error) {
	return scanMessage(q.db.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?", id))
}

// ListMessagesParams holds list filters for messages.
type ListMessagesParams struct {
	Search     string
	UnreadOnly bool
	Limit      int64
	Offset     int64
}

func (p ListMessagesParams) whereClause() (string, []any) {
	where := "1=1"
	var args []any
	if p.UnreadOnly {
		where += " AND is_read = 0"
	}
	if p.Search != "" {
		where += " AND (nama LIKE ? OR email LIKE ? OR subjek LIKE ? OR isi LIKE ?)"
		pattern := "%" + p.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	return where, args
}

// ListMessages returns one page of messages, newest first.
func (q *Queries) ListMessages(ctx context.Context, p ListMessagesParams) ([]model.Message, error) {
	where, args := p.whereClause()
	args = append(args, p.Limit, p.Offset)
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE "+where+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountMessages counts messages under the same filters as ListMessages.
func (q *Queries) CountMessages(ctx context.Context, p ListMessagesParams) (int64, error) {
	where, args := p.whereClause()
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE "+where, args...).Scan(&n)
	return n, err
}

// CountUnreadMessages returns the number of unread messages.
func (q *Queries) CountUnreadMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE is_read = 0").Scan(&n)
	return n, err
}

// MarkMessageRead flips a message's read flag.
func (q *Queries) MarkMessageRead(ctx context.Context, id int64, read bool) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE messages SET is_read = ? WHERE id = ?", read, id)
	return err
}

// DeleteMessage removes a message.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
