// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging wires slog into the database-backed event log: records
// at warn level and above are mirrored into the events table for the
// admin audit trail.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"profilcms/internal/model"
	"profilcms/internal/store"
)

// EventLogHandler wraps another slog.Handler and additionally persists
// warn+ records as events.
type EventLogHandler struct {
	inner slog.Handler
	q     *store.Queries
	level slog.Level
}

// NewEventLogHandler wraps inner; records at warn and above go to the
// events table as well.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{inner: inner, q: store.New(db), level: slog.LevelWarn}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		// Background context: the event must land even when the request
		// context is already cancelled.
		h.persist(context.Background(), r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), q: h.q, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), q: h.q, level: h.level}
}

func (h *EventLogHandler) persist(ctx context.Context, r slog.Record) {
	level := model.EventLevelInfo
	switch {
	case r.Level >= slog.LevelError:
		level = model.EventLevelError
	case r.Level >= slog.LevelWarn:
		level = model.EventLevelWarning
	}

	category := ""
	userID := sql.NullInt64{}
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "category":
			category = a.Value.String()
		case "user_id":
			if id, ok := a.Value.Any().(int64); ok {
				userID = sql.NullInt64{Int64: id, Valid: true}
			}
		default:
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})
	if category == "" {
		category = inferCategory(r.Message)
	}

	metadata := "{}"
	if len(attrs) > 0 {
		if b, err := json.Marshal(attrs); err == nil {
			metadata = string(b)
		}
	}

	_ = h.q.CreateEvent(ctx, level, category, r.Message, userID, metadata)
}

func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "auth") || strings.Contains(msg, "password"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "content") || strings.Contains(msg, "translation"):
		return model.EventCategoryContent
	case strings.Contains(msg, "pesan") || strings.Contains(msg, "message"):
		return model.EventCategoryMessage
	case strings.Contains(msg, "config") || strings.Contains(msg, "language"):
		return model.EventCategoryConfig
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}
