package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilcms/internal/model"
	"profilcms/internal/store"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()
	db, err := store.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))

	inner := slog.NewTextHandler(io.Discard, nil)
	return slog.New(NewEventLogHandler(inner, db)), store.New(db)
}

func TestWarnAndErrorArePersisted(t *testing.T) {
	log, q := newTestLogger(t)
	ctx := context.Background()

	log.Warn("cache backend unavailable", "category", model.EventCategoryCache, "backend", "redis")
	log.Error("login failed", "category", model.EventCategoryAuth, "email", "x@example.com")

	events, err := q.ListEvents(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, model.EventLevelError, events[0].Level)
	assert.Equal(t, model.EventCategoryAuth, events[0].Category)
	assert.Contains(t, events[0].Metadata, "x@example.com")
	assert.Equal(t, model.EventLevelWarning, events[1].Level)
}

func TestInfoIsNotPersisted(t *testing.T) {
	log, q := newTestLogger(t)

	log.Info("content created", "section", "berita")

	events, err := q.ListEvents(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCategoryIsInferredFromMessage(t *testing.T) {
	log, q := newTestLogger(t)

	log.Warn("password rehash required")

	events, err := q.ListEvents(context.Background(), "", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventCategoryAuth, events[0].Category)
}
