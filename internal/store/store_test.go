package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilcms/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func newTestQueries(t *testing.T) *Queries {
	t.Helper()
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// In-memory SQLite: every connection gets its own database, so keep
	// the pool at one connection.
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return New(db)
}

func TestSeedLanguages(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	require.NoError(t, q.SeedLanguages(ctx))

	langs, err := q.ListLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, langs, 3)
	assert.Equal(t, "id", langs[0].Code)
	assert.True(t, langs[0].IsDefault)

	// Seeding twice must not duplicate.
	require.NoError(t, q.SeedLanguages(ctx))
	langs, err = q.ListLanguages(ctx)
	require.NoError(t, err)
	assert.Len(t, langs, 3)

	def, err := q.GetDefaultLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id", def.Code)
}

func TestDeactivatedLanguageLeavesActiveList(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()
	require.NoError(t, q.SeedLanguages(ctx))

	ru, err := q.GetLanguageByCode(ctx, "ru")
	require.NoError(t, err)
	require.NoError(t, q.UpdateLanguage(ctx, UpdateLanguageParams{
		ID: ru.ID, Name: ru.Name, NativeName: ru.NativeName, IsActive: false, Position: ru.Position,
	}))

	active, err := q.ListActiveLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, l := range active {
		assert.NotEqual(t, "ru", l.Code)
	}

	all, err := q.ListLanguages(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPruneEventsKeepsRecentRows(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	require.NoError(t, q.CreateEvent(ctx, "warn", model.EventCategorySystem, "disk almost full", sql.NullInt64{}, ""))

	// nothing is older than a cutoff in the past
	n, err := q.PruneEvents(ctx, mustTime(t, "2000-01-01T00:00:00Z"))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = q.PruneEvents(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	events, err := q.ListEvents(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestContentItemLifecycle(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	item, err := q.CreateItem(ctx, CreateItemParams{
		Section:     model.SectionBerita,
		Slug:        sql.NullString{String: "berita-baru-2024", Valid: true},
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, model.SectionBerita, item.Section)

	require.NoError(t, q.UpsertTranslation(ctx, UpsertTranslationParams{
		ItemID: item.ID, LanguageCode: "id", Title: "Berita Baru! 2024", Body: "Isi berita.",
	}))
	require.NoError(t, q.UpsertTranslation(ctx, UpsertTranslationParams{
		ItemID: item.ID, LanguageCode: "en", Title: "Fresh News 2024", Body: "News body.",
	}))

	got, err := q.GetItemBySlug(ctx, model.SectionBerita, "berita-baru-2024")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	trs, err := q.ListTranslations(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, trs, 2)

	// Upsert replaces instead of duplicating.
	require.NoError(t, q.UpsertTranslation(ctx, UpsertTranslationParams{
		ItemID: item.ID, LanguageCode: "en", Title: "Updated News 2024", Body: "News body.",
	}))
	tr, err := q.GetTranslation(ctx, item.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "Updated News 2024", tr.Title)

	require.NoError(t, q.DeleteTranslationsNotIn(ctx, item.ID, []string{"id"}))
	trs, err = q.ListTranslations(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, trs, 1)
	assert.Equal(t, "id", trs[0].LanguageCode)

	n, err := q.DeleteItem(ctx, model.SectionBerita, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Cascade removed the remaining translation.
	trs, err = q.ListTranslations(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, trs)

	_, err = q.GetItemByID(ctx, model.SectionBerita, item.ID)
	assert.True(t, IsNotFound(err))
}

func TestListItemsSearchAndPaging(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	for i, title := range []string{"Kunjungan Kerja", "Rapat Koordinasi", "Peresmian Gedung"} {
		item, err := q.CreateItem(ctx, CreateItemParams{
			Section:     model.SectionBerita,
			Urutan:      int64(i + 1),
			IsPublished: i != 2,
		})
		require.NoError(t, err)
		require.NoError(t, q.UpsertTranslation(ctx, UpsertTranslationParams{
			ItemID: item.ID, LanguageCode: "id", Title: title,
		}))
	}

	items, err := q.ListItems(ctx, ListItemsParams{Section: model.SectionBerita, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = q.ListItems(ctx, ListItemsParams{
		Section: model.SectionBerita, Search: "rapat", Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	n, err := q.CountItems(ctx, ListItemsParams{Section: model.SectionBerita, PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err = q.ListItems(ctx, ListItemsParams{Section: model.SectionBerita, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSearchIsCaseInsensitiveForASCII(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	item, err := q.CreateItem(ctx, CreateItemParams{Section: model.SectionPublikasi, IsPublished: true})
	require.NoError(t, err)
	require.NoError(t, q.UpsertTranslation(ctx, UpsertTranslationParams{
		ItemID: item.ID, LanguageCode: "id", Title: "Jurnal Ekonomi Digital",
	}))

	// SQLite LIKE is case-insensitive for ASCII.
	items, err := q.ListItems(ctx, ListItemsParams{Section: model.SectionPublikasi, Search: "EKONOMI", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestActivitiesRenumber(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	item, err := q.CreateItem(ctx, CreateItemParams{Section: model.SectionPengalaman})
	require.NoError(t, err)

	require.NoError(t, q.ReplaceActivities(ctx, item.ID, []string{"Rapat paripurna", "Reses", "Kunjungan dapil"}))
	acts, err := q.ListActivities(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	for i, a := range acts {
		assert.Equal(t, int64(i+1), a.Urutan)
	}

	// Removing the middle entry renumbers the rest 1..n.
	require.NoError(t, q.ReplaceActivities(ctx, item.ID, []string{"Rapat paripurna", "Kunjungan dapil"}))
	acts, err = q.ListActivities(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, acts, 2)
	assert.Equal(t, int64(1), acts[0].Urutan)
	assert.Equal(t, "Kunjungan dapil", acts[1].Name)
	assert.Equal(t, int64(2), acts[1].Urutan)
}

func TestMessages(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	msg, err := q.CreateMessage(ctx, CreateMessageParams{
		Nama: "Budi", Email: "budi@example.com", Subjek: "Halo", Isi: "Apa kabar?",
	})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)

	unread, err := q.CountUnreadMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, q.MarkMessageRead(ctx, msg.ID, true))
	unread, err = q.CountUnreadMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	msgs, err := q.ListMessages(ctx, ListMessagesParams{Search: "kabar", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	n, err := q.DeleteMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestScheduledPublishing(t *testing.T) {
	q := newTestQueries(t)
	ctx := context.Background()

	item, err := q.CreateItem(ctx, CreateItemParams{
		Section:     model.SectionBerita,
		IsPublished: false,
		ScheduledAt: sql.NullTime{Time: mustTime(t, "2026-01-01T08:00:00Z"), Valid: true},
	})
	require.NoError(t, err)

	due, err := q.ListScheduledDue(ctx, mustTime(t, "2025-12-31T08:00:00Z"))
	require.NoError(t, err)
	assert.Empty(t, due)

	now := mustTime(t, "2026-01-01T09:00:00Z")
	due, err = q.ListScheduledDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, q.PublishItem(ctx, item.ID, now))
	got, err := q.GetItemByID(ctx, model.SectionBerita, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.False(t, got.ScheduledAt.Valid)
}
