package content

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

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := store.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))
	return NewService(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func beritaInput(t *testing.T) Input {
	t.Helper()
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Berita Baru! 2024"))
	require.NoError(t, set.SetField("id", FieldBody, "Isi berita lengkap."))
	return Input{Translations: set}
}

func TestCreateRejectsBlankIndonesian(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	set := NewTranslationSet()
	require.NoError(t, set.SetField("en", FieldTitle, "English Title"))
	require.NoError(t, set.SetField("en", FieldBody, "English body."))

	_, err := s.Create(ctx, model.SectionBerita, Input{Translations: set})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	// Nothing written.
	items, total, err := s.List(ctx, model.SectionBerita, ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestCreateAutoSlugsFromTitle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	item, err := s.Create(ctx, model.SectionBerita, beritaInput(t))
	require.NoError(t, err)
	assert.Equal(t, "berita-baru-2024", item.Slug)
	assert.True(t, item.IsPublished)

	got, err := s.GetBySlug(ctx, model.SectionBerita, "berita-baru-2024", "id")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := beritaInput(t)
	slug := "kabar-terkini"
	in.Slug = &slug
	item, err := s.Create(ctx, model.SectionBerita, in)
	require.NoError(t, err)
	assert.Equal(t, "kabar-terkini", item.Slug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, model.SectionBerita, beritaInput(t))
	require.NoError(t, err)

	_, err = s.Create(ctx, model.SectionBerita, beritaInput(t))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestGetFlattensRequestedLanguageWithFallback(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := beritaInput(t)
	require.NoError(t, in.Translations.SetField("en", FieldTitle, "Fresh News 2024"))
	require.NoError(t, in.Translations.SetField("en", FieldBody, "Full news body."))
	item, err := s.Create(ctx, model.SectionBerita, in)
	require.NoError(t, err)

	got, err := s.Get(ctx, model.SectionBerita, item.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, "Fresh News 2024", got.Title)
	require.Len(t, got.Translations, 2)

	// Russian has no record; the default language is flattened instead.
	got, err = s.Get(ctx, model.SectionBerita, item.ID, "ru")
	require.NoError(t, err)
	assert.Equal(t, "id", got.Language)
	assert.Equal(t, "Berita Baru! 2024", got.Title)
}

func TestUpdateReplacesTranslationSet(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	in := beritaInput(t)
	require.NoError(t, in.Translations.SetField("en", FieldTitle, "Fresh News"))
	require.NoError(t, in.Translations.SetField("en", FieldBody, "Body."))
	item, err := s.Create(ctx, model.SectionBerita, in)
	require.NoError(t, err)

	// Resend with English blank: the English record must disappear.
	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Berita Baru! 2024"))
	require.NoError(t, set.SetField("id", FieldBody, "Isi diperbarui."))
	updated, err := s.Update(ctx, model.SectionBerita, item.ID, Input{Translations: set})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, "id", updated.Translations[0].LanguageCode)
	assert.Equal(t, "Isi diperbarui.", updated.Body)
}

func TestUpdateLeavesOmittedFieldsUntouched(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	item, err := s.Create(ctx, model.SectionBerita, beritaInput(t))
	require.NoError(t, err)

	category := "kegiatan"
	updated, err := s.Update(ctx, model.SectionBerita, item.ID, Input{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "kegiatan", updated.Category)
	assert.Equal(t, item.Slug, updated.Slug)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, "Berita Baru! 2024", updated.Title)
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestService(t)
	err := s.Delete(context.Background(), model.SectionBerita, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSingletonSectionRefusesSecondItem(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Nama Lengkap"))
	require.NoError(t, set.SetField("id", FieldBody, "Riwayat hidup."))
	_, err := s.Create(ctx, model.SectionBiografi, Input{Translations: set})
	require.NoError(t, err)

	set2 := NewTranslationSet()
	require.NoError(t, set2.SetField("id", FieldTitle, "Nama Lain"))
	require.NoError(t, set2.SetField("id", FieldBody, "Riwayat lain."))
	_, err = s.Create(ctx, model.SectionBiografi, Input{Translations: set2})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestPengalamanKegiatan(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Anggota DPR RI"))
	item, err := s.Create(ctx, model.SectionPengalaman, Input{
		Translations: set,
		Kegiatan:     []string{"Rapat paripurna", "Reses", "Kunjungan dapil"},
	})
	require.NoError(t, err)
	require.Len(t, item.Kegiatan, 3)
	assert.Equal(t, int64(1), item.Kegiatan[0].Urutan)

	updated, err := s.Update(ctx, model.SectionPengalaman, item.ID, Input{
		Kegiatan: []string{"Reses"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Kegiatan, 1)
	assert.Equal(t, "Reses", updated.Kegiatan[0].Name)
	assert.Equal(t, int64(1), updated.Kegiatan[0].Urutan)
}

func TestGalleryPhotos(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	set := NewTranslationSet()
	require.NoError(t, set.SetField("id", FieldTitle, "Dokumentasi Acara"))
	item, err := s.Create(ctx, model.SectionGaleri, Input{Translations: set})
	require.NoError(t, err)

	p1, err := s.AddPhoto(ctx, model.SectionGaleri, item.ID, "uploads/a.webp")
	require.NoError(t, err)
	_, err = s.AddPhoto(ctx, model.SectionGaleri, item.ID, "uploads/b.webp")
	require.NoError(t, err)

	got, err := s.Get(ctx, model.SectionGaleri, item.ID, "id")
	require.NoError(t, err)
	require.Len(t, got.Fotos, 2)
	assert.Equal(t, int64(1), got.Fotos[0].Urutan)

	path, err := s.RemovePhoto(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/a.webp", path)

	// Photos on a section without gallery support are refused.
	_, err = s.AddPhoto(ctx, model.SectionBerita, item.ID, "uploads/c.webp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSearchAndPublishedFilter(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	published := true
	unpublished := false
	for i, tc := range []struct {
		title string
		pub   *bool
	}{
		{"Kunjungan Kerja Komisi", &published},
		{"Rapat Anggaran", &published},
		{"Draf Siaran Pers", &unpublished},
	} {
		set := NewTranslationSet()
		require.NoError(t, set.SetField("id", FieldTitle, tc.title))
		require.NoError(t, set.SetField("id", FieldBody, "Isi."))
		slug := "item-" + string(rune('a'+i))
		_, err := s.Create(ctx, model.SectionBerita, Input{
			Translations: set, IsPublished: tc.pub, Slug: &slug,
		})
		require.NoError(t, err)
	}

	items, total, err := s.List(ctx, model.SectionBerita, ListOptions{
		Lang: "id", PublishedOnly: true, Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), total)

	items, total, err = s.List(ctx, model.SectionBerita, ListOptions{
		Lang: "id", Search: "anggaran", Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rapat Anggaran", items[0].Title)
	assert.Equal(t, int64(1), total)
}
