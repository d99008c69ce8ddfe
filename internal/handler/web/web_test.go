package web

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilcms/internal/cache"
	"profilcms/internal/content"
	"profilcms/internal/i18n"
	"profilcms/internal/middleware"
	"profilcms/internal/model"
	"profilcms/internal/render"
	"profilcms/internal/seo"
	"profilcms/internal/store"
	"profilcms/web"
)

type testSite struct {
	router  http.Handler
	content *content.Service
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// in-memory sqlite gives every connection its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))

	queries := store.New(db)
	require.NoError(t, queries.SeedLanguages(context.Background()))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := i18n.NewCatalog()
	require.NoError(t, err)

	renderer, err := render.New(web.Templates(), catalog)
	require.NoError(t, err)

	contentSvc := content.NewService(db, log)
	langs := cache.NewLanguages(queries)

	h := NewHandler(Config{
		Content:   contentSvc,
		Languages: langs,
		Catalog:   catalog,
		Renderer:  renderer,
		Pages:     cache.NewMemory(cache.Options{}),
		Site:      seo.Site{Name: "Profil", URL: "https://profil.example", PersonName: "Nama Tokoh"},
		Log:       log,
	})

	r := chi.NewRouter()
	r.Use(middleware.Language(langs, catalog))
	r.Mount("/", h.Routes())

	return &testSite{router: r, content: contentSvc}
}

func (s *testSite) seedBerita(t *testing.T, title, body string) content.Item {
	t.Helper()
	set := content.NewTranslationSet()
	require.NoError(t, set.SetField(model.LangIndonesian, content.FieldTitle, title))
	require.NoError(t, set.SetField(model.LangIndonesian, content.FieldBody, body))
	item, err := s.content.Create(context.Background(), model.SectionBerita, content.Input{Translations: set})
	require.NoError(t, err)
	return item
}

func (s *testSite) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHomeRenders(t *testing.T) {
	s := newTestSite(t)
	s.seedBerita(t, "Kabar Terbaru", "Isi kabar.")

	rec := s.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Kabar Terbaru")
	assert.Contains(t, rec.Body.String(), `lang="id"`)
}

func TestBeritaListAndDetail(t *testing.T) {
	s := newTestSite(t)
	item := s.seedBerita(t, "Peluncuran Program", "Isi **berita** panjang.")

	rec := s.get(t, "/berita")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/berita/"+item.Slug)

	rec = s.get(t, "/berita/"+item.Slug)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Peluncuran Program")
	// markdown body is rendered to HTML
	assert.Contains(t, rec.Body.String(), "<strong>berita</strong>")
	assert.Contains(t, rec.Body.String(), "application/ld+json")
}

func TestBeritaDetailUnknownSlugIs404(t *testing.T) {
	s := newTestSite(t)

	rec := s.get(t, "/berita/tidak-ada")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestSearchFiltersList(t *testing.T) {
	s := newTestSite(t)
	s.seedBerita(t, "Tentang pendidikan", "Isi.")
	s.seedBerita(t, "Tentang kesehatan", "Isi.")

	rec := s.get(t, "/berita?search=pendidikan")
	assert.Contains(t, rec.Body.String(), "Tentang pendidikan")
	assert.NotContains(t, rec.Body.String(), "Tentang kesehatan")
}

func TestSitemapListsPublishedNews(t *testing.T) {
	s := newTestSite(t)
	item := s.seedBerita(t, "Berita Sitemap", "Isi.")

	rec := s.get(t, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "https://profil.example/berita/"+item.Slug)

	// second request comes from the page cache
	rec = s.get(t, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), item.Slug)
}

func TestRobots(t *testing.T) {
	s := newTestSite(t)

	rec := s.get(t, "/robots.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://profil.example/sitemap.xml")
}

func TestLanguageSwitchChangesChrome(t *testing.T) {
	s := newTestSite(t)

	rec := s.get(t, "/?lang=ru")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lang="ru"`)
}
