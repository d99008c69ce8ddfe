// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web serves the public HTML pages of the profile site.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"profilcms/internal/cache"
	"profilcms/internal/content"
	"profilcms/internal/i18n"
	"profilcms/internal/middleware"
	"profilcms/internal/model"
	"profilcms/internal/render"
	"profilcms/internal/seo"
	"profilcms/internal/uikit"
)

// pageCacheTTL bounds how stale a cached public page may get.
const pageCacheTTL = 5 * time.Minute

// Handler renders the public pages.
type Handler struct {
	content        *content.Service
	languages      *cache.Languages
	catalog        *i18n.Catalog
	renderer       *render.Renderer
	pages          cache.Cache
	site           seo.Site
	captchaSiteKey string
	log            *slog.Logger
}

// Config wires a web Handler.
type Config struct {
	Content        *content.Service
	Languages      *cache.Languages
	Catalog        *i18n.Catalog
	Renderer       *render.Renderer
	Pages          cache.Cache
	Site           seo.Site
	CaptchaSiteKey string
	Log            *slog.Logger
}

// NewHandler creates the public page handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		content:        cfg.Content,
		languages:      cfg.Languages,
		catalog:        cfg.Catalog,
		renderer:       cfg.Renderer,
		pages:          cfg.Pages,
		site:           cfg.Site,
		captchaSiteKey: cfg.CaptchaSiteKey,
		log:            cfg.Log,
	}
}

// Routes builds the public page router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/berita", h.Berita)
	r.Get("/berita/{slug}", h.BeritaDetail)
	r.Get("/galeri", h.Galeri)
	r.Get("/publikasi", h.Publikasi)
	r.Get("/pengalaman", h.Pengalaman)
	r.Get("/tentang", h.Tentang)
	r.Get("/kontak", h.Kontak)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.NotFound(h.NotFound)
	return r
}

func (h *Handler) baseData(r *http.Request) render.TemplateData {
	lang := middleware.LanguageFromContext(r.Context())
	langs, err := h.languages.Active(r.Context())
	if err != nil {
		h.log.Error("loading languages", "error", err)
	}
	return render.TemplateData{Lang: lang, Languages: langs}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.log.Error("rendering page", "template", name, "error", err)
		http.Error(w, h.catalog.T(data.Lang.Code, "error.server"), http.StatusInternalServerError)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	lang := middleware.LanguageFromContext(r.Context())
	h.log.Error("page request failed", "path", r.URL.Path, "error", err)
	http.Error(w, h.catalog.T(lang.Code, "error.server"), http.StatusInternalServerError)
}

// singleton fetches a singleton section's only item, published or not.
func (h *Handler) singleton(ctx context.Context, section, lang string) *content.Item {
	items, _, err := h.content.List(ctx, section, content.ListOptions{Lang: lang, Limit: 1})
	if err != nil || len(items) == 0 {
		return nil
	}
	return &items[0]
}

func (h *Handler) list(ctx context.Context, section, lang string, limit int64) []content.Item {
	items, _, err := h.content.List(ctx, section, content.ListOptions{
		Lang:          lang,
		PublishedOnly: true,
		Limit:         limit,
	})
	if err != nil {
		h.log.Error("listing section", "section", section, "error", err)
		return nil
	}
	return items
}

// homeData is the payload of the home page template.
type homeData struct {
	Hero      *content.Item
	Tentang   *content.Item
	Berita    []content.Item
	Testimoni []content.Item
	Logos     []content.Item
	Sosial    []content.Item
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	ctx := r.Context()

	d := homeData{
		Hero:      h.singleton(ctx, model.SectionHero, lang.Code),
		Tentang:   h.singleton(ctx, model.SectionTentang, lang.Code),
		Berita:    h.list(ctx, model.SectionBerita, lang.Code, 6),
		Testimoni: h.list(ctx, model.SectionTestimoni, lang.Code, 12),
		Logos:     h.list(ctx, model.SectionLogo, lang.Code, 24),
		Sosial:    h.list(ctx, model.SectionSosialMedia, lang.Code, 12),
	}
	data := h.baseData(r)
	data.Data = d
	data.Meta = seo.ForPage("", h.site.PersonName, h.site, "/")
	if d.Tentang != nil {
		var socials []string
		for _, s := range d.Sosial {
			if s.LinkURL != "" {
				socials = append(socials, s.LinkURL)
			}
		}
		data.JSONLD = seo.PersonJSONLD(*d.Tentang, h.site, socials)
	}
	h.renderPage(w, r, http.StatusOK, "home", data)
}

// listPage renders one paginated section list.
func (h *Handler) listPage(w http.ResponseWriter, r *http.Request, section, templateName, navKey string) {
	lang := middleware.LanguageFromContext(r.Context())
	page := uikit.ParsePage(r.URL.Query().Get("page"))
	search := r.URL.Query().Get("search")

	items, total, err := h.content.List(r.Context(), section, content.ListOptions{
		Search:        search,
		Lang:          lang.Code,
		PublishedOnly: true,
		Limit:         uikit.DefaultPageSize,
		Offset:        (page - 1) * uikit.DefaultPageSize,
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	p := uikit.Paginate(page, uikit.DefaultPageSize, total)

	data := h.baseData(r)
	data.Data = items
	data.Pagination = &p
	data.Search = search
	data.Meta = seo.ForPage(h.catalog.T(lang.Code, navKey), "", h.site, "/"+section)
	h.renderPage(w, r, http.StatusOK, templateName, data)
}

// Berita renders the news archive.
func (h *Handler) Berita(w http.ResponseWriter, r *http.Request) {
	h.listPage(w, r, model.SectionBerita, "berita", "nav.berita")
}

// BeritaDetail renders one news article addressed by slug.
func (h *Handler) BeritaDetail(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	item, err := h.content.GetBySlug(r.Context(), model.SectionBerita, slug, lang.Code)
	if err != nil || !item.IsPublished {
		h.NotFound(w, r)
		return
	}

	path := "/berita/" + item.Slug
	data := h.baseData(r)
	data.Data = item
	data.Meta = seo.ForItem(item, h.site, path)
	data.JSONLD = seo.ArticleJSONLD(item, h.site, path)
	h.renderPage(w, r, http.StatusOK, "berita_detail", data)
}

// Galeri renders the photo gallery.
func (h *Handler) Galeri(w http.ResponseWriter, r *http.Request) {
	h.listPage(w, r, model.SectionGaleri, "galeri", "nav.galeri")
}

// Publikasi renders the publication list.
func (h *Handler) Publikasi(w http.ResponseWriter, r *http.Request) {
	h.listPage(w, r, model.SectionPublikasi, "publikasi", "nav.publikasi")
}

// Pengalaman renders the experience page.
func (h *Handler) Pengalaman(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	items := h.list(r.Context(), model.SectionPengalaman, lang.Code, 100)

	data := h.baseData(r)
	data.Data = items
	data.Meta = seo.ForPage(h.catalog.T(lang.Code, "nav.tentang"), "", h.site, "/pengalaman")
	h.renderPage(w, r, http.StatusOK, "pengalaman", data)
}

// tentangData is the payload of the about page.
type tentangData struct {
	Tentang    *content.Item
	Biografi   *content.Item
	RekamJejak []content.Item
}

// Tentang renders the about page: tentang, biografi and the track record.
func (h *Handler) Tentang(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	ctx := r.Context()

	d := tentangData{
		Tentang:    h.singleton(ctx, model.SectionTentang, lang.Code),
		Biografi:   h.singleton(ctx, model.SectionBiografi, lang.Code),
		RekamJejak: h.list(ctx, model.SectionRekamJejak, lang.Code, 100),
	}
	data := h.baseData(r)
	data.Data = d
	data.Meta = seo.ForPage(h.catalog.T(lang.Code, "nav.tentang"), "", h.site, "/tentang")
	if d.Tentang != nil {
		data.JSONLD = seo.PersonJSONLD(*d.Tentang, h.site, nil)
	}
	h.renderPage(w, r, http.StatusOK, "tentang", data)
}

// kontakData is the payload of the contact page.
type kontakData struct {
	CaptchaSiteKey string
}

// Kontak renders the contact form page.
func (h *Handler) Kontak(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	data := h.baseData(r)
	data.Data = kontakData{CaptchaSiteKey: h.captchaSiteKey}
	data.Meta = seo.ForPage(h.catalog.T(lang.Code, "nav.kontak"), "", h.site, "/kontak")
	h.renderPage(w, r, http.StatusOK, "kontak", data)
}

// Sitemap serves sitemap.xml. The document is cached between content
// changes; regeneration walks the published slugs.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	const key = "sitemap.xml"
	if h.pages != nil {
		if cached, err := h.pages.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
			_, _ = w.Write(cached)
			return
		}
	}

	entries := []seo.SitemapEntry{
		{Loc: h.site.URL + "/"},
		{Loc: h.site.URL + "/berita"},
		{Loc: h.site.URL + "/galeri"},
		{Loc: h.site.URL + "/publikasi"},
		{Loc: h.site.URL + "/pengalaman"},
		{Loc: h.site.URL + "/tentang"},
		{Loc: h.site.URL + "/kontak"},
	}
	items, _, err := h.content.List(r.Context(), model.SectionBerita, content.ListOptions{
		PublishedOnly: true,
		Limit:         uikit.MaxPageSize,
	})
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	for _, it := range items {
		if it.Slug == "" {
			continue
		}
		e := seo.SitemapEntry{Loc: h.site.URL + "/berita/" + it.Slug}
		if t, err := time.Parse(time.RFC3339, it.UpdatedAt); err == nil {
			e.LastMod = t
		}
		entries = append(entries, e)
	}

	doc := []byte(seo.Sitemap(entries))
	if h.pages != nil {
		_ = h.pages.Set(r.Context(), key, doc, pageCacheTTL)
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(doc)
}

// Robots serves robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\nSitemap: " + h.site.URL + "/sitemap.xml\n"))
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())
	data := h.baseData(r)
	data.Meta = seo.ForPage(h.catalog.T(lang.Code, "page.not_found"), "", h.site, r.URL.Path)
	data.Meta.Robots = "noindex"
	h.renderPage(w, r, http.StatusNotFound, "notfound", data)
}
