// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds meta tags, JSON-LD structured data and the sitemap
// for the public pages.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"profilcms/internal/content"
)

// Meta holds the head-tag data of one public page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string
	OGSiteName    string
	OGURL         string
	Robots        string
}

// Site carries the site-wide settings meta tags are built from.
type Site struct {
	Name       string
	URL        string
	PersonName string // the profile owner, used for Person JSON-LD
}

// ForItem builds meta tags for a content detail page.
func ForItem(item content.Item, site Site, path string) Meta {
	url := site.URL + path
	m := Meta{
		Title:      item.Title + " | " + site.Name,
		Canonical:  url,
		OGTitle:    item.Title,
		OGType:     "article",
		OGSiteName: site.Name,
		OGURL:      url,
		Robots:     "index,follow",
	}
	if item.Body != "" {
		m.Description = Truncate(content.TrimmedText(item.Body), 160)
		m.OGDescription = m.Description
	} else if item.Subtitle != "" {
		m.Description = item.Subtitle
		m.OGDescription = item.Subtitle
	}
	if item.Foto != "" {
		m.OGImage = absoluteURL(item.Foto, site.URL)
	}
	return m
}

// ForPage builds meta tags for a non-detail page (home, section lists).
func ForPage(title, description string, site Site, path string) Meta {
	t := site.Name
	if title != "" {
		t = title + " | " + site.Name
	}
	return Meta{
		Title:         t,
		Description:   description,
		Canonical:     site.URL + path,
		OGTitle:       t,
		OGDescription: description,
		OGType:        "website",
		OGSiteName:    site.Name,
		OGURL:         site.URL + path,
		Robots:        "index,follow",
	}
}

// ArticleJSONLD renders schema.org Article markup for berita and
// publikasi detail pages.
func ArticleJSONLD(item content.Item, site Site, path string) template.HTML {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": item.Title,
		"url":      site.URL + path,
		"author": map[string]any{
			"@type": "Person",
			"name":  site.PersonName,
		},
	}
	if item.Foto != "" {
		data["image"] = absoluteURL(item.Foto, site.URL)
	}
	if item.PublishedAt != "" {
		data["datePublished"] = item.PublishedAt
	}
	if desc := Truncate(content.TrimmedText(item.Body), 160); desc != "" {
		data["description"] = desc
	}
	return renderJSONLD(data)
}

// PersonJSONLD renders schema.org Person markup for the biografi page.
func PersonJSONLD(item content.Item, site Site, socials []string) template.HTML {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     site.PersonName,
		"url":      site.URL,
	}
	if item.Foto != "" {
		data["image"] = absoluteURL(item.Foto, site.URL)
	}
	if desc := Truncate(content.TrimmedText(item.Body), 300); desc != "" {
		data["description"] = desc
	}
	if len(socials) > 0 {
		data["sameAs"] = socials
	}
	return renderJSONLD(data)
}

func renderJSONLD(data map[string]any) template.HTML {
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	// #nosec G203 -- marshaled from our own values, never raw user HTML
	return template.HTML(`<script type="application/ld+json">` + string(b) + `</script>`)
}

// Truncate shortens s to at most n runes on a word boundary, appending an
// ellipsis when cut.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

// SitemapEntry is one URL of the sitemap.
type SitemapEntry struct {
	Loc     string
	LastMod time.Time
}

// Sitemap renders a minimal sitemap.xml document.
func Sitemap(entries []SitemapEntry) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, e := range entries {
		sb.WriteString("  <url><loc>")
		sb.WriteString(xmlEscape(e.Loc))
		sb.WriteString("</loc>")
		if !e.LastMod.IsZero() {
			sb.WriteString("<lastmod>")
			sb.WriteString(e.LastMod.Format("2006-01-02"))
			sb.WriteString("</lastmod>")
		}
		sb.WriteString("</url>\n")
	}
	sb.WriteString("</urlset>\n")
	return sb.String()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	return r.Replace(s)
}

func absoluteURL(path, siteURL string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return siteURL + path
}
