// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses and executes the public site templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"profilcms/internal/i18n"
	"profilcms/internal/model"
	"profilcms/internal/seo"
	"profilcms/internal/uikit"
)

// bodyPolicy sanitizes rendered markdown. Content authors are trusted
// admins, but bodies may contain pasted HTML.
var bodyPolicy = bluemonday.UGCPolicy()

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
	catalog   *i18n.Catalog
}

// New parses every page template against the base layout and partials.
func New(templatesFS fs.FS, catalog *i18n.Catalog) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		catalog:   catalog,
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing partials: %w", err)
	}
	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing pages: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		files := append([]string{"layouts/base.html"}, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(s string) string {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return s
			}
			return t.Format("2 January 2006")
		},
		"formatYear": func(n *int64) string {
			if n == nil {
				return ""
			}
			return fmt.Sprintf("%d", *n)
		},
		"markdown": Markdown,
		"truncate": func(s string, length int) string {
			return seo.Truncate(s, length)
		},
		"add": func(a, b int64) int64 { return a + b },
		"sub": func(a, b int64) int64 { return a - b },
		"seq": func(start, end int64) []int64 {
			var out []int64
			for i := start; i <= end; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}

// Markdown converts a content body to sanitized HTML.
func Markdown(body string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(body))
	}
	return template.HTML(bodyPolicy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}

// TemplateData is the payload of every rendered page.
type TemplateData struct {
	Meta        seo.Meta
	Lang        model.Language
	Languages   []model.Language
	Data        any
	Pagination  *uikit.Pagination
	Search      string
	JSONLD      template.HTML
	CurrentYear int

	catalog *i18n.Catalog
}

// T translates an application string into the page language.
func (d TemplateData) T(key string, args ...any) string {
	if d.catalog == nil {
		return key
	}
	return d.catalog.T(d.Lang.Code, key, args...)
}

// Render executes a page template into a buffer and writes it out.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	data.CurrentYear = time.Now().Year()
	data.catalog = r.catalog

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
