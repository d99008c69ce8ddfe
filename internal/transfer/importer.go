// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer imports content from the previous site's MySQL
// database. The legacy schema stored one table per section with flat
// Indonesian-only text columns; everything lands here as an item with a
// single id translation.
package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"

	"profilcms/internal/content"
	"profilcms/internal/model"
	"profilcms/internal/store"
	"profilcms/internal/util"
)

// Importer copies legacy rows into the content store.
type Importer struct {
	legacy *sql.DB
	dest   *content.Service
	q      *store.Queries
	log    *slog.Logger
}

// NewImporter connects to the legacy MySQL database.
func NewImporter(dsn string, dest *content.Service, q *store.Queries, log *slog.Logger) (*Importer, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}
	return &Importer{legacy: db, dest: dest, q: q, log: log}, nil
}

// Close releases the legacy connection.
func (im *Importer) Close() error { return im.legacy.Close() }

// Run imports every supported legacy table. Individual row failures are
// logged and skipped so one bad record does not abort the import.
func (im *Importer) Run(ctx context.Context) error {
	imports := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"berita", im.importBerita},
		{"galeri", im.importGaleri},
		{"publikasi", im.importPublikasi},
		{"pesan", im.importPesan},
	}
	for _, step := range imports {
		n, err := step.fn(ctx)
		if err != nil {
			return fmt.Errorf("importing %s: %w", step.name, err)
		}
		im.log.Info("legacy import finished", "table", step.name, "rows", n)
	}
	return nil
}

func (im *Importer) importBerita(ctx context.Context) (int, error) {
	rows, err := im.legacy.QueryContext(ctx, `
		SELECT judul, isi, COALESCE(slug, ''), COALESCE(kategori, ''), created_at
		FROM berita ORDER BY id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var judul, isi, slug, kategori string
		var createdAt sql.NullTime
		if err := rows.Scan(&judul, &isi, &slug, &kategori, &createdAt); err != nil {
			return count, err
		}
		set := content.NewTranslationSet()
		_ = set.SetField(model.LangIndonesian, content.FieldTitle, judul)
		_ = set.SetField(model.LangIndonesian, content.FieldBody, isi)
		slug = util.SlugIfEmpty(slug, judul)
		in := content.Input{Translations: set, Slug: &slug}
		if kategori != "" {
			in.Category = &kategori
		}
		if _, err := im.dest.Create(ctx, model.SectionBerita, in); err != nil {
			im.log.Warn("skipping legacy berita", "judul", judul, "error", err)
			continue
		}
		count++
	}
	return count, rows.Err()
}

func (im *Importer) importGaleri(ctx context.Context) (int, error) {
	rows, err := im.legacy.QueryContext(ctx, `
		SELECT judul, COALESCE(keterangan, ''), COALESCE(urutan, 0)
		FROM galeri ORDER BY urutan, id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var judul, keterangan string
		var urutan int64
		if err := rows.Scan(&judul, &keterangan, &urutan); err != nil {
			return count, err
		}
		set := content.NewTranslationSet()
		_ = set.SetField(model.LangIndonesian, content.FieldTitle, judul)
		_ = set.SetField(model.LangIndonesian, content.FieldCaption, keterangan)
		if _, err := im.dest.Create(ctx, model.SectionGaleri, content.Input{
			Translations: set,
			Urutan:       &urutan,
		}); err != nil {
			im.log.Warn("skipping legacy galeri", "judul", judul, "error", err)
			continue
		}
		count++
	}
	return count, rows.Err()
}

func (im *Importer) importPublikasi(ctx context.Context) (int, error) {
	rows, err := im.legacy.QueryContext(ctx, `
		SELECT judul, COALESCE(deskripsi, ''), COALESCE(tahun, 0), COALESCE(link, '')
		FROM publikasi ORDER BY id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var judul, deskripsi, link string
		var tahun int64
		if err := rows.Scan(&judul, &deskripsi, &tahun, &link); err != nil {
			return count, err
		}
		set := content.NewTranslationSet()
		_ = set.SetField(model.LangIndonesian, content.FieldTitle, judul)
		_ = set.SetField(model.LangIndonesian, content.FieldBody, deskripsi)
		in := content.Input{Translations: set}
		if tahun > 0 {
			in.Tahun = &tahun
		}
		if link != "" {
			in.LinkURL = &link
		}
		if _, err := im.dest.Create(ctx, model.SectionPublikasi, in); err != nil {
			im.log.Warn("skipping legacy publikasi", "judul", judul, "error", err)
			continue
		}
		count++
	}
	return count, rows.Err()
}

func (im *Importer) importPesan(ctx context.Context) (int, error) {
	rows, err := im.legacy.QueryContext(ctx, `
		SELECT nama, email, COALESCE(subjek, ''), isi
		FROM pesan ORDER BY id`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var nama, email, subjek, isi string
		if err := rows.Scan(&nama, &email, &subjek, &isi); err != nil {
			return count, err
		}
		if _, err := im.q.CreateMessage(ctx, store.CreateMessageParams{
			Nama: nama, Email: email, Subjek: subjek, Isi: isi,
		}); err != nil {
			im.log.Warn("skipping legacy pesan", "email", email, "error", err)
			continue
		}
		count++
	}
	return count, rows.Err()
}
