// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"profilcms/internal/model"
	"profilcms/internal/store"
	"profilcms/internal/util"
)

// Service runs content operations for every section through the shared
// storage shape. Writes happen in one transaction per operation.
type Service struct {
	db  *sql.DB
	q   *store.Queries
	log *slog.Logger
}

// NewService creates a content service.
func NewService(db *sql.DB, log *slog.Logger) *Service {
	return &Service{db: db, q: store.New(db), log: log}
}

// Input carries a create or update request. Nil pointers mean "leave
// untouched" on update and "use the zero value" on create. A nil
// Translations on update keeps the existing translation set.
type Input struct {
	Translations *TranslationSet
	Slug         *string
	Urutan       *int64
	Category     *string
	IsPublished  *bool
	Tahun        *int64
	LinkURL      *string
	ScheduledAt  *time.Time
	Foto         *string  // stored media path, set by the media layer
	Kegiatan     []string // replaces the activity list when non-nil
}

// ListOptions filters List.
type ListOptions struct {
	Search        string
	Lang          string
	PublishedOnly bool
	Limit         int64
	Offset        int64
}

// Create validates and stores a new item with its translations.
func (s *Service) Create(ctx context.Context, section string, in Input) (Item, error) {
	cfg, ok := Lookup(section)
	if !ok {
		return Item{}, ErrNotFound
	}
	set := in.Translations
	if set == nil {
		set = NewTranslationSet()
	}
	if err := Validate(cfg, set, model.DefaultLanguageCode); err != nil {
		return Item{}, err
	}

	if cfg.Singleton {
		n, err := s.q.CountItems(ctx, store.ListItemsParams{Section: section})
		if err != nil {
			return Item{}, fmt.Errorf("counting %s items: %w", section, err)
		}
		if n > 0 {
			return Item{}, &ValidationError{Fields: map[string]string{"section": "sudah ada"}}
		}
	}

	var slug string
	if in.Slug != nil {
		slug = *in.Slug
	}
	slug = AutoSlug(cfg, slug, set)
	if slug != "" {
		taken, err := s.q.SlugExists(ctx, section, slug, 0)
		if err != nil {
			return Item{}, fmt.Errorf("checking slug: %w", err)
		}
		if taken {
			return Item{}, &ValidationError{Fields: map[string]string{"slug": "sudah digunakan"}}
		}
	}

	params := store.CreateItemParams{
		Section:     section,
		Slug:        util.NullStringFromValue(slug),
		IsPublished: !cfg.HasPublish, // sections without a publish flag are always live
	}
	if in.Urutan != nil && cfg.HasUrutan {
		params.Urutan = *in.Urutan
	}
	if in.Category != nil && cfg.HasCategory {
		params.Category = util.NullStringFromValue(*in.Category)
	}
	if in.Tahun != nil && cfg.HasTahun {
		params.Tahun = util.NullInt64FromPtr(in.Tahun)
	}
	if in.LinkURL != nil && cfg.HasLink {
		params.LinkURL = util.NullStringFromValue(*in.LinkURL)
	}
	if in.Foto != nil && cfg.HasPhoto {
		params.Foto = util.NullStringFromValue(*in.Foto)
	}
	if cfg.HasPublish {
		if in.ScheduledAt != nil {
			params.ScheduledAt = util.NullTimeFromPtr(in.ScheduledAt)
		} else if in.IsPublished == nil || *in.IsPublished {
			params.IsPublished = true
			params.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}

	var created model.ContentItem
	err := s.inTx(ctx, func(q *store.Queries) error {
		var err error
		created, err = q.CreateItem(ctx, params)
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}
		for _, f := range set.Flatten() {
			err := q.UpsertTranslation(ctx, store.UpsertTranslationParams{
				ItemID:       created.ID,
				LanguageCode: f.LanguageCode,
				Title:        f.Title,
				Subtitle:     f.Subtitle,
				Body:         f.Body,
				Caption:      f.Caption,
			})
			if err != nil {
				return fmt.Errorf("storing %s translation: %w", f.LanguageCode, err)
			}
		}
		if in.Kegiatan != nil && cfg.HasActivities {
			if err := q.ReplaceActivities(ctx, created.ID, in.Kegiatan); err != nil {
				return fmt.Errorf("storing kegiatan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	s.log.Info("content created", "section", section, "id", created.ID)
	return s.Get(ctx, section, created.ID, model.DefaultLanguageCode)
}

// Update overlays the input on an existing item. A non-nil Translations
// replaces the whole translation set: languages absent from the payload
// are deleted.
func (s *Service) Update(ctx context.Context, section string, id int64, in Input) (Item, error) {
	cfg, ok := Lookup(section)
	if !ok {
		return Item{}, ErrNotFound
	}
	existing, err := s.q.GetItemByID(ctx, section, id)
	if store.IsNotFound(err) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("loading item: %w", err)
	}

	if in.Translations != nil {
		if err := Validate(cfg, in.Translations, model.DefaultLanguageCode); err != nil {
			return Item{}, err
		}
	}

	params := store.UpdateItemParams{
		ID:          existing.ID,
		Slug:        existing.Slug,
		Urutan:      existing.Urutan,
		Category:    existing.Category,
		IsPublished: existing.IsPublished,
		Foto:        existing.Foto,
		Tahun:       existing.Tahun,
		LinkURL:     existing.LinkURL,
		PublishedAt: existing.PublishedAt,
		ScheduledAt: existing.ScheduledAt,
	}
	if in.Slug != nil && cfg.HasSlug {
		slug := *in.Slug
		if in.Translations != nil {
			slug = AutoSlug(cfg, slug, in.Translations)
		}
		if slug != "" {
			taken, err := s.q.SlugExists(ctx, section, slug, id)
			if err != nil {
				return Item{}, fmt.Errorf("checking slug: %w", err)
			}
			if taken {
				return Item{}, &ValidationError{Fields: map[string]string{"slug": "sudah digunakan"}}
			}
		}
		params.Slug = util.NullStringFromValue(slug)
	}
	if in.Urutan != nil && cfg.HasUrutan {
		params.Urutan = *in.Urutan
	}
	if in.Category != nil && cfg.HasCategory {
		params.Category = util.NullStringFromValue(*in.Category)
	}
	if in.Tahun != nil && cfg.HasTahun {
		params.Tahun = util.NullInt64FromPtr(in.Tahun)
	}
	if in.LinkURL != nil && cfg.HasLink {
		params.LinkURL = util.NullStringFromValue(*in.LinkURL)
	}
	if in.Foto != nil && cfg.HasPhoto {
		params.Foto = util.NullStringFromValue(*in.Foto)
	}
	if cfg.HasPublish {
		if in.ScheduledAt != nil {
			params.ScheduledAt = util.NullTimeFromPtr(in.ScheduledAt)
			params.IsPublished = false
		}
		if in.IsPublished != nil {
			params.IsPublished = *in.IsPublished
			if *in.IsPublished && !existing.IsPublished {
				params.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
				params.ScheduledAt = sql.NullTime{}
			}
		}
	}

	err = s.inTx(ctx, func(q *store.Queries) error {
		if err := q.UpdateItem(ctx, params); err != nil {
			return fmt.Errorf("updating item: %w", err)
		}
		if in.Translations != nil {
			flat := in.Translations.Flatten()
			keep := make([]string, 0, len(flat))
			for _, f := range flat {
				keep = append(keep, f.LanguageCode)
				err := q.UpsertTranslation(ctx, store.UpsertTranslationParams{
					ItemID:       id,
					LanguageCode: f.LanguageCode,
					Title:        f.Title,
					Subtitle:     f.Subtitle,
					Body:         f.Body,
					Caption:      f.Caption,
				})
				if err != nil {
					return fmt.Errorf("storing %s translation: %w", f.LanguageCode, err)
				}
			}
			if err := q.DeleteTranslationsNotIn(ctx, id, keep); err != nil {
				return fmt.Errorf("pruning translations: %w", err)
			}
		}
		if in.Kegiatan != nil && cfg.HasActivities {
			if err := q.ReplaceActivities(ctx, id, in.Kegiatan); err != nil {
				return fmt.Errorf("storing kegiatan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Item{}, err
	}

	s.log.Info("content updated", "section", section, "id", id)
	return s.Get(ctx, section, id, model.DefaultLanguageCode)
}

// Get returns one item with its translations, flattened for lang.
func (s *Service) Get(ctx context.Context, section string, id int64, lang string) (Item, error) {
	it, err := s.q.GetItemByID(ctx, section, id)
	if store.IsNotFound(err) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("loading item: %w", err)
	}
	return s.assemble(ctx, it, lang)
}

// GetBySlug returns one item addressed by its language-independent slug.
func (s *Service) GetBySlug(ctx context.Context, section, slug, lang string) (Item, error) {
	it, err := s.q.GetItemBySlug(ctx, section, slug)
	if store.IsNotFound(err) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("loading item: %w", err)
	}
	return s.assemble(ctx, it, lang)
}

// List returns one page of a section's items plus the unpaged total.
func (s *Service) List(ctx context.Context, section string, opts ListOptions) ([]Item, int64, error) {
	if _, ok := Lookup(section); !ok {
		return nil, 0, ErrNotFound
	}
	params := store.ListItemsParams{
		Section:       section,
		Search:        opts.Search,
		PublishedOnly: opts.PublishedOnly,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}
	rows, err := s.q.ListItems(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("listing items: %w", err)
	}
	total, err := s.q.CountItems(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, it := range rows {
		item, err := s.assemble(ctx, it, opts.Lang)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

// Delete removes an item and everything hanging off it.
func (s *Service) Delete(ctx context.Context, section string, id int64) error {
	n, err := s.q.DeleteItem(ctx, section, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("content deleted", "section", section, "id", id)
	return nil
}

// AddPhoto attaches one stored media path to a gallery-capable item.
func (s *Service) AddPhoto(ctx context.Context, section string, id int64, path string) (model.Photo, error) {
	cfg, ok := Lookup(section)
	if !ok || !cfg.HasGallery {
		return model.Photo{}, ErrNotFound
	}
	if _, err := s.q.GetItemByID(ctx, section, id); err != nil {
		if store.IsNotFound(err) {
			return model.Photo{}, ErrNotFound
		}
		return model.Photo{}, fmt.Errorf("loading item: %w", err)
	}
	existing, err := s.q.ListPhotos(ctx, id)
	if err != nil {
		return model.Photo{}, fmt.Errorf("listing photos: %w", err)
	}
	return s.q.AddPhoto(ctx, id, path, int64(len(existing)+1))
}

// RemovePhoto detaches one gallery photo and returns its stored path so the
// caller can delete the file.
func (s *Service) RemovePhoto(ctx context.Context, photoID int64) (string, error) {
	p, err := s.q.GetPhoto(ctx, photoID)
	if store.IsNotFound(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading photo: %w", err)
	}
	if err := s.q.DeletePhoto(ctx, photoID); err != nil {
		return "", fmt.Errorf("deleting photo: %w", err)
	}
	return p.Path, nil
}

func (s *Service) assemble(ctx context.Context, it model.ContentItem, lang string) (Item, error) {
	trs, err := s.q.ListTranslations(ctx, it.ID)
	if err != nil {
		return Item{}, fmt.Errorf("loading translations: %w", err)
	}
	cfg, _ := Lookup(it.Section)
	var photos []model.Photo
	if cfg.HasGallery {
		if photos, err = s.q.ListPhotos(ctx, it.ID); err != nil {
			return Item{}, fmt.Errorf("loading photos: %w", err)
		}
	}
	var acts []model.Activity
	if cfg.HasActivities {
		if acts, err = s.q.ListActivities(ctx, it.ID); err != nil {
			return Item{}, fmt.Errorf("loading kegiatan: %w", err)
		}
	}
	return BuildItem(it, trs, photos, acts, lang), nil
}

func (s *Service) inTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(s.q.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
