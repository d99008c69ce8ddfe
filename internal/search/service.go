// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package search

import (
	"context"
	"unicode/utf8"

	"profilcms/internal/content"
	"profilcms/internal/model"
)

// Service answers header search queries over published berita.
type Service struct {
	content *content.Service
	limit   int64
}

// NewService creates a search service returning at most limit hits.
func NewService(c *content.Service, limit int64) *Service {
	if limit <= 0 {
		limit = 10
	}
	return &Service{content: c, limit: limit}
}

// Query returns the matching published berita for q in lang. Queries
// below the minimum length return an empty result without touching the
// database.
func (s *Service) Query(ctx context.Context, q, lang string) ([]content.Item, error) {
	if utf8.RuneCountInString(q) < MinQueryLen {
		return []content.Item{}, nil
	}
	items, _, err := s.content.List(ctx, model.SectionBerita, content.ListOptions{
		Search:        q,
		Lang:          lang,
		PublishedOnly: true,
		Limit:         s.limit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []content.Item{}
	}
	return items, nil
}
