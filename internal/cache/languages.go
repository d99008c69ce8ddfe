// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"sync"

	"profilcms/internal/model"
	"profilcms/internal/store"
)

// Languages caches the language table in-process. The table is tiny and
// consulted on every request, so it is loaded once and invalidated
// explicitly on any language change.
type Languages struct {
	q *store.Queries

	mu       sync.RWMutex
	loaded   bool
	all      []model.Language
	active   []model.Language
	byCode   map[string]model.Language
	fallback model.Language
}

// NewLanguages creates a language cache over the store.
func NewLanguages(q *store.Queries) *Languages {
	return &Languages{q: q, byCode: make(map[string]model.Language)}
}

func (c *Languages) load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	langs, err := c.q.ListLanguages(ctx)
	if err != nil {
		return fmt.Errorf("loading languages: %w", err)
	}
	c.all = langs
	c.active = c.active[:0]
	c.byCode = make(map[string]model.Language, len(langs))
	for _, l := range langs {
		c.byCode[l.Code] = l
		if l.IsActive {
			c.active = append(c.active, l)
		}
		if l.IsDefault {
			c.fallback = l
		}
	}
	c.loaded = true
	return nil
}

// Active returns the active languages in switcher order.
func (c *Languages) Active(ctx context.Context) ([]model.Language, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Language, len(c.active))
	copy(out, c.active)
	return out, nil
}

// All returns every language, active or not.
func (c *Languages) All(ctx context.Context) ([]model.Language, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Language, len(c.all))
	copy(out, c.all)
	return out, nil
}

// ByCode looks up one language; ok=false for unknown or unloaded codes.
func (c *Languages) ByCode(ctx context.Context, code string) (model.Language, bool) {
	if err := c.load(ctx); err != nil {
		return model.Language{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.byCode[code]
	return l, ok
}

// IsActive reports whether code names an active language.
func (c *Languages) IsActive(ctx context.Context, code string) bool {
	l, ok := c.ByCode(ctx, code)
	return ok && l.IsActive
}

// Default returns the default language, falling back to the fixed default
// code when the table has not been seeded yet.
func (c *Languages) Default(ctx context.Context) model.Language {
	if err := c.load(ctx); err != nil {
		return model.Language{Code: model.DefaultLanguageCode}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fallback.Code == "" {
		return model.Language{Code: model.DefaultLanguageCode}
	}
	return c.fallback
}

// Invalidate drops the cached table; the next read reloads it.
func (c *Languages) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}
