// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit holds the shared presentation math of the public site:
// the auto-scroll carousel and pagination helpers.
package uikit

import "sync"

// Carousel models an endless auto-scroll strip. The item set is rendered
// three times back to back; the offset keeps advancing and is snapped
// back by one set width once two set widths have scrolled past, so the
// viewer never sees an edge. Galeri and logo strips share it.
type Carousel struct {
	mu       sync.Mutex
	setWidth float64
	offset   float64
	hovered  bool
}

// NewCarousel creates a carousel over one rendered set of the given width.
func NewCarousel(setWidth float64) *Carousel {
	return &Carousel{setWidth: setWidth}
}

// TripleCount returns how many item copies to render for n items.
func TripleCount(n int) int {
	return n * 3
}

// Advance moves the strip by dx unless hovered. Once the offset reaches
// twice the set width it snaps back to exactly one set width.
func (c *Carousel) Advance(dx float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hovered || c.setWidth <= 0 {
		return
	}
	c.offset += dx
	if c.offset >= 2*c.setWidth {
		c.offset = c.setWidth
	}
}

// SetHovered pauses (true) or resumes (false) advancement.
func (c *Carousel) SetHovered(hovered bool) {
	c.mu.Lock()
	c.hovered = hovered
	c.mu.Unlock()
}

// Offset returns the current scroll offset.
func (c *Carousel) Offset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Resize replaces the set width, keeping the offset inside the live band.
func (c *Carousel) Resize(setWidth float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setWidth = setWidth
	if setWidth > 0 && c.offset >= 2*setWidth {
		c.offset = setWidth
	}
}
