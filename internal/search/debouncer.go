// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package search implements the header news search: a keystroke debouncer
// and the LIKE-based query service behind /api/search.
package search

import (
	"sync"
	"time"
	"unicode/utf8"
)

// MinQueryLen is the minimum query length, in runes, before a search runs.
const MinQueryLen = 2

// DefaultDebounce is the quiet period after the last keystroke.
const DefaultDebounce = 500 * time.Millisecond

type pendingQuery struct {
	query string
	timer *time.Timer
}

// Debouncer coalesces rapid keystrokes into one search per input field.
// Every update resets the key's timer; after the quiet interval the
// callback fires once with the final query. Queries shorter than
// MinQueryLen never fire and cancel any pending run.
type Debouncer struct {
	interval time.Duration
	fire     func(key, query string)

	mu      sync.Mutex
	pending map[string]*pendingQuery
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet interval; zero
// uses DefaultDebounce.
func NewDebouncer(interval time.Duration, fire func(key, query string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  make(map[string]*pendingQuery),
	}
}

// Update records the latest query for key and restarts its timer. A query
// below the minimum length cancels whatever is pending for the key.
func (d *Debouncer) Update(key, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if utf8.RuneCountInString(query) < MinQueryLen {
		if p, ok := d.pending[key]; ok {
			p.timer.Stop()
			delete(d.pending, key)
		}
		return
	}

	if p, ok := d.pending[key]; ok {
		p.query = query
		p.timer.Reset(d.interval)
		return
	}

	p := &pendingQuery{query: query}
	p.timer = time.AfterFunc(d.interval, func() { d.flush(key) })
	d.pending[key] = p
}

func (d *Debouncer) flush(key string) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		delete(d.pending, key)
	}
	stopped := d.stopped
	d.mu.Unlock()

	if ok && !stopped {
		d.fire(key, p.query)
	}
}

// Stop cancels every pending timer. The debouncer cannot be reused.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
