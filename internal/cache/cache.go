// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching infrastructure of the site: a byte
// cache with memory and Redis backends plus typed caches built on top.
package cache

import (
	"context"
	"time"
)

// Cache is a thread-safe byte cache. Values are []byte so memory and
// Redis backends are interchangeable.
type Cache interface {
	// Get returns the cached value, or ErrMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero ttl uses the backend's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry under this cache's control.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)

// Options configures cache construction.
type Options struct {
	RedisURL   string // empty selects the memory backend
	Prefix     string // key prefix, e.g. "profil:"
	DefaultTTL time.Duration
	MaxSize    int // memory backend entry cap (0 = unlimited)
}

// New builds a cache from options: Redis when a URL is configured,
// in-process memory otherwise.
func New(opts Options) (Cache, error) {
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = time.Hour
	}
	if opts.RedisURL != "" {
		return NewRedis(opts)
	}
	return NewMemory(opts), nil
}
