// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import "strconv"

// Pagination describes one page of a paged listing as serialized to the API.
type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Paginate computes pagination for a total row count. Page and limit are
// normalized: limit falls back to the default, page is clamped into range.
func Paginate(page, limit, total int64) Pagination {
	if limit < 1 {
		limit = DefaultPageSize
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Page:       ClampPage(page, totalPages),
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// DefaultPageSize is the list page size when the request does not set one.
const DefaultPageSize = 10

// MaxPageSize caps the requested limit.
const MaxPageSize = 100

// ClampPage bounds a requested page into [1, totalPages].
func ClampPage(page, totalPages int64) int64 {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// ParsePage reads a page number from query input; anything invalid or
// below one becomes page one.
func ParsePage(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset converts a normalized page and limit into a row offset.
func (p Pagination) Offset() int64 {
	return (p.Page - 1) * p.Limit
}
