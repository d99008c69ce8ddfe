// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the supporting services around the content
// engine: media storage, captcha verification, machine translation,
// GeoIP lookup and user-agent summaries.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"profilcms/internal/imaging"
)

// MaxUploadBytes caps a single uploaded photo.
const MaxUploadBytes = 10 << 20 // 10 MB

// Media stores uploaded content photos under uuid names.
type Media struct {
	processor *imaging.Processor
	log       *slog.Logger
}

// NewMedia creates the media service over the uploads dir.
func NewMedia(uploadsDir string, log *slog.Logger) *Media {
	return &Media{processor: imaging.NewProcessor(uploadsDir), log: log}
}

// Store processes one multipart file part and returns the stored path.
// The original filename only contributes its extension; the stored name
// is a fresh uuid.
func (m *Media) Store(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadBytes {
		return "", fmt.Errorf("file %s exceeds upload limit", header.Filename)
	}
	name := uuid.NewString() + normalizeExt(header.Filename)
	res, err := m.processor.Process(io.LimitReader(file, MaxUploadBytes+1), name)
	if err != nil {
		return "", fmt.Errorf("processing %s: %w", header.Filename, err)
	}
	m.log.Info("photo stored", "path", res.Path, "width", res.Width, "height", res.Height)
	return res.Path, nil
}

// Remove deletes a stored photo and its variants. Missing files are not
// an error; the database row is the source of truth.
func (m *Media) Remove(path string) {
	if path == "" {
		return
	}
	if err := m.processor.Delete(filepath.Base(path)); err != nil {
		m.log.Warn("removing photo files", "path", path, "error", err)
	}
}

func normalizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
		return ext
	case ".webp":
		// webp uploads are re-encoded as JPEG
		return ".jpg"
	default:
		return ".jpg"
	}
}
