// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Message is a contact message (pesan) submitted by a site visitor.
// Messages are not translated; the admin reads and deletes them.
type Message struct {
	ID        int64          `json:"id"`
	Nama      string         `json:"nama"`
	Email     string         `json:"email"`
	Subjek    string         `json:"subjek"`
	Isi       string         `json:"isi"`
	UserAgent sql.NullString `json:"-"` // browser/OS summary, not the raw header
	Country   sql.NullString `json:"-"` // ISO country from GeoIP when configured
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}
