// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// GeoIP resolves client IPs to ISO country codes for the message inbox.
// Optional: without a database path lookups return the empty string.
type GeoIP struct {
	reader *maxminddb.Reader
}

// NewGeoIP opens a MaxMind country database; an empty path disables it.
func NewGeoIP(dbPath string) (*GeoIP, error) {
	if dbPath == "" {
		return &GeoIP{}, nil
	}
	reader, err := maxminddb.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening GeoIP database: %w", err)
	}
	return &GeoIP{reader: reader}, nil
}

// Country returns the ISO 3166-1 country code of ip, or "" when unknown
// or disabled.
func (g *GeoIP) Country(ip string) string {
	if g.reader == nil {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	var record struct {
		Country struct {
			ISOCode string `maxminddb:"iso_code"`
		} `maxminddb:"country"`
	}
	if err := g.reader.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Close releases the database reader.
func (g *GeoIP) Close() error {
	if g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
