// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/mileusna/useragent"
)

// SummarizeUserAgent reduces a raw User-Agent header to a short
// "Browser x.y on OS" summary for the message inbox. Raw headers are
// never stored.
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.Parse(raw)

	var sb strings.Builder
	switch {
	case ua.Bot:
		sb.WriteString("Bot")
		if ua.Name != "" {
			sb.WriteString(" (" + ua.Name + ")")
		}
	case ua.Name != "":
		sb.WriteString(ua.Name)
		if ua.Version != "" {
			sb.WriteString(" " + majorVersion(ua.Version))
		}
	default:
		return "Unknown"
	}
	if ua.OS != "" {
		sb.WriteString(" on " + ua.OS)
		if ua.OSVersion != "" {
			sb.WriteString(" " + majorVersion(ua.OSVersion))
		}
	}
	return sb.String()
}

func majorVersion(v string) string {
	if idx := strings.IndexByte(v, '.'); idx > 0 {
		return v[:idx]
	}
	return v
}
