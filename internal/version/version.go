// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version exposes build information set via -ldflags.
package version

import "fmt"

var (
	// Version is the release version, overridden at build time.
	Version = "dev"

	// Commit is the git commit hash, overridden at build time.
	Commit = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("profilcms %s (%s)", Version, Commit)
}
