// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"strings"
)

// MaxURLLength is the maximum accepted length for image URLs.
const MaxURLLength = 2048

// IsSafeImageURL accepts site-relative paths ("/placeholder.svg?...") and
// absolute http(s) URLs. Scheme-relative and script URLs are rejected.
func IsSafeImageURL(raw string) bool {
	if raw == "" || len(raw) > MaxURLLength {
		return false
	}
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//") && !strings.Contains(raw, `\`)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
