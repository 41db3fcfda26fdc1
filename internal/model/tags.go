// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"strings"
)

// Tags is an ordered set of lower-case labels.
type Tags []string

// NormalizeTag trims and lower-cases a tag.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add appends the normalized input unless it is empty or already present.
// It reports whether the tag was added.
func (t Tags) Add(input string) (Tags, bool) {
	tag := NormalizeTag(input)
	if tag == "" || slices.Contains(t, tag) {
		return t, false
	}
	return append(t, tag), true
}

// Remove returns a copy without tag.
func (t Tags) Remove(tag string) Tags {
	out := make(Tags, 0, len(t))
	for _, existing := range t {
		if existing != tag {
			out = append(out, existing)
		}
	}
	return out
}

// NormalizeTags feeds raw entries through Add in order. The result is never nil.
func NormalizeTags(raw []string) Tags {
	out := make(Tags, 0, len(raw))
	for _, r := range raw {
		out, _ = out.Add(r)
	}
	return out
}
