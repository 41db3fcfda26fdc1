// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small text and URL helpers shared by the services.
package util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ASCIIFold transliterates s to ASCII ("Trần Thị Đào" -> "Tran Thi Dao").
func ASCIIFold(s string) string {
	return unidecode.Unidecode(s)
}

// CompactLower lower-cases s, transliterates it to ASCII and drops every
// character that is not a letter or digit.
func CompactLower(s string) string {
	folded := strings.ToLower(ASCIIFold(s))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TitleWords upper-cases the first letter of every space-separated word.
func TitleWords(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}
