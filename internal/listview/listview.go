// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listview filters and orders in-memory collections for list screens.
package listview

import (
	"slices"
	"strings"
)

// All is the wildcard value for enumerated filters.
const All = "all"

// Predicate keeps an item when it returns true.
type Predicate[T any] func(T) bool

// Apply returns the items that satisfy every predicate, stably sorted by cmp.
// A nil cmp keeps collection order. The input slice is not modified.
func Apply[T any](items []T, preds []Predicate[T], cmp func(a, b T) int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchAll(it, preds) {
			out = append(out, it)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func matchAll[T any](it T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(it) {
			return false
		}
	}
	return true
}

// ContainsFold reports whether substr occurs in s after lowercasing both.
// Letters only match their own lowercase form, so "ß" never matches "ss".
// An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Search matches when any field contains query ignoring case.
func Search[T any](query string, fields ...func(T) string) Predicate[T] {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	return func(it T) bool {
		for _, f := range fields {
			if ContainsFold(f(it), query) {
				return true
			}
		}
		return false
	}
}

// Equal matches when field equals want, or always when want is All or empty.
func Equal[T any](want string, field func(T) string) Predicate[T] {
	if want == "" || want == All {
		return nil
	}
	return func(it T) bool {
		return field(it) == want
	}
}

// Reverse inverts a comparator.
func Reverse[T any](cmp func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return cmp(b, a) }
}
