// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listview

import (
	"cmp"
	"slices"
	"testing"
)

type item struct {
	name string
	kind string
	rank int
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func byRank(a, b item) int { return cmp.Compare(a.rank, b.rank) }

var sample = []item{
	{"Marathon Hà Nội", "event", 3},
	{"Tập luyện", "guide", 1},
	{"Dinh dưỡng", "health", 2},
	{"MARATHON tips", "guide", 1},
}

func TestApply(t *testing.T) {
	kind := func(it item) string { return it.kind }
	name := func(it item) string { return it.name }

	tests := []struct {
		name  string
		preds []Predicate[item]
		cmp   func(a, b item) int
		want  []string
	}{
		{"no filters keeps order", nil, nil, []string{"Marathon Hà Nội", "Tập luyện", "Dinh dưỡng", "MARATHON tips"}},
		{"search ignores case", []Predicate[item]{Search("marathon", name)}, nil, []string{"Marathon Hà Nội", "MARATHON tips"}},
		{"search unicode", []Predicate[item]{Search("HÀ NỘI", name)}, nil, []string{"Marathon Hà Nội"}},
		{"equal filter", []Predicate[item]{Equal("guide", kind)}, nil, []string{"Tập luyện", "MARATHON tips"}},
		{"all wildcard", []Predicate[item]{Equal(All, kind)}, nil, names(sample)},
		{"combined", []Predicate[item]{Search("marathon", name), Equal("guide", kind)}, nil, []string{"MARATHON tips"}},
		{"stable sort ties keep order", nil, byRank, []string{"Tập luyện", "MARATHON tips", "Dinh dưỡng", "Marathon Hà Nội"}},
		{"reverse", nil, Reverse(byRank), []string{"Marathon Hà Nội", "Dinh dưỡng", "Tập luyện", "MARATHON tips"}},
		{"no match", []Predicate[item]{Search("bơi", name)}, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Apply(sample, tt.preds, tt.cmp))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := slices.Clone(sample)
	_ = Apply(sample, nil, Reverse(byRank))
	if !slices.Equal(before, sample) {
		t.Error("Apply mutated its input")
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Giải Marathon", "", true},
		{"Giải Marathon", "GIẢI", true},
		{"Giải Marathon", "giai", false},
		{"", "a", false},
		{"ĐÀ NẴNG", "đà nẵng", true},
		{"Straße", "STRASSE", false},
		{"strasse", "ß", false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.s, tt.sub); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.s, tt.sub, got, tt.want)
		}
	}
}
