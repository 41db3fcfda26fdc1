// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"testing"
)

func TestTagsAdd(t *testing.T) {
	tests := []struct {
		name      string
		start     Tags
		input     string
		want      Tags
		wantAdded bool
	}{
		{"trim and lower", Tags{}, "  Marathon ", Tags{"marathon"}, true},
		{"duplicate after normalization", Tags{"marathon"}, "MARATHON", Tags{"marathon"}, false},
		{"empty input", Tags{"a"}, "   ", Tags{"a"}, false},
		{"appends at end", Tags{"a"}, "b", Tags{"a", "b"}, true},
		{"unicode lower", nil, "Hà Nội", Tags{"hà nội"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added := tt.start.Add(tt.input)
			if added != tt.wantAdded {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsAddIdempotent(t *testing.T) {
	inputs := []string{"Run", " run", "RUN ", "Trail", "trail"}
	var once Tags
	for _, in := range inputs {
		once, _ = once.Add(in)
	}
	twice := once
	for _, in := range inputs {
		twice, _ = twice.Add(in)
	}
	if !slices.Equal(once, twice) {
		t.Errorf("second pass changed tags: %v -> %v", once, twice)
	}
	if !slices.Equal(once, Tags{"run", "trail"}) {
		t.Errorf("tags = %v", once)
	}
}

func TestTagsRemove(t *testing.T) {
	tags := Tags{"a", "b", "c"}
	got := tags.Remove("b")
	if !slices.Equal(got, Tags{"a", "c"}) {
		t.Errorf("Remove() = %v", got)
	}
	if !slices.Equal(tags, Tags{"a", "b", "c"}) {
		t.Errorf("Remove() mutated receiver: %v", tags)
	}
}

func TestNormalizeTagsNeverNil(t *testing.T) {
	if got := NormalizeTags(nil); got == nil {
		t.Error("NormalizeTags(nil) = nil")
	}
}
