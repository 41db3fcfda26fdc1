// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestCompactLower(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Lan Nguyen", "lannguyen"},
		{"Trần Thị B", "tranthib"},
		{"Đặng Văn Đức", "dangvanduc"},
		{"  Quách  Thành Long ", "quachthanhlong"},
		{"O'Brien-Smith 2", "obriensmith2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CompactLower(tt.input); got != tt.want {
				t.Errorf("CompactLower(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleWords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nguyen van a", "Nguyen Van A"},
		{"longquachthanh1307", "Longquachthanh1307"},
		{"admin", "Admin"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleWords(tt.input); got != tt.want {
			t.Errorf("TitleWords(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
