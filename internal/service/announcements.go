// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "github.com/olegiv/vsm-cms/internal/model"

// AnnouncementSource supplies read-only organization notices.
type AnnouncementSource interface {
	ForDate(date string) []model.Announcement
}

// StaticAnnouncements is a fixed list of notices.
type StaticAnnouncements []model.Announcement

// ForDate returns the notices on date in list order.
func (s StaticAnnouncements) ForDate(date string) []model.Announcement {
	var out []model.Announcement
	for _, a := range s {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}
