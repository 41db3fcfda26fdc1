// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Announcement is an organization-wide calendar notice. It is never stored
// with user notes and cannot be edited or deleted through them.
type Announcement struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	Time    *string `json:"time,omitempty"`
}

// CalendarEntry is one row of a day's calendar view.
type CalendarEntry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Color    string  `json:"color"`
	Time     *string `json:"time,omitempty"`
	ReadOnly bool    `json:"readOnly"`
}

// Entry converts the announcement to a read-only calendar row.
func (a Announcement) Entry() CalendarEntry {
	return CalendarEntry{
		ID: a.ID, Date: a.Date, Title: a.Title, Content: a.Content,
		Color: a.Color, Time: a.Time, ReadOnly: true,
	}
}

// Entry converts the note to an editable calendar row.
func (n CalendarNote) Entry() CalendarEntry {
	return CalendarEntry{
		ID: n.ID, Date: n.Date, Title: n.Title, Content: n.Content,
		Color: n.Color, Time: n.Time,
	}
}

// MergeDay returns announcements followed by notes, each group in its given order.
func MergeDay(announcements []Announcement, notes []CalendarNote) []CalendarEntry {
	out := make([]CalendarEntry, 0, len(announcements)+len(notes))
	for _, a := range announcements {
		out = append(out, a.Entry())
	}
	for _, n := range notes {
		out = append(out, n.Entry())
	}
	return out
}
