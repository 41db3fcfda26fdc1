// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in records and queries.
const DateLayout = "2006-01-02"

// NoteColor is a selectable note color with its display name.
type NoteColor struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// NoteColors lists the selectable colors; the first is the default.
var NoteColors = []NoteColor{
	{Value: "#27ae60", Name: "Xanh lá"},
	{Value: "#3498db", Name: "Xanh dương"},
	{Value: "#9b59b6", Name: "Tím"},
	{Value: "#e67e22", Name: "Cam"},
	{Value: "#e74c3c", Name: "Đỏ"},
	{Value: "#95a5a6", Name: "Xám"},
}

// DefaultNoteColor is applied when a note is saved without a color.
var DefaultNoteColor = NoteColors[0].Value

// IsNoteColor reports whether c is a selectable color.
func IsNoteColor(c string) bool {
	return slices.ContainsFunc(NoteColors, func(nc NoteColor) bool { return nc.Value == c })
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidClock reports whether s is an HH:MM time of day.
func ValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// CalendarNote is a user-authored note attached to a date.
type CalendarNote struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	Time    *string `json:"time,omitempty"`
}

// NoteInput carries the editable note fields.
type NoteInput struct {
	Date    string  `json:"date"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	Time    *string `json:"time,omitempty"`
}

// Normalized trims text, defaults the color and drops an empty time.
func (in NoteInput) Normalized() NoteInput {
	in.Date = strings.TrimSpace(in.Date)
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Color = strings.TrimSpace(in.Color)
	if in.Color == "" {
		in.Color = DefaultNoteColor
	}
	if in.Time != nil {
		t := strings.TrimSpace(*in.Time)
		if t == "" {
			in.Time = nil
		} else {
			in.Time = &t
		}
	}
	return in
}

// Validate checks a normalized note input.
func (in NoteInput) Validate() error {
	v := &ValidationError{}
	if in.Title == "" {
		v.Add("title", MsgRequired)
	}
	switch {
	case in.Date == "":
		v.Add("date", MsgRequired)
	case !ValidDate(in.Date):
		v.Add("date", MsgInvalidDate)
	}
	if !IsNoteColor(in.Color) {
		v.Add("color", MsgInvalidColor)
	}
	if in.Time != nil && !ValidClock(*in.Time) {
		v.Add("time", MsgInvalidTime)
	}
	return v.OrNil()
}

// Apply copies the input onto n, keeping its id.
func (in NoteInput) Apply(n CalendarNote) CalendarNote {
	n.Date = in.Date
	n.Title = in.Title
	n.Content = in.Content
	n.Color = in.Color
	n.Time = in.Time
	return n
}
