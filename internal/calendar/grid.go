// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package calendar lays out a month of calendar entries as a Sunday-first grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/olegiv/vsm-cms/internal/model"
)

// MaxEntriesPerDay is the number of entries rendered inside a day cell.
const MaxEntriesPerDay = 5

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"CN", "T2", "T3", "T4", "T5", "T6", "T7"}

// Cell is one square of the grid. Leading cells before the 1st are blank.
type Cell struct {
	Blank   bool                  `json:"blank,omitempty"`
	Date    string                `json:"date,omitempty"`
	Day     int                   `json:"day,omitempty"`
	Today   bool                  `json:"today,omitempty"`
	Entries []model.CalendarEntry `json:"entries,omitempty"`
	More    int                   `json:"more,omitempty"`
}

// Month is a rendered month.
type Month struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Label    string   `json:"label"`
	Weekdays []string `json:"weekdays"`
	Cells    []Cell   `json:"cells"`
}

// EntriesFunc returns the merged entries of a YYYY-MM-DD date.
type EntriesFunc func(date string) []model.CalendarEntry

// Build lays out month of year. today marks the matching cell; entries is
// called once per day and its result is capped at MaxEntriesPerDay.
func Build(year int, month time.Month, today time.Time, entries EntriesFunc) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	todayStr := today.Format(model.DateLayout)

	m := Month{
		Year:     year,
		Month:    int(month),
		Label:    fmt.Sprintf("Tháng %d", int(month)),
		Weekdays: Weekdays,
		Cells:    make([]Cell, 0, int(first.Weekday())+daysIn),
	}

	for range int(first.Weekday()) {
		m.Cells = append(m.Cells, Cell{Blank: true})
	}

	for d := 1; d <= daysIn; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
		cell := Cell{Date: date, Day: d, Today: date == todayStr}
		if entries != nil {
			all := entries(date)
			if len(all) > MaxEntriesPerDay {
				cell.More = len(all) - MaxEntriesPerDay
				all = all[:MaxEntriesPerDay]
			}
			cell.Entries = all
		}
		m.Cells = append(m.Cells, cell)
	}
	return m
}
