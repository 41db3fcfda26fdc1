// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"cmp"
	"slices"

	"github.com/olegiv/vsm-cms/internal/model"
)

// CategoryCount is the number of articles in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AuthorCount aggregates one author's articles.
type AuthorCount struct {
	Author    string `json:"author"`
	Articles  int    `json:"articles"`
	Published int    `json:"published"`
	Drafts    int    `json:"drafts"`
}

// MonthCount is the articles created in one month of the reporting year.
type MonthCount struct {
	Month     int `json:"month"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

// Statistics summarizes the article collection.
type Statistics struct {
	Year          int             `json:"year"`
	Total         int             `json:"total"`
	Published     int             `json:"published"`
	Drafts        int             `json:"drafts"`
	PublishedRate float64         `json:"publishedRate"` // percent, one decimal
	Categories    []CategoryCount `json:"categories"`
	Authors       []AuthorCount   `json:"authors"`
	Monthly       []MonthCount    `json:"monthly"`
}

// ComputeStatistics aggregates items. Totals, categories and authors cover
// the whole collection; Monthly covers year only. Categories follow the
// fixed category order; authors are sorted by article count, ties in
// first-seen order.
func ComputeStatistics(items []model.Article, year int) Statistics {
	st := Statistics{
		Year:       year,
		Categories: make([]CategoryCount, 0, len(model.Categories)),
		Authors:    make([]AuthorCount, 0),
		Monthly:    make([]MonthCount, 12),
	}
	for i := range st.Monthly {
		st.Monthly[i].Month = i + 1
	}

	byCategory := make(map[string]int)
	authorIdx := make(map[string]int)

	for _, a := range items {
		st.Total++
		if a.IsPublished {
			st.Published++
		} else {
			st.Drafts++
		}
		byCategory[a.Category]++

		idx, ok := authorIdx[a.Author]
		if !ok {
			idx = len(st.Authors)
			authorIdx[a.Author] = idx
			st.Authors = append(st.Authors, AuthorCount{Author: a.Author})
		}
		st.Authors[idx].Articles++
		if a.IsPublished {
			st.Authors[idx].Published++
		} else {
			st.Authors[idx].Drafts++
		}

		if a.CreatedAt.Year() == year {
			m := &st.Monthly[a.CreatedAt.Month()-1]
			if a.IsPublished {
				m.Published++
			} else {
				m.Drafts++
			}
		}
	}

	for _, c := range model.Categories {
		st.Categories = append(st.Categories, CategoryCount{Category: c, Count: byCategory[c]})
	}
	slices.SortStableFunc(st.Authors, func(a, b AuthorCount) int {
		return cmp.Compare(b.Articles, a.Articles)
	})

	if st.Total > 0 {
		st.PublishedRate = float64(st.Published*1000/st.Total) / 10
	}
	return st
}
