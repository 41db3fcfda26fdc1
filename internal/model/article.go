// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"strings"
	"time"

	"github.com/olegiv/vsm-cms/internal/util"
)

// Article categories.
const (
	CategoryEvent  = "Sự kiện"
	CategoryGuide  = "Hướng dẫn"
	CategoryHealth = "Sức khỏe"
	CategoryNews   = "Tin tức"
	CategoryNotice = "Thông báo"
)

// Categories lists the article categories in display order.
var Categories = []string{CategoryEvent, CategoryGuide, CategoryHealth, CategoryNews, CategoryNotice}

// IsCategory reports whether c is one of the fixed categories.
func IsCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// DefaultThumbnail is used when an article has no thumbnail.
const DefaultThumbnail = "/placeholder.svg?height=200&width=300"

// Article is a published or draft post.
type Article struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Thumbnail        string    `json:"thumbnail"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"` // HTML
	Category         string    `json:"category"`
	Tags             Tags      `json:"tags"`
	Author           string    `json:"author"`
	CreatedAt        time.Time `json:"createdAt"`
	IsPublished      bool      `json:"isPublished"`
}

// ArticleInput carries the fields an editor submits.
type ArticleInput struct {
	Title            string   `json:"title"`
	Thumbnail        string   `json:"thumbnail"`
	ShortDescription string   `json:"shortDescription"`
	Content          string   `json:"content"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	IsPublished      bool     `json:"isPublished"`
}

// Normalized trims text fields and normalizes tags.
func (in ArticleInput) Normalized() ArticleInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Thumbnail = strings.TrimSpace(in.Thumbnail)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Category = strings.TrimSpace(in.Category)
	in.Tags = NormalizeTags(in.Tags)
	return in
}

// Validate checks a normalized article input.
func (in ArticleInput) Validate() error {
	v := &ValidationError{}
	if in.Title == "" {
		v.Add("title", MsgRequired)
	}
	if in.ShortDescription == "" {
		v.Add("shortDescription", MsgRequired)
	}
	switch {
	case in.Category == "":
		v.Add("category", MsgRequired)
	case !IsCategory(in.Category):
		v.Add("category", MsgInvalidCategory)
	}
	if in.Thumbnail != "" && !util.IsSafeImageURL(in.Thumbnail) {
		v.Add("thumbnail", MsgInvalidURL)
	}
	return v.OrNil()
}

// Apply copies the input onto a, leaving identity fields untouched.
func (in ArticleInput) Apply(a Article) Article {
	a.Title = in.Title
	a.Thumbnail = in.Thumbnail
	if a.Thumbnail == "" {
		a.Thumbnail = DefaultThumbnail
	}
	a.ShortDescription = in.ShortDescription
	a.Content = in.Content
	a.Category = in.Category
	a.Tags = NormalizeTags(in.Tags)
	a.IsPublished = in.IsPublished
	return a
}
