// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/vsm-cms/internal/model"
)

func TestComputeStatistics(t *testing.T) {
	at := func(y int, m time.Month) time.Time { return time.Date(y, m, 3, 0, 0, 0, 0, time.UTC) }
	items := []model.Article{
		{Author: "Lan", Category: model.CategoryNews, IsPublished: true, CreatedAt: at(2025, time.January)},
		{Author: "Minh", Category: model.CategoryNews, IsPublished: false, CreatedAt: at(2025, time.January)},
		{Author: "Minh", Category: model.CategoryGuide, IsPublished: true, CreatedAt: at(2025, time.March)},
		{Author: "Lan", Category: model.CategoryEvent, IsPublished: false, CreatedAt: at(2024, time.December)},
		{Author: "Hoa", Category: model.CategoryEvent, IsPublished: false, CreatedAt: at(2025, time.March)},
		{Author: "Minh", Category: model.CategoryHealth, IsPublished: false, CreatedAt: at(2025, time.May)},
	}

	st := ComputeStatistics(items, 2025)

	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 2, st.Published)
	assert.Equal(t, 4, st.Drafts)
	assert.InDelta(t, 33.3, st.PublishedRate, 1e-9)

	assert.Equal(t, []CategoryCount{
		{model.CategoryEvent, 2},
		{model.CategoryGuide, 1},
		{model.CategoryHealth, 1},
		{model.CategoryNews, 2},
		{model.CategoryNotice, 0},
	}, st.Categories)

	assert.Equal(t, []AuthorCount{
		{Author: "Minh", Articles: 3, Published: 1, Drafts: 2},
		{Author: "Lan", Articles: 2, Published: 1, Drafts: 1},
		{Author: "Hoa", Articles: 1, Drafts: 1},
	}, st.Authors)

	assert.Len(t, st.Monthly, 12)
	assert.Equal(t, MonthCount{Month: 1, Published: 1, Drafts: 1}, st.Monthly[0])
	assert.Equal(t, MonthCount{Month: 3, Published: 1, Drafts: 1}, st.Monthly[2])
	assert.Equal(t, MonthCount{Month: 12}, st.Monthly[11], "other years are excluded")
}

func TestComputeStatisticsEmpty(t *testing.T) {
	st := ComputeStatistics(nil, 2025)
	assert.Zero(t, st.Total)
	assert.Zero(t, st.PublishedRate)
	assert.Len(t, st.Categories, len(model.Categories))
	assert.NotNil(t, st.Authors)
}
