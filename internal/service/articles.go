// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/listview"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
)

// Sort orders for article lists.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// Articles manages the article collection of one workspace.
type Articles struct {
	kv      store.Store
	mu      *sync.Mutex
	session *Session
	ids     *IDGenerator
	now     func() time.Time
}

// NewArticles creates the article store. The session supplies the author and
// edit permissions and shares its lock.
func NewArticles(kv store.Store, session *Session, ids *IDGenerator, now func() time.Time) *Articles {
	if now == nil {
		now = time.Now
	}
	return &Articles{kv: kv, mu: session.mu, session: session, ids: ids, now: now}
}

// List returns all articles in stored order, or the seed set when nothing
// has been stored yet.
func (a *Articles) List(ctx context.Context) ([]model.Article, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load(ctx)
}

func (a *Articles) load(ctx context.Context) ([]model.Article, error) {
	items, found, err := store.LoadJSON[[]model.Article](ctx, a.kv, KeyArticles)
	if err != nil {
		return nil, err
	}
	if !found {
		return SeedArticles(), nil
	}
	return items, nil
}

func (a *Articles) save(ctx context.Context, items []model.Article) error {
	return store.SaveJSON(ctx, a.kv, KeyArticles, items)
}

// Get returns the article with id.
func (a *Articles) Get(ctx context.Context, id string) (model.Article, error) {
	items, err := a.List(ctx)
	if err != nil {
		return model.Article{}, err
	}
	i := slices.IndexFunc(items, func(it model.Article) bool { return it.ID == id })
	if i < 0 {
		return model.Article{}, fmt.Errorf("article %s: %w", id, model.ErrNotFound)
	}
	return items[i], nil
}

// Create validates in, stamps id, author and creation time, and appends the article.
func (a *Articles) Create(ctx context.Context, in model.ArticleInput) (model.Article, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.Article{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	user, err := a.session.current(ctx)
	if err != nil {
		return model.Article{}, err
	}
	items, err := a.load(ctx)
	if err != nil {
		return model.Article{}, err
	}

	art := in.Apply(model.Article{
		ID:        a.ids.Next(),
		Author:    user.Name,
		CreatedAt: a.now().UTC(),
	})
	if art.Author == "" {
		art.Author = "Unknown"
	}

	if err := a.save(ctx, append(items, art)); err != nil {
		return model.Article{}, err
	}
	return art, nil
}

// Update replaces the editable fields of article id in place. A missing id
// leaves the collection unchanged and reports applied=false.
func (a *Articles) Update(ctx context.Context, id string, in model.ArticleInput) (model.Article, bool, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.Article{}, false, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	items, err := a.load(ctx)
	if err != nil {
		return model.Article{}, false, err
	}
	i := slices.IndexFunc(items, func(it model.Article) bool { return it.ID == id })
	if i < 0 {
		return model.Article{}, false, nil
	}
	if err := a.authorize(ctx, items[i]); err != nil {
		return model.Article{}, false, err
	}

	items[i] = in.Apply(items[i])
	if err := a.save(ctx, items); err != nil {
		return model.Article{}, false, err
	}
	return items[i], true, nil
}

// Remove deletes article id. Removing a missing id is a no-op.
func (a *Articles) Remove(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	items, err := a.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(it model.Article) bool { return it.ID == id })
	if i < 0 {
		return nil
	}
	if err := a.authorize(ctx, items[i]); err != nil {
		return err
	}
	return a.save(ctx, slices.Delete(items, i, i+1))
}

func (a *Articles) authorize(ctx context.Context, art model.Article) error {
	user, err := a.session.current(ctx)
	if err != nil {
		return err
	}
	if !CanEdit(user, art) {
		return model.ErrForbidden
	}
	return nil
}

// CanEdit reports whether u may edit or delete art: admins may edit
// everything, collaborators only their own articles.
func CanEdit(u *model.User, art model.Article) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || (u.Name != "" && u.Name == art.Author)
}

// ArticleQuery describes an article list view.
type ArticleQuery struct {
	Search   string // case-insensitive title substring
	Category string // exact category or listview.All
	Sort     string // SortNewest (default) or SortOldest
}

// FilterAndSort applies q to items. Ties in creation time keep stored order.
func FilterAndSort(items []model.Article, q ArticleQuery) []model.Article {
	preds := []listview.Predicate[model.Article]{
		listview.Search(q.Search, func(a model.Article) string { return a.Title }),
		listview.Equal(q.Category, func(a model.Article) string { return a.Category }),
	}

	oldest := func(x, y model.Article) int { return x.CreatedAt.Compare(y.CreatedAt) }
	cmp := listview.Reverse(oldest)
	if q.Sort == SortOldest {
		cmp = oldest
	}
	return listview.Apply(items, preds, cmp)
}

// CategoryOptions returns listview.All followed by the distinct categories
// of items in first-seen order.
func CategoryOptions(items []model.Article) []string {
	out := []string{listview.All}
	for _, it := range items {
		if !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	return out
}
