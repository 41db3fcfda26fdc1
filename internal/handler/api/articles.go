// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vsm-cms/internal/middleware"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/richtext"
	"github.com/olegiv/vsm-cms/internal/service"
)

// Content formats accepted on article writes.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// ArticleRequest is the body of article create and update requests.
type ArticleRequest struct {
	model.ArticleInput
	ContentFormat string `json:"contentFormat,omitempty"`
}

// ArticleResponse is an article with the caller's edit permission.
type ArticleResponse struct {
	model.Article
	CanEdit bool `json:"canEdit"`
}

// ArticleListMeta extends Meta with the category filter options.
type ArticleListMeta struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

// input converts the request body, rendering Markdown when asked.
func (req ArticleRequest) input() (model.ArticleInput, error) {
	in := req.ArticleInput
	if req.ContentFormat == FormatMarkdown {
		html, err := richtext.FromMarkdown(in.Content)
		if err != nil {
			return in, err
		}
		in.Content = html
	}
	return in, nil
}

// ListArticles handles GET /api/articles?q=&category=&sort=.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	items, err := ws.Articles.List(r.Context())
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}

	q := r.URL.Query()
	filtered := service.FilterAndSort(items, service.ArticleQuery{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
	})

	user := middleware.GetUser(r)
	out := make([]ArticleResponse, 0, len(filtered))
	for _, a := range filtered {
		out = append(out, ArticleResponse{Article: a, CanEdit: service.CanEdit(user, a)})
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"data": out,
		"meta": ArticleListMeta{Total: len(out), Categories: service.CategoryOptions(items)},
	})
}

// GetArticle handles GET /api/articles/{id}. Content is sanitized for display.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	art, err := ws.Articles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	art.Content = richtext.Sanitize(art.Content)
	WriteSuccess(w, ArticleResponse{Article: art, CanEdit: service.CanEdit(middleware.GetUser(r), art)}, nil)
}

// CreateArticle handles POST /api/articles.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var req ArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	art, err := ws.Articles.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	h.record(r, model.EventCategoryArticle, "Article created", map[string]any{"id": art.ID, "title": art.Title})
	WriteCreated(w, ArticleResponse{Article: art, CanEdit: true})
}

// UpdateArticle handles PUT /api/articles/{id}. An unknown id answers 204
// and changes nothing.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	var req ArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	art, applied, err := ws.Articles.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	if !applied {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.record(r, model.EventCategoryArticle, "Article updated", map[string]any{"id": art.ID, "title": art.Title})
	WriteSuccess(w, ArticleResponse{Article: art, CanEdit: true}, nil)
}

// DeleteArticle handles DELETE /api/articles/{id}?confirm=true.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r)
	if !ok {
		return
	}
	if !confirmed(r) {
		h.writeError(w, r, "article", model.ErrConfirmationRequired)
		return
	}
	id := chi.URLParam(r, "id")
	if err := ws.Articles.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, "article", err)
		return
	}
	h.record(r, model.EventCategoryArticle, "Article deleted", map[string]any{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
