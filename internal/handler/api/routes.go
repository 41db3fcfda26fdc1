// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/vsm-cms/internal/middleware"
)

// Routes registers the API under r. Health and meta answer without a
// workspace; every other route is bound to one and loads its user.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", h.Meta)

		r.Group(func(r chi.Router) {
			if h.bind != nil {
				r.Use(h.bind)
			}
			r.Use(middleware.LoadUser)
			h.workspaceRoutes(r)
		})
	})
}

func (h *Handler) workspaceRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		if h.lp != nil {
			r.With(h.lp.Middleware()).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
		r.Post("/logout", h.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Get("/me", h.Me)
		r.Put("/me", h.UpdateMe)
		r.Post("/me/password", h.ChangePassword)

		r.Get("/articles", h.ListArticles)
		r.Post("/articles", h.CreateArticle)
		r.Get("/articles/{id}", h.GetArticle)
		r.Put("/articles/{id}", h.UpdateArticle)
		r.Delete("/articles/{id}", h.DeleteArticle)

		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Put("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)
		r.Get("/calendar/{year}/{month}", h.CalendarMonth)

		r.Get("/chat", h.ListChat)
		r.Post("/chat", h.SendChat)

		r.Get("/statistics", h.Statistics)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/members", h.ListMembers)
		r.Post("/members", h.CreateMember)
		r.Put("/members/{id}", h.UpdateMember)
		r.Delete("/members/{id}", h.DeleteMember)

		r.Get("/events", h.ListEvents)

		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs/{name}/run", h.RunJob)
	})
}
