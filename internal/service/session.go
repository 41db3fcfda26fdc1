// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/auth"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
	"github.com/olegiv/vsm-cms/internal/util"
)

// Storage keys inside a workspace.
const (
	KeyUser     = "vsm_user"
	KeyArticles = "vsm_articles"
	KeyNotes    = "vsm_calendar_notes"
	KeyMembers  = "vsm_members"
)

// Session holds the signed-in user of one workspace.
type Session struct {
	kv     store.Store
	mu     *sync.Mutex
	policy auth.Policy
	now    func() time.Time
}

// NewSession creates a session over a workspace store. mu serializes all
// collection access within the workspace and may be shared with other services.
func NewSession(kv store.Store, mu *sync.Mutex, policy auth.Policy, now func() time.Time) *Session {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	if now == nil {
		now = time.Now
	}
	return &Session{kv: kv, mu: mu, policy: policy, now: now}
}

// Current returns the signed-in user or model.ErrAuthRequired.
func (s *Session) Current(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *Session) current(ctx context.Context) (*model.User, error) {
	u, found, err := store.LoadJSON[model.User](ctx, s.kv, KeyUser)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrAuthRequired
	}
	return &u, nil
}

// Set replaces the signed-in user.
func (s *Session) Set(ctx context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.SaveJSON(ctx, s.kv, KeyUser, u)
}

// Clear signs out and purges the article and note collections.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, KeyUser, KeyArticles, KeyNotes); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Login validates the credentials against the organization policy and
// stores the derived user.
func (s *Session) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.policy.Login(email, password, s.now())
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SaveJSON(ctx, s.kv, KeyUser, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UpdateProfile changes the display name and avatar of the signed-in user.
func (s *Session) UpdateProfile(ctx context.Context, in ProfileInput) (model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Avatar = strings.TrimSpace(in.Avatar)

	v := &model.ValidationError{}
	if in.Name == "" {
		v.Add("name", model.MsgRequired)
	}
	if in.Avatar != "" && !util.IsSafeImageURL(in.Avatar) {
		v.Add("avatar", model.MsgInvalidURL)
	}
	if err := v.OrNil(); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.current(ctx)
	if err != nil {
		return model.User{}, err
	}
	u.Name = in.Name
	u.Avatar = in.Avatar
	if err := store.SaveJSON(ctx, s.kv, KeyUser, u); err != nil {
		return model.User{}, err
	}
	return *u, nil
}

// ChangePassword validates a password change for the signed-in user.
// Credentials are not stored, so nothing is persisted.
func (s *Session) ChangePassword(ctx context.Context, newPassword, confirm string) error {
	if _, err := s.Current(ctx); err != nil {
		return err
	}
	return auth.ValidatePasswordChange(newPassword, confirm)
}
