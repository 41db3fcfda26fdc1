// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/auth"
	"github.com/olegiv/vsm-cms/internal/listview"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
	"github.com/olegiv/vsm-cms/internal/util"
)

// Roster manages the member list. Every operation requires an admin session.
type Roster struct {
	kv      store.Store
	mu      *sync.Mutex
	session *Session
	ids     *IDGenerator
	policy  auth.Policy
	now     func() time.Time
}

// NewRoster creates the roster store.
func NewRoster(kv store.Store, session *Session, ids *IDGenerator, policy auth.Policy, now func() time.Time) *Roster {
	if now == nil {
		now = time.Now
	}
	return &Roster{kv: kv, mu: session.mu, session: session, ids: ids, policy: policy, now: now}
}

func (r *Roster) requireAdmin(ctx context.Context) (*model.User, error) {
	u, err := r.session.current(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, model.ErrForbidden
	}
	return u, nil
}

func (r *Roster) load(ctx context.Context) ([]model.User, error) {
	items, found, err := store.LoadJSON[[]model.User](ctx, r.kv, KeyMembers)
	if err != nil {
		return nil, err
	}
	if !found {
		return SeedMembers(), nil
	}
	return items, nil
}

func (r *Roster) save(ctx context.Context, items []model.User) error {
	return store.SaveJSON(ctx, r.kv, KeyMembers, items)
}

// List returns all members in stored order, or the seed roster when nothing
// has been stored yet.
func (r *Roster) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return r.load(ctx)
}

// Create adds a member. A missing or partial email is derived from the name
// and role; joinedAt is today and the member starts active.
func (r *Roster) Create(ctx context.Context, in model.MemberInput) (model.User, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.requireAdmin(ctx); err != nil {
		return model.User{}, err
	}
	items, err := r.load(ctx)
	if err != nil {
		return model.User{}, err
	}

	m := model.User{
		ID:       r.ids.Next(),
		Name:     in.Name,
		Email:    r.resolveEmail(in),
		Role:     in.Role,
		JoinedAt: r.now().Format(model.DateLayout),
		Status:   model.StatusActive,
	}
	if in.Status != "" {
		m.Status = in.Status
	}

	if err := r.save(ctx, append(items, m)); err != nil {
		return model.User{}, err
	}
	return m, nil
}

// Update replaces a member's name, email, role and (when given) status,
// keeping id and joinedAt. A missing id is ignored and reports applied=false.
func (r *Roster) Update(ctx context.Context, id string, in model.MemberInput) (model.User, bool, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return model.User{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.requireAdmin(ctx); err != nil {
		return model.User{}, false, err
	}
	items, err := r.load(ctx)
	if err != nil {
		return model.User{}, false, err
	}
	i := slices.IndexFunc(items, func(m model.User) bool { return m.ID == id })
	if i < 0 {
		return model.User{}, false, nil
	}

	m := items[i]
	m.Name = in.Name
	m.Email = r.resolveEmail(in)
	m.Role = in.Role
	if in.Status != "" {
		m.Status = in.Status
	}
	items[i] = m

	if err := r.save(ctx, items); err != nil {
		return model.User{}, false, err
	}
	return m, true, nil
}

// Remove deletes member id. The signed-in user's own record is refused with
// model.ErrCannotDeleteSelf; a missing id is a no-op.
func (r *Roster) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	me, err := r.requireAdmin(ctx)
	if err != nil {
		return err
	}
	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(m model.User) bool { return m.ID == id })
	if i < 0 {
		return nil
	}
	if me.SameAccount(&items[i]) {
		return model.ErrCannotDeleteSelf
	}
	return r.save(ctx, slices.Delete(items, i, i+1))
}

func (r *Roster) resolveEmail(in model.MemberInput) string {
	if strings.Contains(in.Email, "@") {
		return in.Email
	}
	return DeriveEmail(in.Name, in.Role, r.policy.Domain)
}

// DeriveEmail builds "<compact name>.<admin|ctv>@<domain>", e.g.
// ("Lan Nguyen", collaborator) -> "lannguyen.ctv@vsm.org.vn". The name is
// transliterated to ASCII and stripped of punctuation, so "Trần Thị B" and
// "Tran Thi B" both give "tranthib"; an address must stay a valid local part.
func DeriveEmail(name, role, domain string) string {
	suffix := "ctv"
	if role == model.RoleAdmin {
		suffix = "admin"
	}
	return util.CompactLower(name) + "." + suffix + "@" + domain
}

// MemberQuery describes a roster list view.
type MemberQuery struct {
	Search string // case-insensitive substring of name or email
	Role   string // exact role or listview.All
}

// FilterMembers applies q to items, keeping stored order.
func FilterMembers(items []model.User, q MemberQuery) []model.User {
	return listview.Apply(items, []listview.Predicate[model.User]{
		listview.Search(q.Search,
			func(m model.User) string { return m.Name },
			func(m model.User) string { return m.Email },
		),
		listview.Equal(q.Role, func(m model.User) string { return m.Role }),
	}, nil)
}

// RosterStats summarizes the roster.
type RosterStats struct {
	Total         int `json:"total"`
	Admins        int `json:"admins"`
	Collaborators int `json:"collaborators"`
	Active        int `json:"active"`
	Inactive      int `json:"inactive"`
}

// SummarizeMembers counts members by role and status.
func SummarizeMembers(items []model.User) RosterStats {
	var s RosterStats
	for _, m := range items {
		s.Total++
		if m.IsAdmin() {
			s.Admins++
		} else {
			s.Collaborators++
		}
		if m.IsActive() {
			s.Active++
		} else {
			s.Inactive++
		}
	}
	return s
}
