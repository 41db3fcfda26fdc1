// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/vsm-cms/internal/listview"
	"github.com/olegiv/vsm-cms/internal/model"
)

func TestDeriveEmail(t *testing.T) {
	tests := []struct {
		name, role, want string
	}{
		{"Lan Nguyen", model.RoleCollaborator, "lannguyen.ctv@vsm.org.vn"},
		{"Lan Nguyen", model.RoleAdmin, "lannguyen.admin@vsm.org.vn"},
		{"Nguyễn Thị Lan", model.RoleCollaborator, "nguyenthilan.ctv@vsm.org.vn"},
	}
	for _, tt := range tests {
		if got := DeriveEmail(tt.name, tt.role, "vsm.org.vn"); got != tt.want {
			t.Errorf("DeriveEmail(%q, %q) = %q, want %q", tt.name, tt.role, got, tt.want)
		}
	}
}

func TestRosterRequiresAdmin(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()

	_, err := ws.Roster.List(ctx)
	assert.ErrorIs(t, err, model.ErrAuthRequired)

	loginAs(t, ws, "lan@vsm.org.vn")
	_, err = ws.Roster.List(ctx)
	assert.ErrorIs(t, err, model.ErrForbidden)
	_, err = ws.Roster.Create(ctx, model.MemberInput{Name: "X"})
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.ErrorIs(t, ws.Roster.Remove(ctx, "2"), model.ErrForbidden)
}

func TestRosterCreate(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()
	loginAs(t, ws, "admin@vsm.org.vn")

	seed, err := ws.Roster.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, idsOf(seed, memberID))

	m, err := ws.Roster.Create(ctx, model.MemberInput{Name: "Lan Nguyen"})
	require.NoError(t, err)
	assert.Equal(t, "lannguyen.ctv@vsm.org.vn", m.Email)
	assert.Equal(t, model.RoleCollaborator, m.Role)
	assert.Equal(t, model.StatusActive, m.Status)
	assert.Equal(t, "2025-01-07", m.JoinedAt)

	explicit, err := ws.Roster.Create(ctx, model.MemberInput{Name: "Minh", Email: "minh@vsm.org.vn", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "minh@vsm.org.vn", explicit.Email)

	all, err := ws.Roster.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", m.ID, explicit.ID}, idsOf(all, memberID))

	for _, name := range []string{"Tran Thi B", "Trần Thị B"} {
		derived, err := ws.Roster.Create(ctx, model.MemberInput{Name: name})
		require.NoError(t, err, name)
		assert.Equal(t, "tranthib.ctv@vsm.org.vn", derived.Email, name)
	}

	_, err = ws.Roster.Create(ctx, model.MemberInput{Name: " "})
	assert.True(t, model.IsValidation(err))
	_, err = ws.Roster.Create(ctx, model.MemberInput{Name: "X", Role: "owner"})
	assert.True(t, model.IsValidation(err))
}

func TestRosterUpdate(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()
	loginAs(t, ws, "admin@vsm.org.vn")

	m, _, err := ws.Roster.Update(ctx, "4", model.MemberInput{
		Name: "Trần Thị B", Email: "tranthib.ctv@vsm.org.vn", Status: model.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "4", m.ID)
	assert.Equal(t, "2024-03-20", m.JoinedAt)
	assert.Equal(t, model.StatusActive, m.Status)

	kept, _, err := ws.Roster.Update(ctx, "4", model.MemberInput{Name: "Trần Thị B", Email: "b@vsm.org.vn"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, kept.Status, "empty status keeps the current one")

	before, err := ws.Roster.List(ctx)
	require.NoError(t, err)
	_, applied, err := ws.Roster.Update(ctx, "missing", model.MemberInput{Name: "X"})
	require.NoError(t, err)
	assert.False(t, applied)
	after, err := ws.Roster.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRosterRemove(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	ctx := context.Background()
	loginAs(t, ws, "admin@vsm.org.vn")

	assert.ErrorIs(t, ws.Roster.Remove(ctx, "1"), model.ErrCannotDeleteSelf)
	require.NoError(t, ws.Roster.Remove(ctx, "3"))
	require.NoError(t, ws.Roster.Remove(ctx, "missing"))

	all, err := ws.Roster.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4"}, idsOf(all, memberID))
}

func TestFilterMembers(t *testing.T) {
	members := SeedMembers()
	tests := []struct {
		name string
		q    MemberQuery
		want []string
	}{
		{"all", MemberQuery{Role: listview.All}, []string{"1", "2", "3", "4"}},
		{"by name", MemberQuery{Search: "thành long"}, []string{"2"}},
		{"by email", MemberQuery{Search: ".CTV@"}, []string{"2", "3", "4"}},
		{"by role", MemberQuery{Role: model.RoleAdmin}, []string{"1"}},
		{"no match", MemberQuery{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(FilterMembers(members, tt.q), memberID))
		})
	}
}

func TestSummarizeMembers(t *testing.T) {
	got := SummarizeMembers(SeedMembers())
	want := RosterStats{Total: 4, Admins: 1, Collaborators: 3, Active: 3, Inactive: 1}
	assert.Equal(t, want, got)
}
