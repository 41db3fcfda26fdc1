// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"testing"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "collaborator role", role: RoleCollaborator, want: false},
		{name: "empty role", role: "", want: false},
		{name: "Admin uppercase", role: "Admin", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserDisplayAvatar(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	if got := admin.DisplayAvatar(); got != DefaultAdminAvatar {
		t.Errorf("admin DisplayAvatar() = %q, want %q", got, DefaultAdminAvatar)
	}
	admin.Avatar = "/me.png"
	if got := admin.DisplayAvatar(); got != "/me.png" {
		t.Errorf("admin DisplayAvatar() = %q, want %q", got, "/me.png")
	}
	ctv := &User{Role: RoleCollaborator}
	if got := ctv.DisplayAvatar(); got != "" {
		t.Errorf("collaborator DisplayAvatar() = %q, want empty", got)
	}
}

func TestUserSameAccount(t *testing.T) {
	tests := []struct {
		name string
		a, b *User
		want bool
	}{
		{"same id", &User{ID: "1"}, &User{ID: "1"}, true},
		{"same email different case", &User{ID: "1", Email: "A@vsm.org.vn"}, &User{ID: "2", Email: "a@vsm.org.vn"}, true},
		{"different", &User{ID: "1", Email: "a@vsm.org.vn"}, &User{ID: "2", Email: "b@vsm.org.vn"}, false},
		{"empty ids and emails", &User{}, &User{}, false},
		{"nil", &User{ID: "1"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameAccount(tt.b); got != tt.want {
				t.Errorf("SameAccount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemberInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        MemberInput
		wantField string
	}{
		{"valid defaults role", MemberInput{Name: " Lan "}, ""},
		{"missing name", MemberInput{Name: "  "}, "name"},
		{"bad role", MemberInput{Name: "Lan", Role: "editor"}, "role"},
		{"bad status", MemberInput{Name: "Lan", Status: "banned"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalized().Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var v *ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if !v.Has(tt.wantField) {
				t.Errorf("Fields = %v, want %q", v.Fields, tt.wantField)
			}
		})
	}
}
