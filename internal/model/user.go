// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain records shared by the stores, services
// and API: users, articles, calendar notes, announcements and chat messages.
package model

import "strings"

// User roles.
const (
	RoleAdmin        = "admin"
	RoleCollaborator = "collaborator"
)

// Member statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultAdminAvatar is shown for admins who have not set an avatar.
const DefaultAdminAvatar = "/long.png"

// User is both the signed-in session user and a roster member.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
	Avatar   string `json:"avatar,omitempty"`
	Status   string `json:"status,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive reports whether the member is active. An unset status counts as active.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}

// DisplayAvatar returns the avatar to render for the user.
func (u *User) DisplayAvatar() string {
	if u.Avatar == "" && u.IsAdmin() {
		return DefaultAdminAvatar
	}
	return u.Avatar
}

// SameAccount reports whether two records identify the same person.
func (u *User) SameAccount(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	if u.ID != "" && u.ID == other.ID {
		return true
	}
	return u.Email != "" && strings.EqualFold(u.Email, other.Email)
}

// IsRole reports whether r is a known role.
func IsRole(r string) bool {
	return r == RoleAdmin || r == RoleCollaborator
}

// IsStatus reports whether s is a known member status.
func IsStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// MemberInput carries the editable roster fields.
type MemberInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

// Normalized returns a trimmed copy with the role defaulted to collaborator.
func (in MemberInput) Normalized() MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.Status = strings.TrimSpace(in.Status)
	if in.Role == "" {
		in.Role = RoleCollaborator
	}
	return in
}

// Validate checks a normalized member input.
func (in MemberInput) Validate() error {
	v := &ValidationError{}
	if in.Name == "" {
		v.Add("name", MsgRequired)
	}
	if !IsRole(in.Role) {
		v.Add("role", MsgInvalidRole)
	}
	if in.Status != "" && !IsStatus(in.Status) {
		v.Add("status", MsgInvalidStatus)
	}
	return v.OrNil()
}
