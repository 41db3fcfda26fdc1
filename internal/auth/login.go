// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements the organization sign-in rules. There is no
// credential store: any non-empty password is accepted for an address in
// the organization domain, and the profile is derived from the address.
package auth

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/util"
)

// MinPasswordLength is the minimum length of a new password.
const MinPasswordLength = 6

// Policy holds the organization sign-in rules.
type Policy struct {
	// Domain is the accepted email domain without "@", e.g. "vsm.org.vn".
	Domain string
}

// NewPolicy creates a policy for domain.
func NewPolicy(domain string) Policy {
	return Policy{Domain: strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")}
}

// Suffix returns "@" + domain.
func (p Policy) Suffix() string {
	return "@" + p.Domain
}

// AcceptsEmail reports whether email belongs to the organization domain.
func (p Policy) AcceptsEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	return strings.HasSuffix(email, p.Suffix()) && len(email) > len(p.Suffix())
}

// Login checks the submitted credentials and builds the session user.
func (p Policy) Login(email, password string, now time.Time) (model.User, error) {
	email = strings.TrimSpace(email)

	v := &model.ValidationError{}
	if email == "" {
		v.Add("email", model.MsgRequired)
	} else if !p.AcceptsEmail(email) {
		v.Add("email", model.MsgEmailDomain)
	}
	if password == "" {
		v.Add("password", model.MsgRequired)
	}
	if err := v.OrNil(); err != nil {
		return model.User{}, err
	}

	return model.User{
		Name:     NameFromEmail(email),
		Email:    email,
		Role:     RoleFromEmail(email),
		JoinedAt: now.Format(model.DateLayout),
		Status:   model.StatusActive,
	}, nil
}

// RoleFromEmail returns admin for "<x>.admin@..." and "admin@..." addresses,
// collaborator otherwise.
func RoleFromEmail(email string) string {
	local := localPart(strings.ToLower(email))
	if local == "admin" || strings.HasSuffix(local, ".admin") {
		return model.RoleAdmin
	}
	return model.RoleCollaborator
}

// NameFromEmail turns the local part into a display name:
// "nguyen.van.a@..." becomes "Nguyen Van A".
func NameFromEmail(email string) string {
	return util.TitleWords(strings.ReplaceAll(localPart(email), ".", " "))
}

func localPart(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}

// ValidatePasswordChange checks a new password and its confirmation.
func ValidatePasswordChange(newPassword, confirm string) error {
	v := &model.ValidationError{}
	if newPassword != confirm {
		v.Add("confirmPassword", model.MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		v.Add("newPassword", model.MsgPasswordTooShort)
	}
	return v.OrNil()
}
