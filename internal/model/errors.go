// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned when a record id does not exist. Callers treat it
	// as a no-op; the collection is left unchanged.
	ErrNotFound = errors.New("record not found")
	// ErrAuthRequired means there is no signed-in user.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means the signed-in user may not perform the operation.
	ErrForbidden = errors.New("permission denied")
	// ErrCannotDeleteSelf is returned when a member tries to remove their own record.
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	// ErrConfirmationRequired is returned when a destructive operation was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Validation message keys, resolved through the i18n catalog.
const (
	MsgRequired         = "validation.required"
	MsgInvalidCategory  = "validation.invalid_category"
	MsgInvalidDate      = "validation.invalid_date"
	MsgInvalidColor     = "validation.invalid_color"
	MsgInvalidTime      = "validation.invalid_time"
	MsgInvalidRole      = "validation.invalid_role"
	MsgInvalidStatus    = "validation.invalid_status"
	MsgInvalidURL       = "validation.invalid_url"
	MsgEmailDomain      = "validation.email_domain"
	MsgPasswordMismatch = "validation.password_mismatch"
	MsgPasswordTooShort = "validation.password_too_short"
	MsgChatEmpty        = "chat.empty"
)

// ValidationError lists the fields that failed validation and the message key
// for each.
type ValidationError struct {
	Fields map[string]string
}

// Add records a failure for field. The first failure per field wins.
func (e *ValidationError) Add(field, msgKey string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msgKey
	}
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// OrNil returns e as an error if any field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := slices.Sorted(maps.Keys(e.Fields))
	return "validation failed: " + strings.Join(fields, ", ")
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
