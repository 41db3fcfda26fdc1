// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	if v.OrNil() != nil {
		t.Fatal("empty ValidationError.OrNil() != nil")
	}

	v.Add("title", MsgRequired)
	v.Add("title", MsgInvalidCategory)
	v.Add("category", MsgInvalidCategory)

	if got := v.Fields["title"]; got != MsgRequired {
		t.Errorf("first failure should win, got %q", got)
	}
	if got := v.Error(); got != "validation failed: category, title" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("saving: %w", v.OrNil())
	if !IsValidation(wrapped) {
		t.Error("IsValidation(wrapped) = false")
	}
	if IsValidation(ErrNotFound) {
		t.Error("IsValidation(ErrNotFound) = true")
	}
	if !errors.Is(fmt.Errorf("x: %w", ErrNotFound), ErrNotFound) {
		t.Error("ErrNotFound does not unwrap")
	}
}
