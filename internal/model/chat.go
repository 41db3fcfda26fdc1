// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ChatMessage is an ephemeral chat line. Messages are never persisted.
type ChatMessage struct {
	ID            string    `json:"id"`
	Sender        string    `json:"sender"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	IsCurrentUser bool      `json:"isCurrentUser"`
}
