// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/model"
)

// ChatRoom is an ephemeral message list. It is never persisted.
type ChatRoom struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	ids      *IDGenerator
	now      func() time.Time
}

// NewChatRoom creates a room holding the opening messages.
func NewChatRoom(ids *IDGenerator, now func() time.Time) *ChatRoom {
	if now == nil {
		now = time.Now
	}
	return &ChatRoom{messages: seedChat(now()), ids: ids, now: now}
}

// Messages returns a copy of the history, oldest first.
func (c *ChatRoom) Messages() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Send appends a message from sender. Blank content is rejected.
func (c *ChatRoom) Send(sender, content string) (model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if sender == "" {
		return model.ChatMessage{}, model.ErrAuthRequired
	}
	if content == "" {
		v := &model.ValidationError{}
		v.Add("content", model.MsgChatEmpty)
		return model.ChatMessage{}, v
	}

	msg := model.ChatMessage{
		ID:            c.ids.Next(),
		Sender:        sender,
		Content:       content,
		Timestamp:     c.now(),
		IsCurrentUser: true,
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg, nil
}
