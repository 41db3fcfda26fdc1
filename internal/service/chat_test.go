// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/vsm-cms/internal/model"
)

func TestChatRoom(t *testing.T) {
	clock := newTestClock()
	room := NewChatRoom(NewIDGenerator(clock.Now), clock.Now)

	seed := room.Messages()
	require.Len(t, seed, 2)
	assert.True(t, seed[0].Timestamp.Before(seed[1].Timestamp))
	assert.False(t, seed[0].IsCurrentUser)

	clock.Advance(time.Minute)
	msg, err := room.Send("Lan", "  Chào cả nhà  ")
	require.NoError(t, err)
	assert.Equal(t, "Chào cả nhà", msg.Content)
	assert.True(t, msg.IsCurrentUser)
	assert.Equal(t, clock.Now(), msg.Timestamp)

	all := room.Messages()
	require.Len(t, all, 3)
	assert.Equal(t, msg, all[2])

	_, err = room.Send("Lan", "   ")
	assert.True(t, model.IsValidation(err))
	_, err = room.Send("", "hi")
	assert.ErrorIs(t, err, model.ErrAuthRequired)
	assert.Len(t, room.Messages(), 3)

	all[0].Content = "changed"
	assert.NotEqual(t, "changed", room.Messages()[0].Content, "Messages returns a copy")
}
