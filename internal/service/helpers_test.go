// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/vsm-cms/internal/auth"
	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/store"
)

// testClock is a settable clock.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestWorkspace(t *testing.T) (*Workspace, *store.MemoryStore, *testClock) {
	t.Helper()
	kv := store.NewMemoryStore()
	clock := newTestClock()
	ws := NewWorkspace("test", kv, Options{
		Policy: auth.NewPolicy("vsm.org.vn"),
		Now:    clock.Now,
	})
	return ws, kv, clock
}

func loginAs(t *testing.T, ws *Workspace, email string) model.User {
	t.Helper()
	u, err := ws.Session.Login(context.Background(), email, "secret")
	require.NoError(t, err)
	return u
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func articleID(a model.Article) string { return a.ID }
func memberID(m model.User) string     { return m.ID }
