// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/olegiv/vsm-cms/internal/auth"
	"github.com/olegiv/vsm-cms/internal/store"
)

// Defaults for the workspace cache.
const (
	DefaultMaxWorkspaces = 10000
	DefaultIdleTimeout   = 24 * time.Hour

	lockStripes = 256
)

// Options configures the services of every workspace and the hub that
// caches them.
type Options struct {
	Policy        auth.Policy
	Announcements AnnouncementSource
	IDs           *IDGenerator
	Now           func() time.Time

	// MaxWorkspaces caps the cached workspaces; the least recently used is
	// evicted beyond it.
	MaxWorkspaces int
	// IdleTimeout drops workspaces not used for this long on Sweep.
	IdleTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.IDs == nil {
		o.IDs = NewIDGenerator(o.Now)
	}
	if o.Announcements == nil {
		o.Announcements = StaticAnnouncements(DefaultAnnouncements())
	}
	if o.Policy.Domain == "" {
		o.Policy = auth.NewPolicy("vsm.org.vn")
	}
	if o.MaxWorkspaces <= 0 {
		o.MaxWorkspaces = DefaultMaxWorkspaces
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	return o
}

// Workspace bundles the stores of one browser. All stores share one lock so
// each operation sees a consistent snapshot.
type Workspace struct {
	ID       string
	Session  *Session
	Articles *Articles
	Notes    *Notes
	Roster   *Roster
	Chat     *ChatRoom
}

// NewWorkspace wires the stores over kv with a lock of their own.
func NewWorkspace(id string, kv store.Store, opts Options) *Workspace {
	return newWorkspace(id, kv, opts, &sync.Mutex{})
}

func newWorkspace(id string, kv store.Store, opts Options, mu *sync.Mutex) *Workspace {
	opts = opts.withDefaults()

	ws := &Workspace{ID: id}
	ws.Session = NewSession(kv, mu, opts.Policy, opts.Now)
	ws.Articles = NewArticles(kv, ws.Session, opts.IDs, opts.Now)
	ws.Notes = NewNotes(kv, mu, opts.IDs, opts.Announcements)
	ws.Roster = NewRoster(kv, ws.Session, opts.IDs, opts.Policy, opts.Now)
	ws.Chat = NewChatRoom(opts.IDs, opts.Now)
	return ws
}

// WorkspacePrefix is the key prefix of a workspace's collections.
func WorkspacePrefix(id string) string {
	return "ws:" + id + ":"
}

type hubEntry struct {
	ws       *Workspace
	lastUsed time.Time
}

// Hub hands out workspaces over a shared store and keeps them for reuse.
// Locks are striped by workspace id and outlive cache entries, so a
// workspace rebuilt after eviction serializes with requests still holding
// the old one.
type Hub struct {
	base store.Store
	opts Options

	locks [lockStripes]sync.Mutex

	mu     sync.Mutex
	spaces map[string]*hubEntry
}

// NewHub creates a hub over base.
func NewHub(base store.Store, opts Options) *Hub {
	return &Hub{base: base, opts: opts.withDefaults(), spaces: make(map[string]*hubEntry)}
}

func (h *Hub) lockFor(id string) *sync.Mutex {
	f := fnv.New32a()
	_, _ = f.Write([]byte(id))
	return &h.locks[f.Sum32()%lockStripes]
}

// Workspace returns the workspace for id, creating it on first use.
func (h *Hub) Workspace(id string) *Workspace {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.opts.Now()
	if e, ok := h.spaces[id]; ok {
		e.lastUsed = now
		return e.ws
	}

	if len(h.spaces) >= h.opts.MaxWorkspaces {
		h.evictLocked(now)
	}
	ws := newWorkspace(id, store.Namespace(h.base, WorkspacePrefix(id)), h.opts, h.lockFor(id))
	h.spaces[id] = &hubEntry{ws: ws, lastUsed: now}
	return ws
}

// evictLocked drops idle workspaces, or the least recently used one when
// none is idle.
func (h *Hub) evictLocked(now time.Time) {
	if h.sweepLocked(now) > 0 {
		return
	}
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range h.spaces {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(h.spaces, oldestID)
}

func (h *Hub) sweepLocked(now time.Time) int {
	n := 0
	for id, e := range h.spaces {
		if now.Sub(e.lastUsed) > h.opts.IdleTimeout {
			delete(h.spaces, id)
			n++
		}
	}
	return n
}

// Sweep drops workspaces idle longer than the idle timeout and returns how
// many were dropped. Stored collections are untouched.
func (h *Hub) Sweep() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sweepLocked(h.opts.Now())
}

// Exclusive runs fn while every workspace lock is held and no workspace can
// be handed out, then drops the cache. Stored collections are untouched
// unless fn removes them; chat history is lost.
func (h *Hub) Exclusive(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.locks {
		h.locks[i].Lock()
	}
	defer func() {
		for i := range h.locks {
			h.locks[i].Unlock()
		}
	}()

	err := fn()
	clear(h.spaces)
	return err
}

// Len returns the number of cached workspaces.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.spaces)
}
