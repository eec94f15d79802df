//     Copyright (C) 2020, IrineSistiana
//
//     This file is part of tldcheck.
//
//     tldcheck is free software: you can redistribute it and/or modify
//     it under the terms of the GNU General Public License as published by
//     the Free Software Foundation, either version 3 of the License, or
//     (at your option) any later version.
//
//     tldcheck is distributed in the hope that it will be useful,
//     but WITHOUT ANY WARRANTY; without even the implied warranty of
//     MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//     GNU General Public License for more details.
//
//     You should have received a copy of the GNU General Public License
//     along with this program.  If not, see <https://www.gnu.org/licenses/>.

package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/IrineSistiana/tldcheck/fetcher"
	"github.com/IrineSistiana/tldcheck/iana"
	"github.com/IrineSistiana/tldcheck/tldlist"
)

// Fetcher downloads the raw TLD list.
type Fetcher interface {
	Fetch(ctx context.Context) fetcher.Response
}

var ErrEmptyList = errors.New("list has no labels")

// state is never modified once published.
type state struct {
	list     *tldlist.List
	headline *iana.Headline

	lastCheck      time.Time
	lastStatus     fetcher.Status
	reloads        uint64
	lastReloadTime time.Duration
	lastErr        error
}

// Stats is a consistent view of the reload bookkeeping of a Cache.
type Stats struct {
	LastResponseStatus fetcher.Status
	LastHeadline       *iana.Headline
	Reloads            uint64
	LastReloadTime     time.Duration
	LastCheck          time.Time
	LastError          error
	Len                int
}

// Cache holds the TLD list and reloads it when it is stale.
// All methods are safe for concurrent use. Lookups never block
// on a reload, they see the list that was published last.
type Cache struct {
	fetcher Fetcher
	entry   *logrus.Entry
	now     func() time.Time

	current atomic.Pointer[state]
	mu      sync.Mutex // held by writers of current
	group   singleflight.Group
}

// singleflight keys, forced reloads never join a ttl gated one
const (
	reloadKey = "reload"
	forcedKey = "forced"
)

func NewCache(f Fetcher, entry *logrus.Entry) *Cache {
	if f == nil {
		panic("registry.NewCache: f is nil")
	}
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	c := &Cache{
		fetcher: f,
		entry:   entry,
		now:     time.Now,
	}
	c.current.Store(&state{})
	return c
}

// stale reports whether s needs a reload. A list that was never
// tried to be loaded is always stale.
func (c *Cache) stale(s *state, ttl time.Duration) bool {
	return s.lastCheck.IsZero() || c.now().Sub(s.lastCheck) > ttl
}

// EnsureFresh reloads the list if it is older than ttl. Concurrent
// callers share one reload. Failures are logged and recorded in
// Stats, the previous list stays in use.
func (c *Cache) EnsureFresh(ctx context.Context, ttl time.Duration) {
	for c.stale(c.current.Load(), ttl) {
		v, _, shared := c.group.Do(reloadKey, func() (interface{}, error) {
			// another caller may have finished a reload since we looked
			if !c.stale(c.current.Load(), ttl) {
				return ttl, nil
			}
			return ttl, c.reload(ctx)
		})
		if shared {
			c.entry.Debug("EnsureFresh: shared reload")
		}

		// a leader with a longer ttl may have skipped the fetch
		leaderTTL, _ := v.(time.Duration)
		if leaderTTL <= ttl || ctx.Err() != nil {
			return
		}
	}
}

// Reload fetches the list regardless of its age. It returns the
// reason why no new list was installed, if any. Concurrent calls of
// Reload share one fetch, it never joins a reload of EnsureFresh.
func (c *Cache) Reload(ctx context.Context) error {
	_, err, _ := c.group.Do(forcedKey, func() (interface{}, error) {
		return nil, c.reload(ctx)
	})
	return err
}

func (c *Cache) reload(ctx context.Context) error {
	// shared by every waiting caller, only the fetcher timeout applies
	ctx = context.WithoutCancel(ctx)

	start := c.now()
	resp := c.fetcher.Fetch(ctx)
	end := c.now()

	var (
		list     *tldlist.List
		headline *iana.Headline
		skipped  int
		err      error
	)
	switch {
	case resp.HasBody():
		headline, list, skipped, err = parseBody(resp.Body)
	case resp.Err != nil:
		err = fmt.Errorf("fetch: %s: %w", resp.Status, resp.Err)
	default:
		err = fmt.Errorf("fetch: %s: empty body", resp.Status)
	}

	c.mu.Lock()
	prev := c.current.Load()
	next := *prev
	next.lastCheck = end
	next.lastStatus = resp.Status
	next.reloads = prev.reloads + 1
	next.lastReloadTime = end.Sub(start)
	next.lastErr = err
	if err == nil {
		next.list = list
		next.headline = headline
	}
	c.current.Store(&next)
	c.mu.Unlock()

	if err != nil {
		c.entry.Warnf("reload: #%d failed, keeping %d labels: %v", next.reloads, next.list.Len(), err)
		return err
	}
	c.entry.Infof("reload: #%d: %d labels, version %d, %d lines skipped, took %dms", next.reloads, list.Len(), headline.Version.Number(), skipped, next.lastReloadTime.Milliseconds())
	return nil
}

// parseBody parses the headline and the labels of a raw list.
// Nothing is returned unless both are valid.
func parseBody(body []byte) (*iana.Headline, *tldlist.List, int, error) {
	first, rest := body, []byte(nil)
	if i := bytes.IndexByte(body, '\n'); i != -1 {
		first, rest = body[:i], body[i+1:]
	}

	h, err := iana.ParseHeadline(string(first))
	if err != nil {
		return nil, nil, 0, err
	}

	l, skipped, err := tldlist.LoadFromReader(bytes.NewReader(rest))
	if err != nil {
		return nil, nil, 0, err
	}
	if l.Len() == 0 {
		return nil, nil, 0, ErrEmptyList
	}
	return h, l, skipped, nil
}

// Has reports whether label is in the current list. It never
// triggers a reload.
func (c *Cache) Has(label string) bool {
	return c.current.Load().list.Has(label)
}

// Stats returns a snapshot of the bookkeeping. LastHeadline is a
// copy, changing it does not affect c.
func (c *Cache) Stats() Stats {
	s := c.current.Load()
	var h *iana.Headline
	if s.headline != nil {
		hc := *s.headline
		h = &hc
	}
	return Stats{
		LastResponseStatus: s.lastStatus,
		LastHeadline:       h,
		Reloads:            s.reloads,
		LastReloadTime:     s.lastReloadTime,
		LastCheck:          s.lastCheck,
		LastError:          s.lastErr,
		Len:                s.list.Len(),
	}
}
