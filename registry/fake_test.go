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
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/IrineSistiana/tldcheck/fetcher"
)

const (
	testHeadline = "# Version 2021020500, Last Updated Fri Feb  5 07:07:01 2021 UTC"
	testBody     = testHeadline + "\nDE\nGOV\nRU\n"
)

func completed(body string) fetcher.Response {
	return fetcher.Response{Status: fetcher.Completed, StatusCode: 200, Body: []byte(body)}
}

var timedOut = fetcher.Response{Status: fetcher.TimedOut, Err: errors.New("timeout")}

type fakeFetcher struct {
	mu   sync.Mutex
	resp fetcher.Response

	calls   int32
	onFetch func()
	started chan struct{}
	release chan struct{}
}

func newFakeFetcher(r fetcher.Response) *fakeFetcher {
	return &fakeFetcher{resp: r}
}

func (f *fakeFetcher) Fetch(ctx context.Context) fetcher.Response {
	atomic.AddInt32(&f.calls, 1)
	if err := ctx.Err(); err != nil {
		return fetcher.Response{Status: fetcher.Aborted, Err: err}
	}
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		<-f.release
	}
	if f.onFetch != nil {
		f.onFetch()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resp
}

func (f *fakeFetcher) set(r fetcher.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resp = r
}

func (f *fakeFetcher) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2021, 2, 5, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// initTestCache returns a cache driven by a fake fetcher and a fake clock.
func initTestCache(r fetcher.Response) (*Cache, *fakeFetcher, *fakeClock) {
	f := newFakeFetcher(r)
	clk := newFakeClock()
	c := NewCache(f, testEntry())
	c.now = clk.Now
	return c, f, clk
}
