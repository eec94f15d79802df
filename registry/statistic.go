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
	"fmt"
	"time"

	"github.com/IrineSistiana/tldcheck/bufpool"
	"github.com/IrineSistiana/tldcheck/fetcher"
	"github.com/IrineSistiana/tldcheck/iana"
)

// Statistic is a read-only view of the reloads of a Cache.
type Statistic struct {
	cache *Cache
}

func NewStatistic(c *Cache) *Statistic {
	if c == nil {
		panic("registry.NewStatistic: c is nil")
	}
	return &Statistic{cache: c}
}

func (st *Statistic) LastResponseStatus() fetcher.Status {
	return st.cache.Stats().LastResponseStatus
}

// LastHeadline returns the headline of the list in use, nil if
// no list was loaded yet.
func (st *Statistic) LastHeadline() *iana.Headline {
	return st.cache.Stats().LastHeadline
}

// LastVersionNumber returns the version number of the list in use,
// 0 if no list was loaded yet.
func (st *Statistic) LastVersionNumber() uint64 {
	h := st.cache.Stats().LastHeadline
	if h == nil {
		return 0
	}
	return h.Version.Number()
}

// Reloads returns the number of fetch attempts, including the
// first load and failed attempts.
func (st *Statistic) Reloads() uint64 {
	return st.cache.Stats().Reloads
}

func (st *Statistic) LastReloadTime() time.Duration {
	return st.cache.Stats().LastReloadTime
}

func (st *Statistic) LastError() error {
	return st.cache.Stats().LastError
}

func (st *Statistic) String() string {
	s := st.cache.Stats()
	b := bufpool.AcquireBytesBuf()
	defer bufpool.ReleaseBytesBuf(b)

	fmt.Fprintf(b, "Last response status: '%s'\n", s.LastResponseStatus)

	if s.LastResponseStatus == fetcher.Completed && s.LastHeadline != nil {
		d := s.LastReloadTime
		fmt.Fprintf(b, "Last HeadLine: '%s'\n", s.LastHeadline)
		fmt.Fprintf(b, "Last (re)load took %d h, %d m, %d s, %d ms.\n",
			int64(d/time.Hour),
			int64(d/time.Minute)%60,
			int64(d/time.Second)%60,
			int64(d/time.Millisecond)%1000)
	}

	switch s.Reloads {
	case 0:
		b.WriteString("No loads happened.\n")
	case 1:
		b.WriteString("Total 1 load happened.\n")
	default:
		fmt.Fprintf(b, "Total 1 load and %d reloads happened.\n", s.Reloads-1)
	}

	return b.String()
}
