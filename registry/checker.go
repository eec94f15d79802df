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
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// DefaultTTL is how long a loaded list is used before it is reloaded.
const DefaultTTL = time.Hour * 24

// Checker checks whether TLDs are registered by IANA. Checkers
// sharing a Cache share its list, each has its own TTL.
type Checker struct {
	cache *Cache
	ttl   time.Duration
}

// NewChecker returns a Checker using c. ttl <= 0 means DefaultTTL.
func NewChecker(c *Cache, ttl time.Duration) *Checker {
	if c == nil {
		panic("registry.NewChecker: c is nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Checker{cache: c, ttl: ttl}
}

func (ck *Checker) TTL() time.Duration {
	return ck.ttl
}

// CheckTLD reports whether tld is known by IANA. Case and
// surrounding spaces are ignored.
func (ck *Checker) CheckTLD(ctx context.Context, tld string) bool {
	return ck.CheckTLDWithTTL(ctx, tld, ck.ttl)
}

// CheckTLDWithTTL is like CheckTLD but reloads the list if it is
// older than ttl. ttl <= 0 means the TTL of ck.
func (ck *Checker) CheckTLDWithTTL(ctx context.Context, tld string, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = ck.ttl
	}
	ck.cache.EnsureFresh(ctx, ttl)
	return ck.cache.Has(tld)
}

// CheckURL reports whether the TLD of the host of u is known by IANA.
func (ck *Checker) CheckURL(ctx context.Context, u *url.URL) bool {
	return ck.CheckTLDWithTTL(ctx, TLDOf(u), ck.ttl)
}

func (ck *Checker) CheckURLWithTTL(ctx context.Context, u *url.URL, ttl time.Duration) bool {
	return ck.CheckTLDWithTTL(ctx, TLDOf(u), ttl)
}

// TLDOf returns the last label of the host of u, or "" if u has no host.
func TLDOf(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := strings.TrimSuffix(u.Hostname(), ".")
	labels := dns.SplitDomainName(host)
	if len(labels) == 0 {
		return ""
	}
	return labels[len(labels)-1]
}
