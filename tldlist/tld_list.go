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

package tldlist

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// maxLabelLen is the longest label allowed in dns.
const maxLabelLen = 63

// List is a set of canonical TLD labels. A List must not be
// modified after it has been shared with other goroutines.
type List struct {
	s map[[16]byte]struct{}
	l map[[maxLabelLen]byte]struct{}
}

func New() *List {
	return &List{
		s: make(map[[16]byte]struct{}),
		l: make(map[[maxLabelLen]byte]struct{}),
	}
}

// Canonical returns the form labels are stored in: trimmed and
// upper case. Labels that are still not ASCII after upper-casing
// are converted to their A-label.
func Canonical(label string) string {
	label = strings.ToUpper(strings.TrimSpace(label))
	if !isASCII(label) {
		if a, err := idna.Lookup.ToASCII(label); err == nil {
			label = strings.ToUpper(a)
		}
	}
	return label
}

// Add adds label to l. It reports false if label is empty or
// too long to be a dns label.
func (l *List) Add(label string) bool {
	label = Canonical(label)
	n := len(label)

	switch {
	case n == 0 || n > maxLabelLen:
		return false
	case n <= 16:
		var b [16]byte
		copy(b[:], label)
		l.s[b] = struct{}{}
	default:
		var b [maxLabelLen]byte
		copy(b[:], label)
		l.l[b] = struct{}{}
	}
	return true
}

// Has reports whether label, after canonicalization, is in l.
func (l *List) Has(label string) bool {
	if l == nil {
		return false
	}
	label = Canonical(label)
	n := len(label)

	switch {
	case n == 0 || n > maxLabelLen:
		return false
	case n <= 16:
		var b [16]byte
		copy(b[:], label)
		_, ok := l.s[b]
		return ok
	default:
		var b [maxLabelLen]byte
		copy(b[:], label)
		_, ok := l.l[b]
		return ok
	}
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.s) + len(l.l)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
