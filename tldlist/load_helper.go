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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/miekg/dns"
)

// LoadFromReader reads one label per line. Lines that are not a
// single valid dns label are skipped, their count is returned.
func LoadFromReader(r io.Reader) (l *List, skipped int, err error) {
	l = New()

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())

		//ignore lines begin with # and empty lines
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if n, ok := dns.IsDomainName(line); !ok || n != 1 || strings.HasSuffix(line, ".") {
			skipped++
			continue
		}
		if !l.Add(line) {
			skipped++
		}
	}
	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}

	return l, skipped, nil
}
