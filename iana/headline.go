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

package iana

import (
	"fmt"
	"strings"
	"time"
)

// updatedLayout matches the "Last Updated" part of the headline
// after the two leading words, without the time zone.
const updatedLayout = "Mon Jan 2 15:04:05 2006"

// Headline is the first line of the IANA TLD list, e.g.
//
//	# Version 2021020500, Last Updated Fri Feb  5 07:07:01 2021 UTC
type Headline struct {
	Version     Version
	LastUpdated time.Time // always UTC
	Zone        string    // zone label as written in the headline
	Raw         string
}

// ParseHeadline parses a headline. Any deviation from the expected
// format is an error wrapping ErrMalformedHeadline.
func ParseHeadline(line string) (*Headline, error) {
	raw := strings.TrimSpace(line)
	if !strings.HasPrefix(raw, "#") {
		return nil, fmt.Errorf("%w: missing leading '#'", ErrMalformedHeadline)
	}
	input := strings.TrimSpace(raw[1:])

	comma := strings.IndexByte(input, ',')
	if comma == -1 {
		return nil, fmt.Errorf("%w: missing ',' in [%s]", ErrMalformedHeadline, input)
	}

	versionParts := strings.Fields(input[:comma])
	if len(versionParts) == 0 {
		return nil, fmt.Errorf("%w: empty version part", ErrMalformedHeadline)
	}
	v, err := ParseVersion(versionParts[len(versionParts)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeadline, err)
	}

	// Last Updated Fri Feb 5 07:07:01 2021 UTC
	// 0    1       2   3   4 5        6    7
	updateParts := strings.Fields(input[comma+1:])
	if len(updateParts) < 8 {
		return nil, fmt.Errorf("%w: want 8 fields in update part, got %d", ErrMalformedHeadline, len(updateParts))
	}

	t, err := time.ParseInLocation(updatedLayout, strings.Join(updateParts[2:7], " "), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: last updated: %v", ErrMalformedHeadline, err)
	}

	return &Headline{
		Version:     v,
		LastUpdated: t,
		Zone:        updateParts[7],
		Raw:         raw,
	}, nil
}

func (h *Headline) String() string {
	return fmt.Sprintf("%s | Last Update: %s UTC", h.Version, h.LastUpdated.Format("2006-01-02T15:04:05"))
}
