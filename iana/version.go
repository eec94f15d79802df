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
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrMalformedVersion  = errors.New("malformed version")
	ErrMalformedHeadline = errors.New("malformed headline")
)

// dateLayout is the date part of a version number, e.g. 20210205.
const dateLayout = "20060102"

// Version is the version of the IANA TLD list. A version number
// like 2021020500 is a date followed by a sequence number of that day.
type Version struct {
	Date time.Time
	Nr   uint8
}

// ParseVersion parses a version number. s must have at least 9 digits,
// the first 8 are a valid YYYYMMDD date, the rest a number in [0,255].
func ParseVersion(s string) (Version, error) {
	if len(s) < 9 {
		return Version{}, fmt.Errorf("%w: [%s] is too short", ErrMalformedVersion, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Version{}, fmt.Errorf("%w: [%s] has non-digit characters", ErrMalformedVersion, s)
		}
	}

	date, err := time.ParseInLocation(dateLayout, s[:8], time.UTC)
	if err != nil {
		return Version{}, fmt.Errorf("%w: date [%s]: %v", ErrMalformedVersion, s[:8], err)
	}

	nr, err := strconv.ParseUint(s[8:], 10, 8)
	if err != nil {
		return Version{}, fmt.Errorf("%w: sequence [%s]: %v", ErrMalformedVersion, s[8:], err)
	}

	return Version{Date: date, Nr: uint8(nr)}, nil
}

// MustParseVersion is like ParseVersion but panics if s is malformed.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// Equal reports whether v and o have the same date and sequence number.
func (v Version) Equal(o Version) bool {
	return v.Date.Equal(o.Date) && v.Nr == o.Nr
}

// Number returns v in the form IANA publishes it, YYYYMMDD followed
// by the sequence number with at least two digits, e.g. 2021020500.
func (v Version) Number() uint64 {
	y, m, d := v.Date.Date()
	n := uint64(y)*10000 + uint64(m)*100 + uint64(d)
	if v.Nr > 99 {
		return n*1000 + uint64(v.Nr)
	}
	return n*100 + uint64(v.Nr)
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.Date.IsZero() && v.Nr == 0
}

func (v Version) String() string {
	return fmt.Sprintf("Version from %s, #%d", v.Date.Format("2006-01-02"), v.Nr)
}
