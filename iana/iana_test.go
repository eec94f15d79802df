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
	"testing"
	"time"
)

func Test_ParseVersion(t *testing.T) {
	v, err := ParseVersion("202102050")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Date.Equal(time.Date(2021, 2, 5, 0, 0, 0, 0, time.UTC)) || v.Nr != 0 {
		t.Fatalf("got %v", v)
	}

	v, err = ParseVersion("2021020513")
	if err != nil {
		t.Fatal(err)
	}
	if v.Nr != 13 {
		t.Fatalf("want Nr 13, got %d", v.Nr)
	}
	if s := v.String(); s != "Version from 2021-02-05, #13" {
		t.Fatalf("unexpected String(): %s", s)
	}

	bad := []string{
		"",
		"20210205",     // no sequence
		"2021023000",   // Feb 30
		"2021130100",   // month 13
		"20210205256",  // sequence > 255
		"2021O20500",   // letter O
		" 2021020500",  // space
		"20210205-1",   // sign
	}
	for _, s := range bad {
		if _, err := ParseVersion(s); !errors.Is(err, ErrMalformedVersion) {
			t.Errorf("ParseVersion(%q): want ErrMalformedVersion, got %v", s, err)
		}
	}
}

func Test_Version_Equal(t *testing.T) {
	a := MustParseVersion("2021020500")
	b := MustParseVersion("202102050")
	c := MustParseVersion("2021020501")

	if !a.Equal(b) || a != b {
		t.Fatal("same date and nr should be equal")
	}
	if a.Equal(c) {
		t.Fatal("different nr should not be equal")
	}

	m := map[Version]bool{a: true}
	if !m[b] {
		t.Fatal("equal versions should be the same map key")
	}
}

func Test_Version_Number(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"2021020500", 2021020500},
		{"202102050", 2021020500},
		{"2021020512", 2021020512},
		{"20210205255", 20210205255},
	}
	for _, tt := range tests {
		if got := MustParseVersion(tt.in).Number(); got != tt.want {
			t.Errorf("Number of %s = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func Test_MustParseVersion_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	MustParseVersion("bad")
}

func Test_ParseHeadline(t *testing.T) {
	h, err := ParseHeadline("# Version 2021020500, Last Updated Fri Feb  5 07:07:01 2021 UTC")
	if err != nil {
		t.Fatal(err)
	}

	if !h.Version.Equal(MustParseVersion("2021020500")) {
		t.Fatalf("unexpected version %v", h.Version)
	}
	want := time.Date(2021, 2, 5, 7, 7, 1, 0, time.UTC)
	if !h.LastUpdated.Equal(want) || h.LastUpdated.Location() != time.UTC {
		t.Fatalf("want %v, got %v", want, h.LastUpdated)
	}
	if h.Zone != "UTC" {
		t.Fatalf("unexpected zone %s", h.Zone)
	}
	if s := h.String(); s != "Version from 2021-02-05, #0 | Last Update: 2021-02-05T07:07:01 UTC" {
		t.Fatalf("unexpected String(): %s", s)
	}
}

func Test_ParseHeadline_errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		version bool
	}{
		{"empty", "", false},
		{"no marker", "Version 2021020500, Last Updated Fri Feb 5 07:07:01 2021 UTC", false},
		{"no comma", "# Version 2021020500 Last Updated Fri Feb 5 07:07:01 2021 UTC", false},
		{"empty version", "# , Last Updated Fri Feb 5 07:07:01 2021 UTC", false},
		{"bad version", "# Version 2021023000, Last Updated Fri Feb 5 07:07:01 2021 UTC", true},
		{"too few fields", "# Version 2021020500, Last Updated Fri Feb 5 07:07:01 2021", false},
		{"unknown month", "# Version 2021020500, Last Updated Fri Fbr 5 07:07:01 2021 UTC", false},
		{"bad day", "# Version 2021020500, Last Updated Fri Feb 31 07:07:01 2021 UTC", false},
		{"bad time", "# Version 2021020500, Last Updated Fri Feb 5 07:61:01 2021 UTC", false},
		{"short time", "# Version 2021020500, Last Updated Fri Feb 5 07:07 2021 UTC", false},
		{"bad year", "# Version 2021020500, Last Updated Fri Feb 5 07:07:01 21 UTC", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeadline(tt.line)
			if h != nil {
				t.Fatalf("want nil headline, got %v", h)
			}
			if !errors.Is(err, ErrMalformedHeadline) {
				t.Fatalf("want ErrMalformedHeadline, got %v", err)
			}
			if tt.version && !errors.Is(err, ErrMalformedVersion) {
				t.Fatalf("want ErrMalformedVersion cause, got %v", err)
			}
		})
	}
}
