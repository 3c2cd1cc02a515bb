package tle

// go test -v github.com/skypies/satplan/tle

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var testLog = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

var issTLE = `ISS (ZARYA)
1 25544U 98067A   24100.50000000  .00016717  00000-0  10270-3 0  9005
2 25544  51.6400 100.0000 0001000   0.0000   0.0000 15.50000000    09
`

var so50TLE = `SAUDISAT 1C (SO-50)
1 27607U 02058C   24100.25000000  .00000900  00000-0  47000-3 0  9992
2 27607  64.5555 120.0000 0035000 300.0000  60.0000 14.75000000    01
`

func TestParse(t *testing.T) {
	entries,err := Parse(strings.NewReader(issTLE+so50TLE), testLog)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	iss := entries[0]
	if iss.CatalogNumber != 25544 {
		t.Errorf("catalogue number: got %d, wanted 25544", iss.CatalogNumber)
	}
	if iss.Name != "ISS (ZARYA)" {
		t.Errorf("name: got %q", iss.Name)
	}

	// Epoch 24100.5 == 2024 day 100.5 == Apr 9 12:00 UTC.
	want := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	if !iss.Epoch.Equal(want) {
		t.Errorf("epoch: got %s, wanted %s", iss.Epoch, want)
	}

	if entries[1].CatalogNumber != 27607 {
		t.Errorf("second entry: got %d, wanted 27607", entries[1].CatalogNumber)
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	garbage := "SOME SAT\nthis is not a TLE line\nneither is this\n"
	entries,err := Parse(strings.NewReader(garbage+issTLE), testLog)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 || entries[0].CatalogNumber != 25544 {
		t.Errorf("expected just the ISS to survive, got %v", entries)
	}
}

func TestParseEpochCentury(t *testing.T) {
	// Year 98 is 1998, year 24 is 2024.
	if e,_ := parseEpoch("98001.00000000"); e.Year() != 1998 {
		t.Errorf("epoch year 98: got %d", e.Year())
	}
	if e,_ := parseEpoch("24001.00000000"); e.Year() != 2024 {
		t.Errorf("epoch year 24: got %d", e.Year())
	}
}
