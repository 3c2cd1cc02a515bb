// Package tle loads two-line element sets, the orbital-state format every
// pass predictor feeds on. Entries come from a celestrak-style HTTP source,
// with a plain-file cache so we don't hammer them on every run.
package tle

import (
	"fmt"
	"time"

	"github.com/skypies/util/date"
)

// Entry is one satellite's TLE, plus the bits we bother to parse out of it.
type Entry struct {
	CatalogNumber int       // NORAD catalogue number
	Name          string
	Epoch         time.Time // when the elements were computed
	Line1, Line2  string
}

func (e Entry)Age() time.Duration { return time.Since(e.Epoch) }

func (e Entry)String() string {
	return fmt.Sprintf("[%d] %s, epoch %s (%s old)", e.CatalogNumber, e.Name,
		e.Epoch.Format("2006.01.02 15:04"), date.RoundDuration(e.Age()))
}

// Catalogue maps NORAD numbers to entries.
type Catalogue map[int]Entry
