// Package locator decodes Maidenhead grid locators ("QTH locators") into
// coordinates. A locator is 4 to 10 characters of alternating letter-pairs
// and digit-pairs, each pair refining the previous field: AA00aa00aa at full
// resolution. The first letter-pair runs A-R (18 fields), later letter-pairs
// run A-X (24 subsquares).
package locator

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/skypies/geo"
)

var ErrInvalidFormat = errors.New("locator: invalid format")

// One mandatory field+square (AA00), then up to two subsquare refinements,
// each an A-X letter pair with an optional digit pair. Anchored both ends:
// trailing junk and six-pair monsters are rejected outright.
var locatorRE = regexp.MustCompile(`^[A-Ra-r]{2}[0-9]{2}([A-Xa-x]{2}([0-9]{2}([A-Xa-x]{2})?)?)?$`)

// Valid reports whether s parses as a grid locator.
func Valid(s string) bool { return locatorRE.MatchString(s) }

// Decode converts a grid locator to the center coordinate of its cell.
// Malformed input yields ErrInvalidFormat, never a partial coordinate.
func Decode(loctr string) (geo.Latlong, error) {
	if !locatorRE.MatchString(loctr) {
		return geo.Latlong{}, ErrInvalidFormat
	}

	loctr = strings.ToUpper(loctr)
	nPairs := len(loctr) / 2

	// Both axes accumulate identically from -90; longitude is doubled at the
	// end, since it maps 24 primary fields over 360 degrees where latitude
	// maps 18 over 180.
	lon,lat := -90.0, -90.0

	for i := 0; i < nPairs; i++ {
		c1,c2 := loctr[2*i], loctr[2*i+1]
		var x1,x2 float64
		if i%2 == 0 {
			x1,x2 = float64(c1-'A'), float64(c2-'A')
		} else {
			x1,x2 = float64(c1-'0'), float64(c2-'0')
		}
		lon += step(i) * x1
		lat += step(i) * x2
	}

	lon *= 2

	// Move from the cell corner to its center.
	half := step(nPairs-1) / 2
	lon += half
	lat += half

	return geo.Latlong{Lat: round6(lat), Long: round6(lon)}, nil
}

// step is the angular width, in degrees, contributed by one unit of pair i:
// 10 for the field letters, 1 for the square digits, 1/24 for the subsquare
// letters, 1/240 for the extended digits, and so on.
func step(i int) float64 {
	return math.Pow(10, float64(1-(i+1)/2)) * math.Pow(24, float64(-(i/2)))
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
