// Package predict turns TLEs into pass events: SGP4 propagation via
// go-satellite, then TEME -> ECEF -> observer look angles to decide when a
// satellite sits usefully above the horizon.
//
// Frame handling is the simplified Vallado treatment, GMST rotation only; it
// ignores polar motion, which costs tens of meters and matters not at all
// for deciding whether an elevation threshold is crossed.
package predict

import (
	"math"
	"time"

	"github.com/skypies/geo"
)

// WGS-84 ellipsoid.
const (
	wgs84A  = 6378137.0             // semi-major axis, meters
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared

	j2000 = 2451545.0 // Julian Date of the J2000.0 epoch
)

// julianDate converts UTC wall time to Julian Date.
func julianDate(t time.Time) float64 {
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// Jan/Feb count as months 13/14 of the prior year.
	if m <= 2 {
		y -= 1
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
	return jd + (h+min/60.0+s/3600.0)/24.0
}

// gmst is Greenwich Mean Sidereal Time in radians, IAU-82 model
// (Vallado Eq 3-47).
func gmst(t time.Time) float64 {
	tUT1 := (julianDate(t.UTC()) - j2000) / 36525.0

	sec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	sec = math.Mod(sec, 86400.0)
	if sec < 0 {
		sec += 86400.0
	}
	return sec / 86400.0 * 2.0 * math.Pi
}

// ecef is an earth-fixed position in meters.
type ecef struct {
	X, Y, Z float64
}

// temeToECEF rotates a TEME position (km, as SGP4 emits) into ECEF meters
// for the given time.
func temeToECEF(x, y, z float64, t time.Time) ecef {
	theta := gmst(t)
	cosG,sinG := math.Cos(theta), math.Sin(theta)

	return ecef{
		X: (x*cosG + y*sinG) * 1000.0,
		Y: (-x*sinG + y*cosG) * 1000.0,
		Z: z * 1000.0,
	}
}

// observer is a ground station with its ECEF coordinates precomputed, so a
// scan over thousands of time steps doesn't redo the geodesy.
type observer struct {
	latRad, lonRad float64
	pos            ecef
}

func newObserver(ll geo.Latlong, altM float64) observer {
	lat := ll.Lat * math.Pi / 180.0
	lon := ll.Long * math.Pi / 180.0

	sinLat,cosLat := math.Sin(lat), math.Cos(lat)
	sinLon,cosLon := math.Sin(lon), math.Cos(lon)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return observer{
		latRad: lat,
		lonRad: lon,
		pos: ecef{
			X: (n + altM) * cosLat * cosLon,
			Y: (n + altM) * cosLat * sinLon,
			Z: (n*(1-wgs84E2) + altM) * sinLat,
		},
	}
}

// elevationTo is the angle, in degrees above the observer's horizon, of a
// satellite at the given ECEF position. SEZ topocentric rotation, Vallado
// section 4.4.
func (o observer) elevationTo(sat ecef) float64 {
	rx := sat.X - o.pos.X
	ry := sat.Y - o.pos.Y
	rz := sat.Z - o.pos.Z

	sinLat,cosLat := math.Sin(o.latRad), math.Cos(o.latRad)
	sinLon,cosLon := math.Sin(o.lonRad), math.Cos(o.lonRad)

	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	rangeMag := math.Sqrt(south*south + east*east + zenith*zenith)

	return math.Asin(zenith/rangeMag) * 180.0 / math.Pi
}
