package predict

import (
	"math"
	"testing"
	"time"

	"github.com/skypies/geo"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		t    time.Time
		want float64
	}{
		// J2000.0 epoch
		{time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		// Unix epoch
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		// Vallado example 3-4
		{time.Date(2004, 4, 6, 7, 51, 28, 386009000, time.UTC), 2453101.8274119},
	}

	for _, test := range tests {
		jd := julianDate(test.t)
		if math.Abs(jd-test.want) > 1e-6 {
			t.Errorf("julianDate(%s) = %.7f, want %.7f", test.t, jd, test.want)
		}
	}
}

func TestGMSTAtJ2000(t *testing.T) {
	// GMST at the J2000.0 epoch is 280.46062 degrees.
	deg := gmst(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)) * 180.0 / math.Pi
	if math.Abs(deg-280.46062) > 0.001 {
		t.Errorf("gmst(J2000) = %.5f deg, want 280.46062", deg)
	}
}

func TestObserverZenith(t *testing.T) {
	// Observer on the equator at the prime meridian; satellite 400km
	// straight up sits on the ECEF x axis.
	ob := newObserver(geo.Latlong{Lat: 0, Long: 0}, 0)

	elev := ob.elevationTo(ecef{X: wgs84A + 400000.0, Y: 0, Z: 0})
	if math.Abs(elev-90.0) > 0.01 {
		t.Errorf("zenith elevation = %.3f, want 90.0", elev)
	}

	// A satellite at the same radius but 90 degrees east is well below
	// the horizon.
	elev = ob.elevationTo(ecef{X: 0, Y: wgs84A + 400000.0, Z: 0})
	if elev > -30.0 {
		t.Errorf("far-side elevation = %.3f, want well below horizon", elev)
	}
}

func TestObserverNorthPole(t *testing.T) {
	ob := newObserver(geo.Latlong{Lat: 90, Long: 0}, 0)

	// Polar radius is b = a*(1-f); a satellite above the pole is near
	// zenith from the pole.
	b := wgs84A * (1 - wgs84F)
	elev := ob.elevationTo(ecef{X: 0, Y: 0, Z: b + 800000.0})
	if math.Abs(elev-90.0) > 0.01 {
		t.Errorf("polar zenith elevation = %.3f, want 90.0", elev)
	}
}
