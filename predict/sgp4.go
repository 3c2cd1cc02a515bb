package predict

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// orbit wraps an initialized SGP4 propagator for one satellite.
type orbit struct {
	sat satellite.Satellite
}

// newOrbit initializes SGP4 from the two element-set lines. The underlying
// library aborts the process on malformed input, so the lines are vetted
// before being handed over.
func newOrbit(line1, line2 string) (orbit, error) {
	if err := checkTLELine(line1, '1'); err != nil {
		return orbit{}, err
	} else if err := checkTLELine(line2, '2'); err != nil {
		return orbit{}, err
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	return orbit{sat: sat}, nil
}

func checkTLELine(line string, lineNum byte) error {
	if len(line) != 69 {
		return fmt.Errorf("TLE line %c: got %d chars, want 69", lineNum, len(line))
	} else if line[0] != lineNum || line[1] != ' ' {
		return fmt.Errorf("TLE line %c: bad prefix %q", lineNum, line[:2])
	}
	return nil
}

// positionAt propagates to time t and returns the ECEF position. An error
// means the propagation went numerically bad (decayed orbit, element set far
// outside its validity window).
func (o orbit) positionAt(t time.Time) (ecef, error) {
	u := t.UTC()
	pos, _ := satellite.Propagate(o.sat, u.Year(), int(u.Month()), u.Day(),
		u.Hour(), u.Minute(), u.Second())

	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) {
		return ecef{}, fmt.Errorf("propagation returned NaN at %s", u)
	}

	// Anything inside the Earth or past lunar distance is garbage.
	rKm := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if rKm < 6300.0 || rKm > 500000.0 {
		return ecef{}, fmt.Errorf("propagation gave radius %.0f km at %s", rKm, u)
	}

	return temeToECEF(pos.X, pos.Y, pos.Z, u), nil
}
