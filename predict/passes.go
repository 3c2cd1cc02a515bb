package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skypies/geo"

	"github.com/skypies/satplan"
	"github.com/skypies/satplan/tle"
)

// Config tunes the pass search.
type Config struct {
	MinElevation float64       // degrees; passes peaking below this are discarded
	MinDuration  time.Duration // passes this short or shorter are discarded
	ObserverAltM float64       // observer altitude above the WGS-84 ellipsoid

	CoarseStep time.Duration // first sweep; 0 means 30s
	FineStep   time.Duration // rise/set refinement; 0 means 1s
}

func (c Config)coarse() time.Duration {
	if c.CoarseStep > 0 { return c.CoarseStep }
	return 30 * time.Second
}
func (c Config)fine() time.Duration {
	if c.FineStep > 0 { return c.FineStep }
	return time.Second
}

// NewConfig returns the defaults used by the planner.
func NewConfig() Config {
	return Config{
		MinElevation: satplan.DefaultMinElevation,
		MinDuration:  satplan.DefaultMinDuration,
	}
}

// SGP4Predictor computes pass events by propagating orbits from a TLE
// catalogue. It implements satplan.Predictor.
type SGP4Predictor struct {
	Catalogue tle.Catalogue
	Cfg       Config
	Log       *logrus.Logger
}

func NewPredictor(cat tle.Catalogue, log *logrus.Logger) *SGP4Predictor {
	return &SGP4Predictor{Catalogue: cat, Cfg: NewConfig(), Log: log}
}

// GetEvents finds every pass of the satellite over the observer within
// [start,end) that clears the configured elevation and duration floors.
func (p *SGP4Predictor)GetEvents(ctx context.Context, satID int, obs geo.Latlong, start, end time.Time) (satplan.EventSequence, error) {
	entry, exists := p.Catalogue[satID]
	if !exists {
		return nil, fmt.Errorf("catalogue has no entry for %d: %w", satID, satplan.ErrUnknownSatellite)
	}

	orb, err := newOrbit(entry.Line1, entry.Line2)
	if err != nil {
		return nil, fmt.Errorf("satellite %d: %v: %w", satID, err, satplan.ErrPredictorUnavailable)
	}

	ob := newObserver(obs, p.Cfg.ObserverAltM)

	nErrs := 0
	elev := func(t time.Time) (float64, error) {
		pos, err := orb.positionAt(t)
		if err != nil {
			nErrs++
			return 0, err
		}
		return ob.elevationTo(pos), nil
	}

	passes, err := scanPasses(ctx, elev, start, end, p.Cfg)
	if err != nil {
		return nil, err
	}
	if nErrs > 0 && p.Log != nil {
		p.Log.WithFields(logrus.Fields{
			"satellite": entry.Name,
			"failures":  nErrs,
		}).Warn("propagation failures during pass scan")
	}

	events := satplan.EventSequence{}
	for _, pass := range passes {
		events = append(events, satplan.PassEvent{
			SatelliteName: entry.Name,
			StartTimeUTC:  pass.rise,
			DurationMin:   int(pass.set.Sub(pass.rise).Minutes()),
			MaxElevation:  pass.maxElev,
		})
	}

	return events, nil
}

type pass struct {
	rise, set time.Time
	maxElev   float64
}

type elevFunc func(time.Time) (float64, error)

// scanPasses sweeps [start,end) at the coarse step looking for threshold
// crossings, then refines each rise and set at the fine step. A sample that
// fails to evaluate counts as below the horizon; if every sample fails the
// whole scan is reported unavailable.
func scanPasses(ctx context.Context, elev elevFunc, start, end time.Time, cfg Config) ([]pass, error) {
	passes := []pass{}

	nOK := 0
	above := func(t time.Time) (bool, float64) {
		e, err := elev(t)
		if err != nil {
			return false, 0
		}
		nOK++
		return e >= cfg.MinElevation, e
	}

	cur := pass{}
	up := false
	prev := start

	for t := start; t.Before(end); t = t.Add(cfg.coarse()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		isUp, e := above(t)

		if isUp && !up {
			cur = pass{rise: refineRise(above, prev, t, cfg.fine()), maxElev: e}
			up = true

		} else if isUp && e > cur.maxElev {
			cur.maxElev = e

		} else if !isUp && up {
			cur.set = refineSet(above, prev, t, cfg.fine())
			if cur.set.Sub(cur.rise) > cfg.MinDuration {
				passes = append(passes, cur)
			}
			up = false
		}

		prev = t
	}

	// A pass still in progress at the end of the interval is clipped there.
	if up {
		cur.set = end
		if cur.set.Sub(cur.rise) > cfg.MinDuration {
			passes = append(passes, cur)
		}
	}

	if nOK == 0 {
		return nil, fmt.Errorf("no usable propagation samples in [%s,%s): %w",
			start, end, satplan.ErrPredictorUnavailable)
	}

	return passes, nil
}

// refineRise walks forward from lo (below) to hi (above) to find the first
// fine-step instant at or above threshold.
func refineRise(above func(time.Time) (bool, float64), lo, hi time.Time, step time.Duration) time.Time {
	for t := lo; t.Before(hi); t = t.Add(step) {
		if isUp, _ := above(t); isUp {
			return t
		}
	}
	return hi
}

// refineSet walks forward from lo (above) to hi (below) to find the last
// fine-step instant still at or above threshold.
func refineSet(above func(time.Time) (bool, float64), lo, hi time.Time, step time.Duration) time.Time {
	last := lo
	for t := lo; t.Before(hi); t = t.Add(step) {
		if isUp, _ := above(t); isUp {
			last = t
		}
	}
	return last
}
