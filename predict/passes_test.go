package predict

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skypies/geo"

	"github.com/skypies/satplan"
	"github.com/skypies/satplan/tle"
)

var scanStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// boxElev is up at a fixed elevation inside [rise,set), down otherwise.
func boxElev(rise, set time.Time, peak float64) elevFunc {
	return func(t time.Time) (float64, error) {
		if !t.Before(rise) && t.Before(set) {
			return peak, nil
		}
		return -10.0, nil
	}
}

func TestScanFindsPass(t *testing.T) {
	rise := scanStart.Add(10 * time.Minute)
	set := scanStart.Add(20 * time.Minute)
	elev := boxElev(rise, set, 45.0)

	passes, err := scanPasses(context.Background(), elev, scanStart, scanStart.Add(time.Hour), NewConfig())
	if err != nil {
		t.Fatalf("scanPasses: %v", err)
	}
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1", len(passes))
	}

	p := passes[0]
	if !p.rise.Equal(rise) {
		t.Errorf("rise = %s, want %s", p.rise, rise)
	}
	// Last fine sample still up is one fine step before the set time.
	if !p.set.Equal(set.Add(-time.Second)) {
		t.Errorf("set = %s, want %s", p.set, set.Add(-time.Second))
	}
	if p.maxElev != 45.0 {
		t.Errorf("maxElev = %.1f, want 45.0", p.maxElev)
	}
}

func TestScanDiscardsShortPass(t *testing.T) {
	// Two minutes above the horizon doesn't clear a three minute floor.
	elev := boxElev(scanStart.Add(10*time.Minute), scanStart.Add(12*time.Minute), 30.0)

	passes, err := scanPasses(context.Background(), elev, scanStart, scanStart.Add(time.Hour), NewConfig())
	if err != nil {
		t.Fatalf("scanPasses: %v", err)
	}
	if len(passes) != 0 {
		t.Errorf("got %d passes, want 0", len(passes))
	}
}

func TestScanClipsPassAtEnd(t *testing.T) {
	end := scanStart.Add(30 * time.Minute)
	elev := boxElev(scanStart.Add(20*time.Minute), scanStart.Add(45*time.Minute), 60.0)

	passes, err := scanPasses(context.Background(), elev, scanStart, end, NewConfig())
	if err != nil {
		t.Fatalf("scanPasses: %v", err)
	}
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1", len(passes))
	}
	if !passes[0].set.Equal(end) {
		t.Errorf("clipped set = %s, want %s", passes[0].set, end)
	}
}

func TestScanFindsMultiplePasses(t *testing.T) {
	p1 := boxElev(scanStart.Add(5*time.Minute), scanStart.Add(15*time.Minute), 20.0)
	p2 := boxElev(scanStart.Add(40*time.Minute), scanStart.Add(50*time.Minute), 70.0)
	elev := func(t time.Time) (float64, error) {
		if e, _ := p1(t); e > 0 {
			return e, nil
		}
		return p2(t)
	}

	passes, err := scanPasses(context.Background(), elev, scanStart, scanStart.Add(time.Hour), NewConfig())
	if err != nil {
		t.Fatalf("scanPasses: %v", err)
	}
	if len(passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(passes))
	}
	if passes[0].maxElev != 20.0 || passes[1].maxElev != 70.0 {
		t.Errorf("maxElevs = %.1f,%.1f, want 20,70", passes[0].maxElev, passes[1].maxElev)
	}
}

func TestScanAllSamplesFailing(t *testing.T) {
	elev := func(time.Time) (float64, error) { return 0, errors.New("decayed") }

	_, err := scanPasses(context.Background(), elev, scanStart, scanStart.Add(time.Hour), NewConfig())
	if !errors.Is(err, satplan.ErrPredictorUnavailable) {
		t.Errorf("got %v, want ErrPredictorUnavailable", err)
	}
}

func TestScanHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	elev := boxElev(scanStart, scanStart.Add(time.Hour), 45.0)
	_, err := scanPasses(ctx, elev, scanStart, scanStart.Add(time.Hour), NewConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestPredictorUnknownSatellite(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	p := NewPredictor(tle.Catalogue{}, log)
	obs := geo.Latlong{Lat: 1.354167, Long: 103.9375}

	_, err := p.GetEvents(context.Background(), 25544, obs, scanStart, scanStart.Add(time.Hour))
	if !errors.Is(err, satplan.ErrUnknownSatellite) {
		t.Errorf("got %v, want ErrUnknownSatellite", err)
	}
}
