// Package planner turns a request (where, which satellites, which days,
// which hours) into a per-day forecast: all visible passes, plus the best
// contiguous operating window within each day.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/latlong"
	"github.com/sirupsen/logrus"
	"github.com/skypies/geo"

	"github.com/skypies/satplan"
	"github.com/skypies/satplan/locator"
)

// Request is the full configuration for one planning run.
type Request struct {
	Locator    string // Maidenhead grid square of the observer
	Satellites []int  // NORAD catalogue numbers

	StartDate    string // "2006-01-02", local date of the first forecast day
	EarliestTime string // "15:04", local; start of each day's usable hours
	LatestTime   string // "15:04", local; end of each day's usable hours
	OpHours      int    // span of the operating window to search for
	Days         int    // number of consecutive days to forecast

	Timezone string // optional IANA name; default is looked up from the locator
}

// DayPlan is one forecast day.
type DayPlan struct {
	DateLocal time.Time // midnight, local zone
	Events    satplan.EventSequence
	Window    satplan.OptimalWindow
	HasWindow bool
}

// Forecast is the result of a planning run.
type Forecast struct {
	Request  Request
	Position geo.Latlong
	Location *time.Location
	Days     []DayPlan
}

type Planner struct {
	Predictor satplan.Predictor
	Log       *logrus.Logger
}

func New(p satplan.Predictor, log *logrus.Logger) *Planner {
	return &Planner{Predictor: p, Log: log}
}

// Run resolves the observer position and timezone, then builds a DayPlan for
// each requested day. A day with no predicted events gets an empty plan; only
// configuration problems (bad locator, unknown satellite, bad times) fail the
// whole run.
func (p *Planner)Run(ctx context.Context, req Request) (*Forecast, error) {
	pos, err := locator.Decode(req.Locator)
	if err != nil {
		return nil, fmt.Errorf("locator %q: %w", req.Locator, err)
	}

	loc, err := resolveZone(req, pos)
	if err != nil {
		return nil, err
	}

	if req.Days < 1 {
		req.Days = 1
	}
	if req.OpHours < 1 {
		return nil, fmt.Errorf("operating window must be at least one hour, got %d", req.OpHours)
	}

	day0, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("start date %q: %v", req.StartDate, err)
	}
	earliest, latest, err := parseDayBounds(req)
	if err != nil {
		return nil, err
	}

	fc := Forecast{Request: req, Position: pos, Location: loc}

	for i := 0; i < req.Days; i++ {
		day := day0.AddDate(0, 0, i)
		start := day.Add(earliest)
		end := day.Add(latest)

		events, err := satplan.Aggregate(ctx, p.Predictor, pos, req.Satellites,
			start.UTC(), end.UTC())
		if err != nil {
			return nil, err
		}

		plan := DayPlan{DateLocal: day, Events: events}

		if len(events) > 0 {
			window, err := satplan.FindOptimalWindow(events, req.OpHours)
			if err != nil && !errors.Is(err, satplan.ErrNoEvents) {
				return nil, err
			} else if err == nil {
				plan.Window = window
				plan.HasWindow = true
			}
		}

		if p.Log != nil {
			p.Log.WithFields(logrus.Fields{
				"date":   day.Format("2006-01-02"),
				"events": len(events),
			}).Debug("forecast day computed")
		}

		fc.Days = append(fc.Days, plan)
	}

	return &fc, nil
}

func resolveZone(req Request, pos geo.Latlong) (*time.Location, error) {
	name := req.Timezone
	if name == "" {
		name = latlong.LookupZoneName(pos.Lat, pos.Long)
		if name == "" {
			return nil, fmt.Errorf("no timezone found for %s; set one explicitly", pos)
		}
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %v", name, err)
	}
	return loc, nil
}

// parseDayBounds returns the earliest and latest times as offsets from local
// midnight.
func parseDayBounds(req Request) (time.Duration, time.Duration, error) {
	earliest, err := clockOffset(req.EarliestTime)
	if err != nil {
		return 0, 0, fmt.Errorf("earliest time %q: %v", req.EarliestTime, err)
	}
	latest, err := clockOffset(req.LatestTime)
	if err != nil {
		return 0, 0, fmt.Errorf("latest time %q: %v", req.LatestTime, err)
	}

	if latest <= earliest {
		return 0, 0, fmt.Errorf("latest time %s is not after earliest time %s",
			req.LatestTime, req.EarliestTime)
	}
	return earliest, latest, nil
}

func clockOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
