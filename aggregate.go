package satplan

import (
	"context"
	"errors"
	"time"

	"github.com/skypies/geo"
)

// Predictor is the external astrodynamics capability: given a satellite and
// an observation window, it returns the qualifying passes. Implementations
// apply their own minimum-elevation and minimum-duration thresholds; the
// aggregator never second-guesses them.
type Predictor interface {
	GetEvents(ctx context.Context, satID int, obs geo.Latlong, start, end time.Time) (EventSequence, error)
}

// Aggregate collects pass events for every satellite in sats over
// [start,end) and merges them into one time-ordered sequence. Overlapping
// passes from different satellites are all retained; picking which one to
// actually track is the operator's problem.
//
// A satellite the predictor can't serve right now contributes zero events.
// A satellite the predictor has never heard of aborts the whole run.
func Aggregate(ctx context.Context, p Predictor, obs geo.Latlong, sats []int, start, end time.Time) (EventSequence, error) {
	all := EventSequence{}

	for _,satID := range sats {
		events,err := p.GetEvents(ctx, satID, obs, start, end)
		if err != nil {
			if errors.Is(err, ErrUnknownSatellite) {
				return nil, err
			}
			continue // zero events for this satellite
		}
		all = append(all, events...)
	}

	all.Sort()
	return all, nil
}
