// This package contains the core types and algorithms for planning satellite
// operation windows. No I/O, no orbital mechanics; those live in subpackages.
package satplan

import (
	"errors"
	"time"
)

const (
	// Passes shorter than this are not worth setting up an antenna for.
	DefaultMinDuration = 3 * time.Minute
	// Passes that never climb above this angle stay buried in ground clutter.
	DefaultMinElevation = 10.0 // degrees
)

var (
	ErrNoEvents = errors.New("event sequence is empty")

	// The predictor could not produce events for a satellite right now
	// (network down, propagation blew up). Treated as zero events.
	ErrPredictorUnavailable = errors.New("pass predictor unavailable")

	// The satellite isn't in the catalogue at all. That's a configuration
	// problem, not a quiet day; callers should give up and say so.
	ErrUnknownSatellite = errors.New("satellite not in catalogue")
)
