package satplan

import (
	"fmt"
	"sort"
	"time"
)

// PassEvent is one full rise-to-set pass of a satellite over an observer,
// already filtered for minimum elevation and minimum duration by whoever
// produced it. Immutable once built.
type PassEvent struct {
	SatelliteName string
	StartTimeUTC  time.Time // AOS, always in UTC, to make life SIMPLE
	DurationMin   int       // whole minutes above the elevation threshold
	MaxElevation  float64   // degrees; zero if the producer didn't track it
}

func (pe PassEvent)End() time.Time {
	return pe.StartTimeUTC.Add(time.Duration(pe.DurationMin) * time.Minute)
}

func (pe PassEvent)String() string {
	return fmt.Sprintf("[%s] %s, %d min", pe.StartTimeUTC.Format("2006.01.02 15:04:05"),
		pe.SatelliteName, pe.DurationMin)
}

// An EventSequence is a slice of PassEvents, sorted ascending by start time.
// Order among equal start times carries no meaning.
type EventSequence []PassEvent

type byStartTimeAscending EventSequence
func (a byStartTimeAscending) Len() int           { return len(a) }
func (a byStartTimeAscending) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byStartTimeAscending) Less(i, j int) bool {
	return a[i].StartTimeUTC.Before(a[j].StartTimeUTC)
}

func (es EventSequence)Sort() { sort.Stable(byStartTimeAscending(es)) }

func (es EventSequence)Start() time.Time { return es[0].StartTimeUTC }

func (es EventSequence)TotalMin() int {
	n := 0
	for _,pe := range es {
		n += pe.DurationMin
	}
	return n
}

func (es EventSequence)String() string {
	if len(es) == 0 { return "EventSequence: empty" }
	return fmt.Sprintf("EventSequence: %d events, start=%s, %d min total",
		len(es), es.Start().Format("2006.01.02 15:04:05"), es.TotalMin())
}
