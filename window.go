package satplan

import (
	"fmt"
	"time"
)

// OptimalWindow identifies the contiguous run of events, out of a sorted
// EventSequence, that packs the most pass-time into a bounded span.
// Recomputed per forecast day; never persisted.
type OptimalWindow struct {
	FirstIndex, LastIndex int       // inclusive index range into the sequence
	StartTimeUTC          time.Time // == events[FirstIndex].StartTimeUTC
	TotalMin              int       // summed durations of the events in range
}

func (w OptimalWindow)NumEvents() int { return w.LastIndex - w.FirstIndex + 1 }

func (w OptimalWindow)Contains(i int) bool {
	return i >= w.FirstIndex && i <= w.LastIndex
}

func (w OptimalWindow)String() string {
	return fmt.Sprintf("window [%d,%d] @ %s, %d min",
		w.FirstIndex, w.LastIndex, w.StartTimeUTC.Format("15:04:05"), w.TotalMin)
}

// FindOptimalWindow tries every event as the anchor of a window lasting
// maxSpanHours and returns the anchor that collects the most total pass
// minutes. Because events are sorted, a window's content is always a
// contiguous index range starting at its anchor, so the scan is exhaustive.
// Ties keep the earliest anchor. Quadratic, which is fine for the tens of
// events a forecast day produces.
//
// Note that summed durations don't model wall-clock overlap between
// satellites; two simultaneous passes both count in full.
func FindOptimalWindow(events EventSequence, maxSpanHours int) (OptimalWindow, error) {
	if len(events) == 0 {
		return OptimalWindow{}, ErrNoEvents
	}

	span := time.Duration(maxSpanHours) * time.Hour
	best := OptimalWindow{StartTimeUTC: events[0].StartTimeUTC}

	for i := range events {
		windowEnd := events[i].StartTimeUTC.Add(span)

		total,count := 0,0
		for j := i; j < len(events); j++ {
			if events[j].StartTimeUTC.Before(windowEnd) {
				total += events[j].DurationMin
				count++
			}
		}

		if total > best.TotalMin {
			best = OptimalWindow{
				FirstIndex:   i,
				LastIndex:    i + count - 1,
				StartTimeUTC: events[i].StartTimeUTC,
				TotalMin:     total,
			}
		}
	}

	return best, nil
}
