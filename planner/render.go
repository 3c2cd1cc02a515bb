package planner

import (
	"bytes"
	"fmt"

	"github.com/skypies/util/histogram"
)

// Text renders the forecast as a plain-text report. Times are shown in the
// forecast's local zone. Single-day runs list every pass; multi-day runs get
// one summary line per day plus a pass-duration histogram.
func (fc *Forecast)Text() string {
	buf := new(bytes.Buffer)

	fmt.Fprintf(buf, "Observer %s (%s), zone %s\n", fc.Request.Locator, fc.Position,
		fc.Location)
	fmt.Fprintf(buf, "Hours %s-%s local, best %dh window\n\n", fc.Request.EarliestTime,
		fc.Request.LatestTime, fc.Request.OpHours)

	for _, day := range fc.Days {
		fmt.Fprintf(buf, "%s", fc.daySummary(day))

		if len(fc.Days) == 1 {
			fmt.Fprintf(buf, "%s", fc.dayDetail(day))
		}
	}

	if len(fc.Days) > 1 {
		fmt.Fprintf(buf, "\nPass durations (min):\n%s\n", fc.durationHistogram())
	}

	return buf.String()
}

func (fc *Forecast)daySummary(day DayPlan) string {
	date := day.DateLocal.Format("Mon 2006-01-02")

	if len(day.Events) == 0 {
		return fmt.Sprintf("%s: no events\n", date)
	}

	str := fmt.Sprintf("%s: %d passes, %d min total", date, len(day.Events),
		day.Events.TotalMin())

	if day.HasWindow {
		str += fmt.Sprintf("; window from %s has %d passes, %d min",
			day.Window.StartTimeUTC.In(fc.Location).Format("15:04"),
			day.Window.NumEvents(), day.Window.TotalMin)
	}

	return str + "\n"
}

// dayDetail lists every pass of the day, flagging those inside the optimal
// window.
func (fc *Forecast)dayDetail(day DayPlan) string {
	str := ""

	for i, ev := range day.Events {
		marker := " "
		if day.HasWindow && day.Window.Contains(i) {
			marker = "*"
		}
		str += fmt.Sprintf(" %s %s  %-24.24s %2d min  el %4.1f\n", marker,
			ev.StartTimeUTC.In(fc.Location).Format("15:04"), ev.SatelliteName,
			ev.DurationMin, ev.MaxElevation)
	}

	return str
}

func (fc *Forecast)durationHistogram() string {
	h := histogram.Histogram{ValMin: 0, ValMax: 20, NumBuckets: 10}

	for _, day := range fc.Days {
		for _, ev := range day.Events {
			h.Add(histogram.ScalarVal(ev.DurationMin))
		}
	}

	return h.String()
}
