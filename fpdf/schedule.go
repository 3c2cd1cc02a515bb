// Provides routines to render pass forecasts as printable PDFs
package fpdf

import(
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/skypies/satplan/planner"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

var (
	PassRGB   = []int{0x20, 0x60, 0xc0} // pass bars
	WindowRGB = []int{0xd8, 0xf0, 0xd8} // optimal window shading
)

type SchedulePdf struct {
	Forecast *planner.Forecast
	OpHours  int

	Grid         *BaseGrid
	*gofpdf.Fpdf // Embedded pointer

	Caption   string
}

// {{{ sp.Init

func (g *SchedulePdf)Init() {
	g.Fpdf = gofpdf.New("L", "mm", "Letter", "")
	g.AddPage()
	g.SetFont("Arial", "", 10)

	minHr, maxHr := g.hourRange()

	labels := []string{}
	for _,day := range g.Forecast.Days {
		labels = append(labels, day.DateLocal.Format("Mon 01-02"))
	}

	g.Grid = &BaseGrid{
		Fpdf: g.Fpdf,
		OffsetU: 35,
		OffsetV: 25,
		W: 230,
		H: float64(len(g.Forecast.Days)) * 12.0,
		MinX: minHr,
		MaxX: maxHr,
		MinY: 0,
		MaxY: float64(len(g.Forecast.Days)),
		XGridlineEvery: 1,
		YGridlineEvery: 1,
		XTickFmt: "%02.0f:00",
		YTickLabels: labels,
		InvertY: true, // first day at the top
		Clip: true,
	}
}

// }}}

// {{{ sp.DrawFrames

func (g SchedulePdf)DrawFrames() {
	g.Grid.DrawGridlines()
}

// }}}
// {{{ sp.DrawWindows

// Shades each day's optimal operating window across the full row height.
func (g SchedulePdf)DrawWindows() {
	g.SetFillColor(WindowRGB[0], WindowRGB[1], WindowRGB[2])

	for i,day := range g.Forecast.Days {
		if !day.HasWindow { continue }

		x1 := g.localHour(day.Window.StartTimeUTC)
		x2 := x1 + float64(g.OpHours)
		y := float64(i)

		g.Grid.Box(x1, y+0.04, x2, y+0.96, "F")
	}
}

// }}}
// {{{ sp.DrawPasses

// Each pass is a bar positioned by its local start time and duration.
func (g SchedulePdf)DrawPasses() {
	g.SetFillColor(PassRGB[0], PassRGB[1], PassRGB[2])

	for i,day := range g.Forecast.Days {
		y := float64(i)
		for _,ev := range day.Events {
			x1 := g.localHour(ev.StartTimeUTC)
			x2 := x1 + float64(ev.DurationMin)/60.0

			g.Grid.Box(x1, y+0.3, x2, y+0.7, "F")
		}
	}
}

// }}}
// {{{ sp.DrawCaption

func (g SchedulePdf)DrawCaption() {
	title := fmt.Sprintf("Pass schedule for %s (%s), times %s", g.Forecast.Request.Locator,
		g.Forecast.Position, g.Forecast.Location)
	if g.OpHours > 0 {
		title += fmt.Sprintf("; shaded area is the best %dh window", g.OpHours)
	}
	title += "\n" + g.Caption

	g.SetTextColor(0x50, 0x70, 0xc0)
	g.MoveTo(10, 8)
	g.MultiCell(0, 4, title, "", "", false)
	g.DrawPath("D")
}

// }}}

// {{{ sp.hourRange, localHour

// hourRange is the X extent of the grid, in local clock hours.
func (g SchedulePdf)hourRange() (float64, float64) {
	min := clockHour(g.Forecast.Request.EarliestTime, 0.0)
	max := clockHour(g.Forecast.Request.LatestTime, 24.0)
	if max <= min { min,max = 0.0,24.0 }
	return min,max
}

func (g SchedulePdf)localHour(t time.Time) float64 {
	lt := t.In(g.Forecast.Location)
	return float64(lt.Hour()) + float64(lt.Minute())/60.0
}

func clockHour(s string, dflt float64) float64 {
	t,err := time.Parse("15:04", s)
	if err != nil { return dflt }
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// }}}

// {{{ WriteScheduleGrid

func WriteScheduleGrid(output io.Writer, fc *planner.Forecast, opHours int) error {
	g := SchedulePdf{Forecast: fc, OpHours: opHours}
	g.Init()

	g.DrawWindows()
	g.DrawFrames()
	g.DrawPasses()
	g.DrawCaption()

	return g.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
