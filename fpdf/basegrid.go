package fpdf

import (
	"fmt"
	"github.com/jung-kurt/gofpdf"
)

// Describes a grid we're going to plot over, and the location of its top-left corner in PDF space
type BaseGrid struct {
	*gofpdf.Fpdf        // Embed the thing we're writing to

	// Describe the portion of PDF page space the grid will be drawn over (labels go outside of this)
	OffsetU     float64 // where the origin should be, in PDF coords
	OffsetV     float64 // where the origin should be, in PDF coords
	W,H         float64 // width and height of the grid, in PDF units (should be mm)

	// Control how (x,y) vals are mapped into (u,v) vals
	InvertX,InvertY     bool    // A grid's origin defaults to bottom-left; these bools flip that
	MinX,MinY,MaxX,MaxY float64 // the range of values that should be scaled onto the grid.
	Clip                bool    // whether to clip boxes to fit inside grid

	// How to draw gridlines
	XGridlineEvery, YGridlineEvery float64 // From Min[XY] to Max[XY]
	XTickFmt,       YTickFmt       string  // Will be passed a float64 via fmt.Sprintf; blank==none
	YTickLabels                    []string // When set, row labels win over YTickFmt
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)U(x float64) (float64, bool) {
	// Scale the X value to [0.0, 1.0], then map into PDF coords
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	if bg.InvertX { xRatio = 1.0 - xRatio }

	u := bg.OffsetU + (xRatio * bg.W)
	outOfBounds := xRatio<0 || xRatio>1

	return u,outOfBounds
}

// the bool is whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	if bg.InvertY { yRatio = 1.0 - yRatio }

	v := bg.OffsetV + (bg.H - (yRatio * bg.H))
	outOfBounds := yRatio<0 || yRatio>1

	return v,outOfBounds
}

// the bool is whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)UV(x,y float64) (float64, float64, bool) {
	u,oobU := bg.U(x)
	v,oobV := bg.V(y)

	return u, v, (oobU || oobV)
}

// }}}
// {{{ bg.MoveTo, LineTo, Box

// We submit coords in gridspace (e.g. x,y), and the grid transforms them into PDFspace.
func (bg BaseGrid)MoveTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.MoveTo(u,v)
	return oob
}

func (bg BaseGrid)LineTo(x,y float64) bool {
	u,v,oob := bg.UV(x,y)
	bg.Fpdf.LineTo(u,v)
	return oob
}

// Box fills the axis-aligned rectangle between the two gridspace corners,
// using the current fill color. Out-of-range corners are clamped to the grid
// when Clip is set, dropped otherwise.
func (bg BaseGrid)Box(x1,y1,x2,y2 float64, style string) {
	u1,v1,oob1 := bg.UV(x1,y1)
	u2,v2,oob2 := bg.UV(x2,y2)

	if oob1 || oob2 {
		if !bg.Clip { return }
		u1,v1 = bg.clampUV(u1,v1)
		u2,v2 = bg.clampUV(u2,v2)
	}

	if u2 < u1 { u1,u2 = u2,u1 }
	if v2 < v1 { v1,v2 = v2,v1 }

	bg.Rect(u1, v1, u2-u1, v2-v1, style)
}

func (bg BaseGrid)clampUV(u,v float64) (float64, float64) {
	if u < bg.OffsetU        { u = bg.OffsetU }
	if u > bg.OffsetU + bg.W { u = bg.OffsetU + bg.W }
	if v < bg.OffsetV        { v = bg.OffsetV }
	if v > bg.OffsetV + bg.H { v = bg.OffsetV + bg.H }
	return u,v
}

// }}}
// {{{ bg.MoveBy

func (bg BaseGrid)MoveBy(x,y float64) {
	currX,currY := bg.GetXY()
	bg.Fpdf.MoveTo(currX+x, currY+y)
}

// }}}

// {{{ bg.DrawGridlines

func (bg BaseGrid)DrawGridlines() {
	bg.SetFont("Arial", "", 8)

	bg.SetLineWidth(0.03)
	bg.SetDrawColor(0xe0, 0xe0, 0xe0)
	for x := bg.MinX; x <= bg.MaxX; x += bg.XGridlineEvery {
		bg.MoveTo(x, bg.MinY)
		bg.LineTo(x, bg.MaxY)

		if bg.XTickFmt != "" {
			bg.MoveTo(x, bg.MinY)
			bg.MoveBy(-4, 2)  // Offset in MM
			bg.SetTextColor(0,0,0)
			bg.Cell(30, float64(4), fmt.Sprintf(bg.XTickFmt, x))
			bg.DrawPath("D")
		}
	}

	for y := bg.MinY; y <= bg.MaxY; y += bg.YGridlineEvery {
		bg.MoveTo(bg.MinX, y)
		bg.LineTo(bg.MaxX, y)
	}
	bg.DrawPath("D")

	// Row labels sit against the left edge, centered on the row.
	for i,label := range bg.YTickLabels {
		bg.MoveTo(bg.MinX, float64(i)+0.5)
		bg.MoveBy(-24, -2)
		bg.SetTextColor(0,0,0)
		bg.CellFormat(22, 4, label, "", 0, "R", false, 0, "")
		bg.DrawPath("D")
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
