package raster

import (
	"iter"
)

// Run is a maximal horizontal span of one color in a row: [XStart, XEnd).
type Run struct {
	Y      int
	XStart int
	XEnd   int
	Color  byte
}

func (r Run) Len() int {
	return r.XEnd - r.XStart
}

// Rect is an axis aligned rectangle with both corners inclusive, which is
// how the device takes its draw coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Paint is a rectangle with the color of the run it came from.
type Paint struct {
	Color byte
	Rect
}

// Scale maps r to device coordinates: every pixel becomes a scale x scale
// block and the result is shifted by (ox, oy).
func (r Run) Scale(scale, ox, oy int) Rect {
	return Rect{
		X1: r.XStart*scale + ox,
		Y1: r.Y*scale + oy,
		X2: r.XEnd*scale - 1 + ox,
		Y2: (r.Y+1)*scale - 1 + oy,
	}
}

// Row is one line of a grid.
type Row struct {
	Y   int
	Pix []byte
}

// Runs splits the row left to right into maximal constant color runs. No two
// adjacent runs share a color and together they cover [0, len(Pix)).
func (row Row) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		if len(row.Pix) == 0 {
			return
		}

		start := 0
		color := row.Pix[0]
		for x := 1; x < len(row.Pix); x++ {
			if row.Pix[x] == color {
				continue
			}
			if !yield(Run{Y: row.Y, XStart: start, XEnd: x, Color: color}) {
				return
			}
			start = x
			color = row.Pix[x]
		}

		yield(Run{Y: row.Y, XStart: start, XEnd: len(row.Pix), Color: color})
	}
}

// Rows yields a copy of every row top to bottom. The sequence can be ranged
// over again.
func (g *Grid) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		if g.width == 0 {
			return
		}
		for y := 0; y < g.height; y++ {
			row := Row{Y: y, Pix: append([]byte(nil), g.pix[y*g.width:(y+1)*g.width]...)}
			if !yield(y, row) {
				return
			}
		}
	}
}

// Runs yields the runs of every row in order.
func (g *Grid) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for _, row := range g.Rows() {
			for run := range row.Runs() {
				if !yield(run) {
					return
				}
			}
		}
	}
}

// Paints yields every run scaled and offset into device coordinates.
func (g *Grid) Paints(scale, ox, oy int) iter.Seq[Paint] {
	return func(yield func(Paint) bool) {
		for run := range g.Runs() {
			if !yield(Paint{Color: run.Color, Rect: run.Scale(scale, ox, oy)}) {
				return
			}
		}
	}
}

// Rects yields the rectangles of all runs whose color differs from bg.
// Background runs are left to the cleared screen.
func (g *Grid) Rects(scale, ox, oy int, bg byte) iter.Seq[Rect] {
	return func(yield func(Rect) bool) {
		for p := range g.Paints(scale, ox, oy) {
			if p.Color == bg {
				continue
			}
			if !yield(p.Rect) {
				return
			}
		}
	}
}
