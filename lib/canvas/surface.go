package canvas

import "image/color"

// Surface is the drawing context handed to effects and draw routines.
// It follows the 2D canvas model: a stack of (alpha, transform, clip)
// states where Save pushes and Restore pops.
type Surface interface {
	Size() (width, height float64)

	Save()
	Restore()

	Alpha() float64
	// SetAlpha sets the global opacity used by subsequent fills.
	SetAlpha(a float64)
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	// ClipRect intersects the current clip with a rectangle given in user
	// space.
	ClipRect(x, y, w, h float64)

	FillRect(x, y, w, h float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillText(x, y float64, text string, c color.Color)
}

// Rect is an axis-aligned rectangle in device space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func clamp01(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
