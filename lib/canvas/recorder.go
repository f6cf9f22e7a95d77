package canvas

import (
	"image/color"
	"math"
)

// Op is one recorded drawing call together with the state it ran under.
// Coordinates in Args are user space; OffsetX/Y and ScaleX/Y describe the
// transform, Clip is in device space.
type Op struct {
	Name    string
	Args    []float64
	Text    string
	Color   color.Color
	Alpha   float64
	OffsetX float64
	OffsetY float64
	ScaleX  float64
	ScaleY  float64
	Clip    Rect
}

type recState struct {
	alpha          float64
	tx, ty, sx, sy float64
	clip           Rect
}

// Recorder is a Surface that draws nothing and remembers every fill. It
// supports translation and scale, which is all the effects use.
type Recorder struct {
	Ops []Op

	width, height float64
	state         recState
	stack         []recState
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		state: recState{
			alpha: 1,
			sx:    1,
			sy:    1,
			clip:  Rect{W: width, H: height},
		},
	}
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) Depth() int {
	return len(r.stack)
}

func (r *Recorder) Reset() {
	r.Ops = nil
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Alpha() float64 {
	return r.state.alpha
}

func (r *Recorder) SetAlpha(a float64) {
	r.state.alpha = clamp01(a)
}

func (r *Recorder) Translate(dx, dy float64) {
	r.state.tx += r.state.sx * dx
	r.state.ty += r.state.sy * dy
}

func (r *Recorder) Scale(sx, sy float64) {
	r.state.sx *= sx
	r.state.sy *= sy
}

func (r *Recorder) ClipRect(x, y, w, h float64) {
	x0 := r.state.tx + r.state.sx*x
	y0 := r.state.ty + r.state.sy*y
	x1 := r.state.tx + r.state.sx*(x+w)
	y1 := r.state.ty + r.state.sy*(y+h)
	dev := Rect{X: min(x0, x1), Y: min(y0, y1), W: math.Abs(x1 - x0), H: math.Abs(y1 - y0)}
	r.state.clip = r.state.clip.intersect(dev)
}

func (r *Recorder) record(name string, c color.Color, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{
		Name:    name,
		Args:    args,
		Text:    text,
		Color:   c,
		Alpha:   r.state.alpha,
		OffsetX: r.state.tx,
		OffsetY: r.state.ty,
		ScaleX:  r.state.sx,
		ScaleY:  r.state.sy,
		Clip:    r.state.clip,
	})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record("rect", c, "", x, y, w, h)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.record("line", c, "", x0, y0, x1, y1, width)
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.record("circle", c, "", cx, cy, radius)
}

func (r *Recorder) FillText(x, y float64, text string, c color.Color) {
	r.record("text", c, text, x, y)
}
