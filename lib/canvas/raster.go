package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type rasterState struct {
	alpha     float64
	transform mgl64.Mat3
	clip      Rect
}

// Raster is a Surface backed by an *image.RGBA. Paths are filled with the
// x/image vector rasterizer; the transform is a homogeneous 2D matrix.
type Raster struct {
	img   *image.RGBA
	state rasterState
	stack []rasterState
	z     vector.Rasterizer
	face  font.Face
}

func NewRaster(width, height int) *Raster {
	return NewRasterFor(image.NewRGBA(image.Rect(0, 0, width, height)))
}

func NewRasterFor(img *image.RGBA) *Raster {
	b := img.Bounds()
	return &Raster{
		img: img,
		state: rasterState{
			alpha:     1,
			transform: mgl64.Ident3(),
			clip:      Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())},
		},
		face: basicfont.Face7x13,
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear fills the whole image with c, ignoring state.
func (r *Raster) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) Alpha() float64 {
	return r.state.alpha
}

func (r *Raster) SetAlpha(a float64) {
	r.state.alpha = clamp01(a)
}

func (r *Raster) Translate(dx, dy float64) {
	r.state.transform = r.state.transform.Mul3(mgl64.Translate2D(dx, dy))
}

func (r *Raster) Scale(sx, sy float64) {
	r.state.transform = r.state.transform.Mul3(mgl64.Scale2D(sx, sy))
}

func (r *Raster) ClipRect(x, y, w, h float64) {
	x0, y0 := r.apply(x, y)
	x1, y1 := r.apply(x+w, y+h)
	dev := Rect{X: min(x0, x1), Y: min(y0, y1), W: math.Abs(x1 - x0), H: math.Abs(y1 - y0)}
	r.state.clip = r.state.clip.intersect(dev)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.fillPolygon(c, [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	r.fillPolygon(c, [][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	})
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	const segments = 48
	pts := make([][2]float64, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	r.fillPolygon(c, pts)
}

// FillText draws with a fixed bitmap face; only the transform's
// translation and the clip apply to glyphs.
func (r *Raster) FillText(x, y float64, text string, c color.Color) {
	clip, ok := r.clipRect()
	if !ok {
		return
	}
	dst, ok := r.img.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	px, py := r.apply(x, y)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.withAlpha(c)),
		Face: r.face,
		Dot:  fixed.P(int(math.Round(px)), int(math.Round(py))),
	}
	d.DrawString(text)
}

func (r *Raster) apply(x, y float64) (float64, float64) {
	v := r.state.transform.Mul3x1(mgl64.Vec3{x, y, 1})
	return v[0], v[1]
}

func (r *Raster) clipRect() (image.Rectangle, bool) {
	cl := r.state.clip
	rect := image.Rect(
		int(math.Floor(cl.X)), int(math.Floor(cl.Y)),
		int(math.Ceil(cl.X+cl.W)), int(math.Ceil(cl.Y+cl.H)),
	).Intersect(r.img.Bounds())
	return rect, !rect.Empty()
}

func (r *Raster) withAlpha(c color.Color) color.Color {
	cr, cg, cb, ca := c.RGBA()
	a := r.state.alpha
	return color.RGBA64{
		R: uint16(float64(cr) * a),
		G: uint16(float64(cg) * a),
		B: uint16(float64(cb) * a),
		A: uint16(float64(ca) * a),
	}
}

func (r *Raster) fillPolygon(c color.Color, pts [][2]float64) {
	if r.state.alpha <= 0 || len(pts) < 3 {
		return
	}
	clip, ok := r.clipRect()
	if !ok {
		return
	}
	// the rasterizer mask starts at clip.Min
	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	r.z.Reset(clip.Dx(), clip.Dy())
	r.z.DrawOp = draw.Over
	for i, p := range pts {
		x, y := r.apply(p[0], p[1])
		if i == 0 {
			r.z.MoveTo(float32(x-ox), float32(y-oy))
		} else {
			r.z.LineTo(float32(x-ox), float32(y-oy))
		}
	}
	r.z.ClosePath()
	r.z.Draw(r.img, clip, image.NewUniform(r.withAlpha(c)), image.Point{})
}
