package effects

import (
	"math"
	"slices"

	"github.com/tallyframe/tallyframe/lib/canvas"
)

const (
	Auto    = "auto"
	Fade    = "fade"
	FadeOut = "fade-out"
	Slide   = "slide"
	Scale   = "scale"
	Draw    = "draw"
	Blink   = "blink"
)

// Effect wraps inner with a visual transform and calls it exactly once.
type Effect func(s canvas.Surface, progress float64, opts Options, inner func())

var registry = map[string]Effect{
	Fade:    fade,
	FadeOut: fadeOut,
	Slide:   slide,
	Scale:   scale,
	Draw:    drawReveal,
	Blink:   blink,
}

// Register adds or replaces a named effect. Not safe to call while
// frames are being rendered.
func Register(name string, fx Effect) {
	registry[name] = fx
}

func Lookup(name string) (Effect, bool) {
	fx, ok := registry[name]
	return fx, ok
}

// Apply runs inner inside the effects named by spec. The first name is the
// outermost wrapper. Unknown names are skipped, so inner still runs once.
func Apply(s canvas.Surface, spec Spec, progress float64, opts Options, inner func()) {
	draw := inner
	for _, name := range slices.Backward(spec) {
		fx, ok := registry[name]
		if !ok {
			continue
		}
		next := draw
		o := opts.For(name)
		draw = func() {
			fx(s, progress, o, next)
		}
	}
	draw()
}

func fade(s canvas.Surface, p float64, _ Options, inner func()) {
	s.Save()
	defer s.Restore()
	s.SetAlpha(p)
	inner()
}

func fadeOut(s canvas.Surface, p float64, _ Options, inner func()) {
	s.Save()
	defer s.Restore()
	s.SetAlpha(1 - p)
	inner()
}

func slide(s canvas.Surface, p float64, opts Options, inner func()) {
	distance := opts.Float("distance", 30)
	offset := distance * (1 - easeOutCubic(p))

	var dx, dy float64
	switch opts.String("direction", "up") {
	case "down":
		dy = -offset
	case "left":
		dx = offset
	case "right":
		dx = -offset
	default:
		dy = offset
	}

	s.Save()
	defer s.Restore()
	s.Translate(dx, dy)
	s.SetAlpha(p)
	inner()
}

func scale(s canvas.Surface, p float64, opts Options, inner func()) {
	from := opts.Float("from", 0)
	to := opts.Float("to", 1)
	cx := opts.Float("centerX", 0)
	cy := opts.Float("centerY", 0)
	k := from + (to-from)*easeOutBack(p)

	s.Save()
	defer s.Restore()
	s.Translate(cx, cy)
	s.Scale(k, k)
	s.Translate(-cx, -cy)
	s.SetAlpha(p)
	inner()
}

// drawReveal clips to a rectangle that grows with progress.
func drawReveal(s canvas.Surface, p float64, opts Options, inner func()) {
	sw, sh := s.Size()
	x := opts.Float("x", 0)
	y := opts.Float("y", 0)
	w := opts.Float("width", sw-x)
	h := opts.Float("height", sh-y)

	s.Save()
	defer s.Restore()
	switch opts.String("direction", "right") {
	case "left":
		s.ClipRect(x+w*(1-p), y, w*p, h)
	case "down":
		s.ClipRect(x, y, w, h*p)
	case "up":
		s.ClipRect(x, y+h*(1-p), w, h*p)
	default:
		s.ClipRect(x, y, w*p, h)
	}
	inner()
}

// BlinkAlpha is the opacity blink applies at progress p.
func BlinkAlpha(p float64, opts Options) float64 {
	freq := opts.Float("frequency", 3)
	lo := opts.Float("minAlpha", 0.2)
	hi := opts.Float("maxAlpha", 1)
	fadeInEnd := opts.Float("fadeInEnd", 0.1)
	fadeOutStart := opts.Float("fadeOutStart", 0.9)

	if p >= 1 {
		return hi
	}
	osc := lo + (hi-lo)*(0.5+0.5*math.Cos(2*math.Pi*freq*p))
	switch {
	case fadeInEnd > 0 && p < fadeInEnd:
		w := p / fadeInEnd
		return hi + (osc-hi)*w
	case fadeOutStart < 1 && p > fadeOutStart:
		w := (1 - p) / (1 - fadeOutStart)
		return hi + (osc-hi)*w
	}
	return osc
}

func blink(s canvas.Surface, p float64, opts Options, inner func()) {
	s.Save()
	defer s.Restore()
	s.SetAlpha(BlinkAlpha(p, opts))
	inner()
}

var lineLike = map[string]bool{
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"curve":    true,
	"axis":     true,
	"grid":     true,
}

// Resolve replaces an "auto" spec with a default chosen from the layer
// type: line-like layers are revealed with draw, everything else fades.
func Resolve(spec Spec, layerType string) Spec {
	if !spec.IsAuto() {
		return spec
	}
	if lineLike[layerType] {
		return Single(Draw)
	}
	return Single(Fade)
}
