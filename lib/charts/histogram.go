package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/stats"
	"github.com/tallyframe/tallyframe/lib/theatre"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

const (
	marginLeft   = 60
	marginRight  = 30
	marginTop    = 50
	marginBottom = 60
)

type HistogramOptions struct {
	// Classes is the number of classes; 0 picks one with Sturges' rule.
	Classes int
	Title   string
	XLabel  string
	YLabel  string

	// Stagger is the delay between consecutive bars, Duration the length
	// of each bar's animation, both in milliseconds.
	Stagger  float64
	Duration float64

	// BarEffect overrides the default grow-from-the-axis reveal.
	BarEffect effects.Spec

	HidePoints  bool
	HidePolygon bool
}

func (o HistogramOptions) withDefaults() HistogramOptions {
	if o.Stagger <= 0 {
		o.Stagger = 150
	}
	if o.Duration <= 0 {
		o.Duration = 600
	}
	if o.YLabel == "" {
		o.YLabel = "f"
	}
	return o
}

type plot struct {
	x, y, w, h float64
}

func (p plot) bottom() float64 {
	return p.y + p.h
}

// BuildHistogram replaces the chart scene of th with a histogram of values:
// grid, axes, one bar per class with its count, class midpoints and the
// frequency polygon through them, animated one after the other.
func BuildHistogram(th *theatre.Theatre, values []float64, opts HistogramOptions) ([]stats.Class, error) {
	opts = opts.withDefaults()
	bounds, err := stats.Classes(values, opts.Classes)
	if err != nil {
		return nil, fmt.Errorf("could not build histogram: %w", err)
	}
	classes := stats.Tally(values, bounds)

	sc := th.Chart
	sc.Timeline.ClearAnimations()
	sc.Layers.ClearAll()

	width, height := float64(th.Presentation.Width), float64(th.Presentation.Height)
	area := plot{
		x: marginLeft,
		y: marginTop,
		w: width - marginLeft - marginRight,
		h: height - marginTop - marginBottom,
	}
	yMax := niceCeil(float64(stats.MaxCount(classes)))
	yStep := niceStep(yMax)
	barW := area.w / float64(len(classes))
	scaleY := area.h / yMax

	b := &builder{scene: sc}

	gridLines := []any{}
	for v := yStep; v <= yMax+1e-9; v += yStep {
		gridLines = append(gridLines, area.bottom()-v*scaleY)
	}
	b.group("background", "Background")
	b.add("grid", "Grid", TypeGrid, "background", map[string]any{
		"x": area.x, "w": area.w, "lines": gridLines,
	}, anim(0, 400, effects.Single(effects.Fade), nil))

	b.group("axes", "Axes")
	xTicks := []any{}
	for i, c := range classes {
		xTicks = append(xTicks, map[string]any{"pos": area.x + float64(i)*barW, "label": formatNumber(c.Lower)})
	}
	xTicks = append(xTicks, map[string]any{"pos": area.x + area.w, "label": formatNumber(classes[len(classes)-1].Upper)})
	b.add("x-axis", opts.XLabel, TypeAxis, "axes", map[string]any{
		"x0": area.x, "y0": area.bottom(), "x1": area.x + area.w, "y1": area.bottom(),
		"orient": "x", "ticks": xTicks, "title": opts.XLabel,
	}, anim(0, 600, effects.Single(effects.Draw), nil))

	yTicks := []any{}
	for v := 0.0; v <= yMax+1e-9; v += yStep {
		yTicks = append(yTicks, map[string]any{"pos": area.bottom() - v*scaleY, "label": formatNumber(v)})
	}
	b.add("y-axis", opts.YLabel, TypeAxis, "axes", map[string]any{
		"x0": area.x, "y0": area.bottom(), "x1": area.x, "y1": area.y,
		"orient": "y", "ticks": yTicks, "title": opts.YLabel,
	}, anim(0, 600, effects.Single(effects.Draw), effects.Options{"direction": "up"}))

	if opts.Title != "" {
		b.add("title", opts.Title, TypeLabel, "", map[string]any{
			"x": area.x, "y": marginTop / 2.0, "text": opts.Title,
		}, anim(0, 500, effects.Single(effects.Slide), effects.Options{"direction": "down", "distance": 15}))
	}

	start := 600.0
	b.group("bars", "Bars")
	b.group("counts", "Counts")
	for i, c := range classes {
		bx := area.x + float64(i)*barW
		bh := float64(c.Count) * scaleY
		by := area.bottom() - bh
		t0 := start + float64(i)*opts.Stagger

		fx, fxOpts := opts.BarEffect, effects.Options(nil)
		if len(fx) == 0 {
			fx = effects.Single(effects.Draw)
			fxOpts = effects.Options{"x": bx, "y": by, "width": barW, "height": bh, "direction": "up"}
		}
		b.add(fmt.Sprintf("bar-%d", i), classLabel(c), TypeBar, "bars", map[string]any{
			"x": bx, "y": by, "w": barW, "h": bh,
			"count": c.Count, "lower": c.Lower, "upper": c.Upper,
		}, anim(t0, opts.Duration, fx, fxOpts))

		b.add(fmt.Sprintf("count-%d", i), "", TypeLabel, "counts", map[string]any{
			"x": bx + barW/2 - 3.5*float64(len(strconv.Itoa(c.Count))), "y": by - 6,
			"text": strconv.Itoa(c.Count),
		}, anim(t0+opts.Duration/2, opts.Duration/2, effects.Single(effects.Fade), nil))
	}
	start += float64(len(classes)-1)*opts.Stagger + opts.Duration

	points := []any{}
	if !opts.HidePoints || !opts.HidePolygon {
		b.group("points", "Midpoints")
		for i, c := range classes {
			px := area.x + (float64(i)+0.5)*barW
			py := area.bottom() - float64(c.Count)*scaleY
			points = append(points, px, py)
			if opts.HidePoints {
				continue
			}
			b.add(fmt.Sprintf("point-%d", i), formatNumber(c.Midpoint), TypePoint, "points", map[string]any{
				"x": px, "y": py, "r": 4.0, "midpoint": c.Midpoint,
			}, anim(start+float64(i)*opts.Stagger/2, 400, effects.Single(effects.Scale),
				effects.Options{"centerX": px, "centerY": py}))
		}
		start += float64(len(classes))*opts.Stagger/2 + 400
	}

	if !opts.HidePolygon {
		// close the polygon on the axis half a class beyond the outer bars
		poly := append([]any{area.x - barW/2, area.bottom()}, points...)
		poly = append(poly, area.x+area.w+barW/2, area.bottom())
		b.add("polygon", "Frequency polygon", TypeLine, "", map[string]any{
			"points": poly,
		}, anim(start, 1200, effects.Single(effects.Auto), nil))
	}

	th.Presentation.Axis.XLabel = opts.XLabel
	th.Presentation.Axis.YLabel = opts.YLabel
	th.Presentation.Axis.XMin = classes[0].Lower
	th.Presentation.Axis.XMax = classes[len(classes)-1].Upper
	th.Presentation.Axis.YMin = 0
	th.Presentation.Axis.YMax = yMax
	th.Presentation.Axis.Step = classes[0].Upper - classes[0].Lower

	if b.err != nil {
		return nil, b.err
	}
	return classes, nil
}

type builder struct {
	scene *theatre.Scene
	err   error
}

func (b *builder) group(id string, name string) {
	if b.err != nil {
		return
	}
	if !b.scene.Layers.AddLayer(layer.NewGroup(id, name), "") {
		b.err = fmt.Errorf("could not add group %q", id)
	}
}

func (b *builder) add(id, name, typ, parent string, payload map[string]any, a timeline.Animation) {
	if b.err != nil {
		return
	}
	if !b.scene.Layers.AddLayer(layer.New(id, name, typ, payload), parent) {
		b.err = fmt.Errorf("could not add layer %q under %q", id, parent)
		return
	}
	a.LayerID = id
	b.scene.Timeline.AddAnimation(a)
}

func anim(start, duration float64, fx effects.Spec, opts effects.Options) timeline.Animation {
	return timeline.Animation{
		StartTime:     start,
		Duration:      duration,
		Effect:        fx,
		EffectOptions: opts,
		Easing:        effects.EasingLinear,
	}
}

func classLabel(c stats.Class) string {
	return formatNumber(c.Lower) + " - " + formatNumber(c.Upper)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// niceCeil rounds small counts up to an integer and larger ones up to 1, 2
// or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	if v <= 10 {
		return math.Ceil(v)
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

func niceStep(yMax float64) float64 {
	if yMax <= 10 {
		return 1
	}
	return niceCeil(yMax / 5)
}
