package charts

import (
	"image/color"

	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/theatre"
)

const (
	TypeBar    = "bar"
	TypePoint  = "point"
	TypeLine   = "line"
	TypeAxis   = "axis"
	TypeGrid   = "grid"
	TypeLabel  = "label"
	TypeCell   = "cell"
	TypeHeader = "header"
)

// Register installs the draw routines for every layer type the builders
// in this package produce.
func Register(th *theatre.Theatre, p Palette) {
	th.RegisterRoutine(TypeBar, p.drawBar)
	th.RegisterRoutine(TypePoint, p.drawPoint)
	th.RegisterRoutine(TypeLine, p.drawLine)
	th.RegisterRoutine(TypeAxis, p.drawAxis)
	th.RegisterRoutine(TypeGrid, p.drawGrid)
	th.RegisterRoutine(TypeLabel, p.drawLabel)
	th.RegisterRoutine(TypeCell, p.drawCell(p.CellFill))
	th.RegisterRoutine(TypeHeader, p.drawCell(p.HeaderFill))
}

type payload map[string]any

func data(l *layer.Layer) payload {
	return payload(l.Data)
}

func (d payload) num(key string) float64 {
	return effects.Options(d).Float(key, 0)
}

func (d payload) str(key string) string {
	return effects.Options(d).String(key, "")
}

func (d payload) floats(key string) []float64 {
	switch v := d[key].(type) {
	case []float64:
		return v
	case []any:
		out := make([]float64, 0, len(v))
		for _, e := range v {
			if f, ok := effects.Number(e); ok {
				out = append(out, f)
			}
		}
		return out
	}
	return nil
}

func (d payload) list(key string) []payload {
	v, _ := d[key].([]any)
	out := make([]payload, 0, len(v))
	for _, e := range v {
		if m, ok := e.(map[string]any); ok {
			out = append(out, payload(m))
		}
	}
	return out
}

func outline(s canvas.Surface, x, y, w, h, width float64, c color.Color) {
	s.StrokeLine(x, y, x+w, y, width, c)
	s.StrokeLine(x+w, y, x+w, y+h, width, c)
	s.StrokeLine(x+w, y+h, x, y+h, width, c)
	s.StrokeLine(x, y+h, x, y, width, c)
}

func (p Palette) drawBar(s canvas.Surface, l *layer.Layer, _ float64) {
	d := data(l)
	x, y, w, h := d.num("x"), d.num("y"), d.num("w"), d.num("h")
	s.FillRect(x, y, w, h, p.Bar)
	outline(s, x, y, w, h, 1, p.BarEdge)
}

func (p Palette) drawPoint(s canvas.Surface, l *layer.Layer, _ float64) {
	d := data(l)
	r := d.num("r")
	if r == 0 {
		r = 4
	}
	s.FillCircle(d.num("x"), d.num("y"), r, p.Point)
}

// drawLine strokes a polyline stored as a flat x0,y0,x1,y1,... list.
func (p Palette) drawLine(s canvas.Surface, l *layer.Layer, _ float64) {
	pts := data(l).floats("points")
	for i := 0; i+3 < len(pts); i += 2 {
		s.StrokeLine(pts[i], pts[i+1], pts[i+2], pts[i+3], 2, p.Line)
	}
}

func (p Palette) drawAxis(s canvas.Surface, l *layer.Layer, _ float64) {
	d := data(l)
	x0, y0, x1, y1 := d.num("x0"), d.num("y0"), d.num("x1"), d.num("y1")
	s.StrokeLine(x0, y0, x1, y1, 1.5, p.Axis)

	vertical := d.str("orient") == "y"
	for _, tick := range d.list("ticks") {
		pos := tick.num("pos")
		label := tick.str("label")
		if vertical {
			s.StrokeLine(x0-5, pos, x0, pos, 1, p.Axis)
			s.FillText(x0-8-float64(7*len(label)), pos+4, label, p.Text)
		} else {
			s.StrokeLine(pos, y0, pos, y0+5, 1, p.Axis)
			s.FillText(pos-float64(7*len(label))/2, y0+18, label, p.Text)
		}
	}
	if title := d.str("title"); title != "" {
		if vertical {
			s.FillText(x0-8, y1-10, title, p.Text)
		} else {
			s.FillText(x1-float64(7*len(title)), y0+36, title, p.Text)
		}
	}
}

func (p Palette) drawGrid(s canvas.Surface, l *layer.Layer, _ float64) {
	d := data(l)
	x, w := d.num("x"), d.num("w")
	for _, y := range d.floats("lines") {
		s.StrokeLine(x, y, x+w, y, 1, p.Grid)
	}
}

func (p Palette) drawLabel(s canvas.Surface, l *layer.Layer, _ float64) {
	d := data(l)
	s.FillText(d.num("x"), d.num("y"), d.str("text"), p.Text)
}

func (p Palette) drawCell(fill color.Color) theatre.DrawRoutine {
	return func(s canvas.Surface, l *layer.Layer, _ float64) {
		d := data(l)
		x, y, w, h := d.num("x"), d.num("y"), d.num("w"), d.num("h")
		s.FillRect(x, y, w, h, fill)
		outline(s, x, y, w, h, 1, p.CellEdge)
		s.FillText(x+6, y+h/2+4, d.str("text"), p.Text)
	}
}
