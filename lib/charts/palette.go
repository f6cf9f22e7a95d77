package charts

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"github.com/tallyframe/tallyframe/lib/utils"
)

type Palette struct {
	Background color.RGBA
	Bar        color.RGBA
	BarEdge    color.RGBA
	Point      color.RGBA
	Line       color.RGBA
	Axis       color.RGBA
	Grid       color.RGBA
	Text       color.RGBA
	CellFill   color.RGBA
	HeaderFill color.RGBA
	CellEdge   color.RGBA
}

func mustColour(s string) color.RGBA {
	c, err := utils.ColourParse(s)
	if err != nil {
		panic(err)
	}
	return c
}

var presets = map[string]Palette{
	"classic": {
		Background: mustColour("#ffffff"),
		Bar:        mustColour("#4477aa"),
		BarEdge:    mustColour("#223b55"),
		Point:      mustColour("#cc3311"),
		Line:       mustColour("#ee7733"),
		Axis:       mustColour("#222222"),
		Grid:       mustColour("#dddddd"),
		Text:       mustColour("#111111"),
		CellFill:   mustColour("#f7f7f7"),
		HeaderFill: mustColour("#d6e2ef"),
		CellEdge:   mustColour("#999999"),
	},
	"pastel": {
		Background: mustColour("#fdfcf7"),
		Bar:        mustColour("#a6cee3"),
		BarEdge:    mustColour("#6a9bb5"),
		Point:      mustColour("#fb9a99"),
		Line:       mustColour("#fdbf6f"),
		Axis:       mustColour("#555555"),
		Grid:       mustColour("#ece9df"),
		Text:       mustColour("#333333"),
		CellFill:   mustColour("#ffffff"),
		HeaderFill: mustColour("#e5f2e0"),
		CellEdge:   mustColour("#bbbbbb"),
	},
	"mono": {
		Background: mustColour("#ffffff"),
		Bar:        mustColour("#888888"),
		BarEdge:    mustColour("#000000"),
		Point:      mustColour("#000000"),
		Line:       mustColour("#444444"),
		Axis:       mustColour("#000000"),
		Grid:       mustColour("#e0e0e0"),
		Text:       mustColour("#000000"),
		CellFill:   mustColour("#ffffff"),
		HeaderFill: mustColour("#dddddd"),
		CellEdge:   mustColour("#000000"),
	},
}

func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Preset returns the named palette. Unknown names fall back to classic
// with ok set to false.
func Preset(name string) (Palette, bool) {
	p, ok := presets[name]
	if !ok {
		return presets["classic"], false
	}
	return p, true
}

// WithOverrides replaces palette entries by role name (bar, point, line,
// axis, grid, text, background, bar_edge, cell_fill, header_fill,
// cell_edge) with #rrggbb[aa] colours.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	for role, s := range overrides {
		c, err := utils.ColourParse(s)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", role, err)
		}
		switch role {
		case "background":
			p.Background = c
		case "bar":
			p.Bar = c
		case "bar_edge":
			p.BarEdge = c
		case "point":
			p.Point = c
		case "line":
			p.Line = c
		case "axis":
			p.Axis = c
		case "grid":
			p.Grid = c
		case "text":
			p.Text = c
		case "cell_fill":
			p.CellFill = c
		case "header_fill":
			p.HeaderFill = c
		case "cell_edge":
			p.CellEdge = c
		default:
			return p, fmt.Errorf("unknown palette role %q", role)
		}
	}
	return p, nil
}
