package charts

import (
	"fmt"
	"strconv"

	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/stats"
	"github.com/tallyframe/tallyframe/lib/theatre"
)

type TableOptions struct {
	X, Y       float64
	CellWidth  float64
	CellHeight float64
	// RowDelay is the time between rows appearing, in milliseconds.
	RowDelay float64
}

func (o TableOptions) withDefaults() TableOptions {
	if o.CellWidth <= 0 {
		o.CellWidth = 110
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 28
	}
	if o.RowDelay <= 0 {
		o.RowDelay = 200
	}
	return o
}

var tableColumns = []string{"Class", "Midpoint", "f", "Relative f", "Cumulative f"}

// BuildTable adds a frequency distribution table scene to th, one row per
// class plus a header and a total row. Rows slide in one after the other.
func BuildTable(th *theatre.Theatre, id string, canvasID string, classes []stats.Class, opts TableOptions) (*theatre.Scene, error) {
	opts = opts.withDefaults()
	sc := th.AddTable(id, canvasID)
	b := &builder{scene: sc}

	rows := [][]string{tableColumns}
	total := 0
	for _, c := range classes {
		total += c.Count
		rows = append(rows, []string{
			classLabel(c),
			formatNumber(c.Midpoint),
			strconv.Itoa(c.Count),
			formatNumber(c.Relative),
			strconv.Itoa(c.Cumulative),
		})
	}
	rows = append(rows, []string{"Total", "", strconv.Itoa(total), "1", ""})

	for r, row := range rows {
		rowID := fmt.Sprintf("row-%d", r)
		b.group(rowID, "")
		typ := TypeCell
		if r == 0 {
			typ = TypeHeader
		}
		y := opts.Y + float64(r)*opts.CellHeight
		for c, text := range row {
			b.add(fmt.Sprintf("cell-%d-%d", r, c), text, typ, rowID, map[string]any{
				"x":    opts.X + float64(c)*opts.CellWidth,
				"y":    y,
				"w":    opts.CellWidth,
				"h":    opts.CellHeight,
				"text": text,
			}, anim(float64(r)*opts.RowDelay, opts.RowDelay*2, effects.Spec{effects.Fade, effects.Slide},
				effects.Options{effects.Slide: map[string]any{"direction": "left", "distance": 20}}))
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return sc, nil
}
