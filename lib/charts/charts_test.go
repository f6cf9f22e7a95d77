package charts

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/theatre"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

var heights = []float64{150, 152, 155, 158, 160, 161, 163, 165, 168, 170}

func newTheatre(t *testing.T) *theatre.Theatre {
	t.Helper()
	th := theatre.New(timeline.NewManualScheduler(time.Unix(0, 0)), document.DefaultPresentation())
	p, _ := Preset("classic")
	Register(th, p)
	return th
}

func TestBuildHistogram(t *testing.T) {
	th := newTheatre(t)
	classes, err := BuildHistogram(th, heights, HistogramOptions{Classes: 4, Title: "Heights", XLabel: "cm"})
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 4 {
		t.Fatalf("classes: %d", len(classes))
	}

	m := th.Chart.Layers
	if n := len(m.GetLayersByType(TypeBar)); n != 4 {
		t.Errorf("bars: %d", n)
	}
	if n := len(m.GetLayersByType(TypePoint)); n != 4 {
		t.Errorf("points: %d", n)
	}
	if m.FindLayer("polygon") == nil || m.FindParent("bar-3").ID != "bars" {
		t.Error("tree shape")
	}

	tl := th.Chart.Timeline
	a0, _ := tl.Animation("bar-0")
	a1, _ := tl.Animation("bar-1")
	if a1.StartTime-a0.StartTime != 150 {
		t.Errorf("stagger = %f", a1.StartTime-a0.StartTime)
	}
	poly, _ := tl.Animation("polygon")
	if poly.End() != tl.Duration() {
		t.Errorf("the polygon should finish last: %f vs %f", poly.End(), tl.Duration())
	}
	if th.Presentation.Axis.XMin != 150 || th.Presentation.Axis.XMax != 170 || th.Presentation.Axis.Step != 5 {
		t.Errorf("axis: %+v", th.Presentation.Axis)
	}

	// rebuilding replaces the scene rather than adding to it
	if _, err := BuildHistogram(th, heights, HistogramOptions{Classes: 2, HidePoints: true}); err != nil {
		t.Fatal(err)
	}
	if n := len(m.GetLayersByType(TypeBar)); n != 2 {
		t.Errorf("bars after rebuild: %d", n)
	}
	if len(m.GetLayersByType(TypePoint)) != 0 || m.FindLayer("polygon") == nil {
		t.Error("HidePoints should keep the polygon")
	}

	if _, err := BuildHistogram(th, nil, HistogramOptions{}); err == nil {
		t.Error("empty sample accepted")
	}
}

func TestRenderProgression(t *testing.T) {
	th := newTheatre(t)
	if _, err := BuildHistogram(th, heights, HistogramOptions{Classes: 4}); err != nil {
		t.Fatal(err)
	}

	count := func(ms float64) int {
		th.SeekTo(ms)
		return th.Render(canvas.NewRecorder(960, 540))
	}
	// grid and both axes start at once
	if n := count(0); n != 3 {
		t.Errorf("at 0: %d", n)
	}
	// first bar has started, its count label has not
	if n := count(700); n != 4 {
		t.Errorf("at 700: %d", n)
	}
	all := len(th.Chart.Layers.GetRenderableLayers())
	if n := count(th.Chart.Timeline.Duration()); n != all {
		t.Errorf("at the end: %d of %d", n, all)
	}
}

func TestRenderSurvivesRoundTrip(t *testing.T) {
	th := newTheatre(t)
	classes, err := BuildHistogram(th, heights, HistogramOptions{Classes: 4, Title: "Heights"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildTable(th, "freq", "table-canvas", classes, TableOptions{}); err != nil {
		t.Fatal(err)
	}
	th.SeekTo(1700)

	before := canvas.NewRecorder(960, 540)
	th.Render(before)

	b, err := document.Marshal(th.Export())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.Unmarshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := th.Restore(doc); err != nil {
		t.Fatal(err)
	}
	after := canvas.NewRecorder(960, 540)
	th.Render(after)

	if diff := cmp.Diff(before.Ops, after.Ops); diff != "" {
		t.Errorf("frame changed across save and restore (-before +after):\n%s", diff)
	}
}

func TestBuildTable(t *testing.T) {
	th := newTheatre(t)
	classes, _ := BuildHistogram(th, heights, HistogramOptions{Classes: 4})
	sc, err := BuildTable(th, "freq", "c2", classes, TableOptions{X: 10, Y: 10})
	if err != nil {
		t.Fatal(err)
	}
	if th.Table("freq") != sc || sc.CanvasID != "c2" {
		t.Error("table not registered")
	}
	cells := sc.Layers.GetLayersByType(TypeCell)
	headers := sc.Layers.GetLayersByType(TypeHeader)
	if len(headers) != 5 || len(cells) != 5*5 {
		t.Errorf("headers %d cells %d", len(headers), len(cells))
	}
	total := sc.Layers.FindLayer("cell-5-2")
	if total == nil || total.Data["text"] != "10" {
		t.Errorf("total cell: %+v", total)
	}

	sc.Timeline.SeekTo(sc.Timeline.Duration())
	rec := canvas.NewRecorder(600, 200)
	if n := th.RenderScene(sc, rec); n != 30 {
		t.Errorf("drawn %d", n)
	}
	var texts []string
	for _, op := range rec.Ops {
		if op.Name == "text" {
			texts = append(texts, op.Text)
		}
	}
	if !strings.Contains(strings.Join(texts, "|"), "150 - 155|152.5|2|0.2|2") {
		t.Errorf("first row missing from %v", texts)
	}
}

func TestRoutinesReadDecodedPayloads(t *testing.T) {
	p, ok := Preset("mono")
	if !ok {
		t.Fatal("mono preset missing")
	}
	rec := canvas.NewRecorder(100, 100)
	l := layer.New("l", "", TypeLine, map[string]any{"points": []any{0.0, 0.0, uint64(10), 10, 20.0, 0.0}})
	p.drawLine(rec, l, 1)
	if len(rec.Ops) != 2 {
		t.Fatalf("segments: %d", len(rec.Ops))
	}
	if diff := cmp.Diff([]float64{10, 10, 20, 0, 2}, rec.Ops[1].Args); diff != "" {
		t.Errorf("segment (-want +got):\n%s", diff)
	}
}

func TestPalettes(t *testing.T) {
	if diff := cmp.Diff([]string{"classic", "mono", "pastel"}, PresetNames()); diff != "" {
		t.Errorf("presets (-want +got):\n%s", diff)
	}
	if _, ok := Preset("neon"); ok {
		t.Error("unknown preset reported as found")
	}
	p, _ := Preset("classic")
	q, err := p.WithOverrides(map[string]string{"bar": "#010203"})
	if err != nil || q.Bar.R != 1 || q.Bar.A != 0xff || p.Bar == q.Bar {
		t.Errorf("override: %v %v", q.Bar, err)
	}
	if _, err := p.WithOverrides(map[string]string{"glow": "#010203"}); err == nil {
		t.Error("unknown role accepted")
	}
	if _, err := p.WithOverrides(map[string]string{"bar": "blue"}); err == nil {
		t.Error("bad colour accepted")
	}
}
