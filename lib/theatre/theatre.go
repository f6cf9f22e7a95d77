package theatre

import (
	"fmt"
	"log/slog"
	"maps"
	"math"

	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/metrics"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

const (
	ChartName = "chart"

	// FeatureDrawUnanimated draws layers that have no animation at full
	// progress instead of leaving them out of the frame.
	FeatureDrawUnanimated = "drawUnanimated"
)

// DrawRoutine paints one layer. It must only touch the surface.
type DrawRoutine func(s canvas.Surface, l *layer.Layer, progress float64)

type Scene struct {
	Name     string
	CanvasID string
	Layers   *layer.Manager
	Timeline *timeline.Timeline

	metrics metrics.SceneMetrics
}

func NewScene(name string, canvasID string, sched timeline.Scheduler) *Scene {
	m := layer.NewManager()
	return &Scene{
		Name:     name,
		CanvasID: canvasID,
		Layers:   m,
		Timeline: timeline.New(sched, m),
		metrics:  metrics.NewSceneMetrics(name),
	}
}

// Theatre hosts the chart scene and any number of table scenes that share
// one frame clock and one set of draw routines.
type Theatre struct {
	Chart        *Scene
	Tables       []*Scene
	Presentation document.Presentation
	Stats        *Stats

	sched    timeline.Scheduler
	routines map[string]DrawRoutine
	listener map[string][]EventListener
}

func New(sched timeline.Scheduler, p document.Presentation) *Theatre {
	return &Theatre{
		Chart:        NewScene(ChartName, ChartName, sched),
		Presentation: p,
		Stats:        NewStats(),
		sched:        sched,
		routines:     make(map[string]DrawRoutine),
		listener:     make(map[string][]EventListener),
	}
}

func (t *Theatre) RegisterRoutine(typ string, fn DrawRoutine) {
	t.routines[typ] = fn
}

func (t *Theatre) Routine(typ string) (DrawRoutine, bool) {
	fn, ok := t.routines[typ]
	return fn, ok
}

// AddTable creates a table scene, replacing any table with the same id.
func (t *Theatre) AddTable(id string, canvasID string) *Scene {
	sc := NewScene(id, canvasID, t.sched)
	sc.Timeline.SetSpeed(t.Chart.Timeline.Speed())
	sc.Timeline.SetLoop(t.Chart.Timeline.Loop())
	for i, old := range t.Tables {
		if old.Name == id {
			t.Tables[i] = sc
			return sc
		}
	}
	t.Tables = append(t.Tables, sc)
	return sc
}

func (t *Theatre) Table(id string) *Scene {
	for _, sc := range t.Tables {
		if sc.Name == id {
			return sc
		}
	}
	return nil
}

// Scene returns the chart for ChartName and a table otherwise.
func (t *Theatre) Scene(name string) *Scene {
	if name == ChartName || name == "" {
		return t.Chart
	}
	return t.Table(name)
}

func (t *Theatre) Scenes() []*Scene {
	return append([]*Scene{t.Chart}, t.Tables...)
}

// Reset drops every table and empties the chart, keeping its playback
// settings. Listeners see it as a restore of an empty document.
func (t *Theatre) Reset() {
	t.Stop()
	t.Chart.Timeline.ClearAnimations()
	t.Chart.Layers.ClearAll()
	t.Tables = nil
	t.invoke(EventNameRestore, &EventRestore{
		Features: maps.Clone(t.Presentation.Features),
	})
}

func (t *Theatre) drawUnanimated() bool {
	return t.Presentation.Features[FeatureDrawUnanimated]
}

type drawItem struct {
	layer    *layer.Layer
	progress float64
	effect   effects.Spec
	options  effects.Options
}

// RenderScene paints the layers of sc that are due at its current time and
// returns how many were drawn. Layers are painted by type rank, not tree
// order. Hidden layers, layers under a hidden group and layers without a
// draw routine are skipped.
func (t *Theatre) RenderScene(sc *Scene, s canvas.Surface) int {
	renderable := make(map[string]bool)
	for _, l := range sc.Layers.GetRenderableLayers() {
		renderable[l.ID] = true
	}

	var items []drawItem
	for _, a := range sc.Timeline.Active() {
		if !renderable[a.Layer.ID] {
			continue
		}
		items = append(items, drawItem{
			layer:    a.Layer,
			progress: a.Progress,
			effect:   effects.Resolve(a.Animation.Effect, a.Layer.Type),
			options:  a.Animation.EffectOptions,
		})
	}
	if t.drawUnanimated() {
		for _, l := range sc.Layers.GetRenderableLayers() {
			if _, ok := sc.Timeline.Animation(l.ID); ok {
				continue
			}
			items = append(items, drawItem{layer: l, progress: 1})
		}
		sortItems(items)
	}

	drawn := 0
	for _, it := range items {
		routine, ok := t.routines[it.layer.Type]
		if !ok {
			continue
		}
		t.drawLayer(s, it, routine)
		drawn++
	}
	sc.metrics.LayersDrawn.Add(float64(drawn))
	sc.metrics.CurrentTime.Set(sc.Timeline.CurrentTime())
	sc.metrics.LayerCount.Set(float64(sc.Layers.Count()))
	return drawn
}

func (t *Theatre) drawLayer(s canvas.Surface, it drawItem, routine DrawRoutine) {
	l := it.layer
	prev, had := l.Data[layer.ProgressKey]
	l.Data[layer.ProgressKey] = it.progress
	defer func() {
		if had {
			l.Data[layer.ProgressKey] = prev
		} else {
			delete(l.Data, layer.ProgressKey)
		}
	}()

	inner := func() {
		routine(s, l, it.progress)
	}
	if len(it.effect) == 0 {
		inner()
		return
	}
	effects.Apply(s, it.effect, it.progress, it.options, inner)
}

func sortItems(items []drawItem) {
	layers := make([]*layer.Layer, len(items))
	byLayer := make(map[*layer.Layer]drawItem, len(items))
	for i, it := range items {
		layers[i] = it.layer
		byLayer[it.layer] = it
	}
	layer.SortForPaint(layers)
	for i, l := range layers {
		items[i] = byLayer[l]
	}
}

// Render paints the chart scene and fires the frame event.
func (t *Theatre) Render(s canvas.Surface) int {
	drawn := t.RenderScene(t.Chart, s)
	t.Stats.Update(drawn)
	metrics.FramesRendered.Inc()
	t.invoke(EventNameFrame, &EventFrame{
		Scene:       t.Chart.Name,
		CurrentTime: t.Chart.Timeline.CurrentTime(),
		LayersDrawn: drawn,
	})
	return drawn
}

func (t *Theatre) Play() {
	for _, sc := range t.Scenes() {
		sc.Timeline.Play()
	}
}

func (t *Theatre) Pause() {
	for _, sc := range t.Scenes() {
		sc.Timeline.Pause()
	}
}

func (t *Theatre) Stop() {
	for _, sc := range t.Scenes() {
		sc.Timeline.Stop()
	}
}

// SeekTo moves every scene to the same time, clamped per scene.
func (t *Theatre) SeekTo(ms float64) {
	for _, sc := range t.Scenes() {
		sc.Timeline.SeekTo(ms)
	}
}

// SeekToProgress moves every scene to the same fraction of the chart
// duration, so tables stay in step with the chart.
func (t *Theatre) SeekToProgress(f float64) {
	if math.IsNaN(f) {
		f = 0
	}
	t.SeekTo(min(max(f, 0), 1) * t.Chart.Timeline.Duration())
}

func (t *Theatre) SetSpeed(multiplier float64) error {
	for _, sc := range t.Scenes() {
		if !sc.Timeline.SetSpeed(multiplier) {
			return fmt.Errorf("invalid playback speed %v", multiplier)
		}
	}
	return nil
}

func (t *Theatre) SetLoop(loop bool) {
	for _, sc := range t.Scenes() {
		sc.Timeline.SetLoop(loop)
	}
}

// Export captures every scene and the current presentation.
func (t *Theatre) Export() *document.Document {
	snap := document.Snapshot{
		Chart:        t.Chart.snapshot(),
		Presentation: t.Presentation,
	}
	for _, sc := range t.Tables {
		snap.Tables = append(snap.Tables, sc.snapshot())
	}
	metrics.Exports.Inc()
	return document.Export(snap)
}

// Restore replaces every scene with the contents of doc. On error the
// theatre is left as it was.
func (t *Theatre) Restore(doc *document.Document) error {
	snap, err := document.Import(doc, t.sched)
	if err != nil {
		metrics.ImportsRejected.Inc()
		return fmt.Errorf("could not restore document: %w", err)
	}
	speed, loop := t.Chart.Timeline.Speed(), t.Chart.Timeline.Loop()
	t.Stop()

	t.Chart = fromSnapshot(ChartName, snap.Chart)
	t.Chart.CanvasID = ChartName
	t.Tables = nil
	for _, ts := range snap.Tables {
		t.Tables = append(t.Tables, fromSnapshot(ts.ID, ts))
	}
	t.Presentation = snap.Presentation
	if t.Presentation.Features == nil {
		t.Presentation.Features = make(map[string]bool)
	}
	for _, sc := range t.Scenes() {
		sc.Timeline.SetSpeed(speed)
		sc.Timeline.SetLoop(loop)
	}

	metrics.Imports.Inc()
	slog.Info("restored document",
		slog.String("module", "theatre"),
		slog.Int("layers", t.Chart.Layers.Count()),
		slog.Int("tables", len(t.Tables)),
	)
	t.invoke(EventNameRestore, &EventRestore{
		Tables:   len(t.Tables),
		Features: maps.Clone(t.Presentation.Features),
	})
	return nil
}

func (sc *Scene) snapshot() document.Scene {
	return document.Scene{
		ID:       sc.Name,
		CanvasID: sc.CanvasID,
		Layers:   sc.Layers,
		Timeline: sc.Timeline,
	}
}

func fromSnapshot(name string, s document.Scene) *Scene {
	return &Scene{
		Name:     name,
		CanvasID: s.CanvasID,
		Layers:   s.Layers,
		Timeline: s.Timeline,
		metrics:  metrics.NewSceneMetrics(name),
	}
}
