package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

var ErrUnsupportedVersion = errors.New("unsupported document version")

// Scene is one layer tree with its timeline. The chart scene has no ID;
// table scenes carry the ID and canvas the host assigned them.
type Scene struct {
	ID       string
	CanvasID string
	Layers   *layer.Manager
	Timeline *timeline.Timeline
}

// Presentation is renderer state captured when a document is written.
type Presentation struct {
	Axis        AxisDoc
	Features    map[string]bool
	ColorPreset string
	Width       int
	Height      int
}

func DefaultPresentation() Presentation {
	return ImportConfig(nil)
}

// Snapshot is everything a document holds.
type Snapshot struct {
	Chart        Scene
	Tables       []Scene
	Presentation Presentation
}

func Export(s Snapshot) *Document {
	doc := &Document{
		Version: Version,
		Chart: Chart{
			Root:     ExportLayer(s.Chart.Layers.Root()),
			Timeline: ExportTimeline(s.Chart.Timeline),
			Config:   ExportConfig(s.Presentation),
		},
	}
	for _, t := range s.Tables {
		doc.Tables = append(doc.Tables, TableDoc{
			ID:       t.ID,
			CanvasID: t.CanvasID,
			Root:     ExportLayer(t.Layers.Root()),
			Timeline: ExportTimeline(t.Timeline),
		})
	}
	return doc
}

// Import rebuilds a snapshot. The timelines it creates request frames from
// sched. Either the whole document is accepted or an error naming the
// offending part is returned.
func Import(doc *Document, sched timeline.Scheduler) (Snapshot, error) {
	if doc == nil {
		return Snapshot{}, errors.New("empty document")
	}
	if err := checkVersion(doc.Version); err != nil {
		return Snapshot{}, err
	}
	chart, err := importScene(doc.Chart.Root, doc.Chart.Timeline, sched)
	if err != nil {
		return Snapshot{}, fmt.Errorf("chart: %w", err)
	}
	snap := Snapshot{
		Chart:        chart,
		Presentation: ImportConfig(doc.Chart.Config),
	}
	for i, td := range doc.Tables {
		t, err := importScene(td.Root, td.Timeline, sched)
		if err != nil {
			return Snapshot{}, fmt.Errorf("table %d (%q): %w", i, td.ID, err)
		}
		t.ID = td.ID
		t.CanvasID = td.CanvasID
		snap.Tables = append(snap.Tables, t)
	}
	return snap, nil
}

func importScene(root *LayerDoc, tl *TimelineDoc, sched timeline.Scheduler) (Scene, error) {
	tree, err := ImportLayer(root, "")
	if err != nil {
		return Scene{}, err
	}
	m, err := layer.Adopt(tree)
	if err != nil {
		return Scene{}, err
	}
	t, err := ImportTimeline(tl, sched, m)
	if err != nil {
		return Scene{}, err
	}
	return Scene{Layers: m, Timeline: t}, nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	major, _, _ := strings.Cut(v, ".")
	want, _, _ := strings.Cut(Version, ".")
	if major != want {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}
	return nil
}

// ExportLayer serializes l and its subtree.
func ExportLayer(l *layer.Layer) *LayerDoc {
	if l == nil {
		return nil
	}
	return exportLayer(l, l.ParentID)
}

func exportLayer(l *layer.Layer, containerID string) *LayerDoc {
	d := &LayerDoc{
		ID:       l.ID,
		Name:     l.Name,
		Type:     l.Type,
		Visible:  elide(l.Visible, Defaults.Visible),
		Order:    elide(l.Order, Defaults.Order),
		ParentID: elide(l.ParentID, containerID),
	}
	if len(l.Data) > 0 {
		d.Data = copyData(l.Data)
	}
	for _, c := range l.Children {
		d.Children = append(d.Children, exportLayer(c, l.ID))
	}
	return d
}

// ImportLayer rebuilds a subtree whose top node sits under parentID. It
// only checks each node on its own; layer.Adopt validates the tree.
func ImportLayer(d *LayerDoc, parentID string) (*layer.Layer, error) {
	if d == nil {
		return nil, errors.New("missing root layer")
	}
	if d.ID == "" {
		return nil, fmt.Errorf("layer %q under %q has no id", d.Name, parentID)
	}
	l := &layer.Layer{
		ID:       d.ID,
		Name:     d.Name,
		Type:     d.Type,
		Visible:  restore(d.Visible, Defaults.Visible),
		Order:    restore(d.Order, Defaults.Order),
		ParentID: restore(d.ParentID, parentID),
		Data:     copyData(d.Data),
	}
	for _, cd := range d.Children {
		c, err := ImportLayer(cd, d.ID)
		if err != nil {
			return nil, err
		}
		l.Children = append(l.Children, c)
	}
	return l, nil
}

func ExportAnimation(a timeline.Animation) AnimationDoc {
	d := AnimationDoc{
		LayerID:   a.LayerID,
		StartTime: elide(a.StartTime, Defaults.StartTime),
		Duration:  elide(a.Duration, Defaults.Duration),
		Easing:    elide(a.Easing, Defaults.Easing),
	}
	if !slices.Equal(a.Effect, Defaults.Effect) && len(a.Effect) > 0 {
		d.Effect = slices.Clone(a.Effect)
	}
	if len(a.EffectOptions) > 0 {
		d.EffectOptions = effects.Options(copyData(a.EffectOptions))
	}
	return d
}

func ImportAnimation(d AnimationDoc) (timeline.Animation, error) {
	if d.LayerID == "" {
		return timeline.Animation{}, errors.New("animation has no layerId")
	}
	a := timeline.Animation{
		LayerID:   d.LayerID,
		StartTime: restore(d.StartTime, Defaults.StartTime),
		Duration:  restore(d.Duration, Defaults.Duration),
		Effect:    slices.Clone(Defaults.Effect),
		Easing:    restore(d.Easing, Defaults.Easing),
	}
	if len(d.Effect) > 0 {
		a.Effect = slices.Clone(d.Effect)
	}
	if len(d.EffectOptions) > 0 {
		a.EffectOptions = effects.Options(copyData(d.EffectOptions))
	}
	return a, nil
}

// ExportTimeline returns nil for a timeline with nothing to save.
func ExportTimeline(tl *timeline.Timeline) *TimelineDoc {
	if tl == nil {
		return nil
	}
	d := &TimelineDoc{
		CurrentTime: elide(tl.CurrentTime(), Defaults.CurrentTime),
		Duration:    tl.Duration(),
	}
	for _, a := range tl.Animations() {
		d.Animations = append(d.Animations, ExportAnimation(a))
	}
	if len(d.Animations) == 0 && d.CurrentTime == nil {
		return nil
	}
	return d
}

func ImportTimeline(d *TimelineDoc, sched timeline.Scheduler, layers timeline.LayerLookup) (*timeline.Timeline, error) {
	tl := timeline.New(sched, layers)
	if d == nil {
		return tl, nil
	}
	for i, ad := range d.Animations {
		a, err := ImportAnimation(ad)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		tl.AddAnimation(a)
	}
	if ct := restore(d.CurrentTime, Defaults.CurrentTime); ct != 0 {
		tl.SeekTo(ct)
	}
	return tl, nil
}

// ExportConfig returns nil when every presentation value is a default.
func ExportConfig(p Presentation) *ConfigDoc {
	d := &ConfigDoc{
		Axis:        elide(p.Axis, Defaults.Axis),
		ColorPreset: elide(p.ColorPreset, Defaults.ColorPreset),
		Width:       elide(p.Width, Defaults.Width),
		Height:      elide(p.Height, Defaults.Height),
	}
	if len(p.Features) > 0 {
		d.Features = maps.Clone(p.Features)
	}
	if d.Axis == nil && d.ColorPreset == nil && d.Width == nil && d.Height == nil && d.Features == nil {
		return nil
	}
	return d
}

func ImportConfig(d *ConfigDoc) Presentation {
	if d == nil {
		d = &ConfigDoc{}
	}
	p := Presentation{
		Axis:        restore(d.Axis, Defaults.Axis),
		Features:    make(map[string]bool, len(d.Features)),
		ColorPreset: restore(d.ColorPreset, Defaults.ColorPreset),
		Width:       restore(d.Width, Defaults.Width),
		Height:      restore(d.Height, Defaults.Height),
	}
	maps.Copy(p.Features, d.Features)
	return p
}

func copyData(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyData(v)
	case effects.Options:
		return effects.Options(copyData(v))
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	case []float64:
		return slices.Clone(v)
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}
