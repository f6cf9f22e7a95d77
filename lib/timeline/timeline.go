package timeline

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/utils"
)

type State int

const (
	Idle State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// LayerLookup resolves animation targets. *layer.Manager satisfies it.
type LayerLookup interface {
	FindLayer(id string) *layer.Layer
}

// Active is an animation whose window has started, with its layer and the
// progress to draw it at.
type Active struct {
	Animation Animation
	Layer     *layer.Layer
	Progress  float64
	Completed bool
}

type UpdateListener func(currentTime float64, active []Active)

type ListenerID uint64

type registeredListener struct {
	id ListenerID
	fn UpdateListener
}

// Timeline owns the animation registry and the playback state machine. It
// is not safe for concurrent use: all calls, and the frame callbacks it
// hands to its Scheduler, must run on one goroutine.
type Timeline struct {
	sched  Scheduler
	layers LayerLookup

	anims map[string]*Animation
	slots []string

	schedule []Animation
	duration float64

	currentTime float64
	playing     bool
	speed       float64
	loop        bool
	generation  uint64
	last        utils.DeltaTimer

	listeners    []registeredListener
	nextListener ListenerID
}

func New(sched Scheduler, layers LayerLookup) *Timeline {
	return &Timeline{
		sched:  sched,
		layers: layers,
		anims:  make(map[string]*Animation),
		speed:  1,
	}
}

// AddAnimation registers a, replacing any animation already registered for
// the same layer. A replaced animation keeps its registration slot.
func (t *Timeline) AddAnimation(a Animation) bool {
	if a.LayerID == "" {
		return false
	}
	a = a.normalized()
	if _, ok := t.anims[a.LayerID]; ok {
		slog.Debug("replacing animation", slog.String("module", "timeline"), slog.String("layer", a.LayerID))
	} else {
		t.slots = append(t.slots, a.LayerID)
	}
	t.anims[a.LayerID] = &a
	t.recompute()
	return true
}

// UpdateAnimation edits the animation for layerID in place.
func (t *Timeline) UpdateAnimation(layerID string, edit func(a *Animation)) bool {
	cur, ok := t.anims[layerID]
	if !ok {
		return false
	}
	next := *cur
	edit(&next)
	next.LayerID = layerID
	next = next.normalized()
	*cur = next
	t.recompute()
	return true
}

func (t *Timeline) RemoveAnimation(layerID string) bool {
	if _, ok := t.anims[layerID]; !ok {
		return false
	}
	delete(t.anims, layerID)
	t.slots = slices.DeleteFunc(t.slots, func(id string) bool {
		return id == layerID
	})
	t.recompute()
	return true
}

func (t *Timeline) ClearAnimations() {
	clear(t.anims)
	t.slots = nil
	t.recompute()
}

func (t *Timeline) Animation(layerID string) (Animation, bool) {
	a, ok := t.anims[layerID]
	if !ok {
		return Animation{}, false
	}
	return *a, true
}

// Animations lists the registry in registration order.
func (t *Timeline) Animations() []Animation {
	out := make([]Animation, 0, len(t.slots))
	for _, id := range t.slots {
		out = append(out, *t.anims[id])
	}
	return out
}

// Schedule lists the registry ordered by start time. Ties keep
// registration order.
func (t *Timeline) Schedule() []Animation {
	return slices.Clone(t.schedule)
}

func (t *Timeline) Duration() float64 {
	return t.duration
}

func (t *Timeline) Len() int {
	return len(t.slots)
}

func (t *Timeline) recompute() {
	t.schedule = t.Animations()
	slices.SortStableFunc(t.schedule, func(a, b Animation) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	t.duration = 0
	for _, a := range t.schedule {
		t.duration = max(t.duration, a.End())
	}
	t.currentTime = t.clamp(t.currentTime)
}

func (t *Timeline) clamp(ms float64) float64 {
	if math.IsNaN(ms) {
		return 0
	}
	return min(max(ms, 0), t.duration)
}

func (t *Timeline) CurrentTime() float64 {
	return t.currentTime
}

func (t *Timeline) IsPlaying() bool {
	return t.playing
}

func (t *Timeline) State() State {
	switch {
	case t.playing:
		return Playing
	case t.currentTime == 0:
		return Idle
	default:
		return Paused
	}
}

// SetSpeed scales elapsed wall-clock time. Speeds that are not a positive
// finite number are rejected.
func (t *Timeline) SetSpeed(multiplier float64) bool {
	if !(multiplier > 0) || math.IsInf(multiplier, 1) {
		return false
	}
	t.speed = multiplier
	return true
}

func (t *Timeline) Speed() float64 {
	return t.speed
}

// SetLoop makes playback wrap to the start instead of stopping at the end.
func (t *Timeline) SetLoop(loop bool) {
	t.loop = loop
}

func (t *Timeline) Loop() bool {
	return t.loop
}

// Play starts playback from the current time, or from the start when the
// timeline already sits at its end. Calling Play while playing does
// nothing.
func (t *Timeline) Play() {
	if t.playing {
		return
	}
	if t.duration > 0 && t.currentTime >= t.duration {
		t.currentTime = 0
	}
	t.playing = true
	t.generation++
	t.last.Reset()
	slog.Debug("play", slog.String("module", "timeline"), slog.Float64("from", t.currentTime))
	t.requestTick()
}

func (t *Timeline) Pause() {
	if !t.playing {
		return
	}
	t.playing = false
	slog.Debug("pause", slog.String("module", "timeline"), slog.Float64("at", t.currentTime))
}

// Stop halts playback and rewinds to the start.
func (t *Timeline) Stop() {
	if !t.playing && t.currentTime == 0 {
		return
	}
	t.playing = false
	t.currentTime = 0
	t.notify()
}

// SeekTo moves the playhead, clamped to the timeline. Playback state is
// left unchanged.
func (t *Timeline) SeekTo(ms float64) {
	t.currentTime = t.clamp(ms)
	t.notify()
}

// SeekToProgress seeks to a fraction of the total duration.
func (t *Timeline) SeekToProgress(f float64) {
	t.SeekTo(min(max(f, 0), 1) * t.duration)
}

func (t *Timeline) requestTick() {
	gen := t.generation
	t.sched.RequestFrame(func(now time.Time) {
		t.tick(gen, now)
	})
}

func (t *Timeline) tick(gen uint64, now time.Time) {
	if !t.playing || gen != t.generation {
		return
	}
	delta := t.last.NextAt(now)
	t.currentTime += float64(delta) / float64(time.Millisecond) * t.speed

	if t.currentTime >= t.duration {
		if t.loop && t.duration > 0 {
			t.currentTime = 0
			t.last.Set(now)
			t.notify()
			t.requestTick()
			return
		}
		t.currentTime = t.duration
		t.playing = false
		slog.Debug("finished", slog.String("module", "timeline"), slog.Float64("duration", t.duration))
		t.notify()
		return
	}
	t.notify()
	if t.playing && gen == t.generation {
		t.requestTick()
	}
}

// Progress is the eased progress of a at time ms.
func Progress(a Animation, ms float64) float64 {
	return a.Progress(ms)
}

// ActiveAt lists the animations whose window has started at ms, in paint
// order. Completed animations are pinned at progress 1. Animations whose
// layer no longer exists are skipped.
func (t *Timeline) ActiveAt(ms float64) []Active {
	var out []Active
	for _, a := range t.schedule {
		if !a.Started(ms) {
			continue
		}
		l := t.layers.FindLayer(a.LayerID)
		if l == nil {
			continue
		}
		act := Active{Animation: a, Layer: l, Completed: a.Completed(ms)}
		if act.Completed {
			act.Progress = 1
		} else {
			act.Progress = a.Progress(ms)
		}
		out = append(out, act)
	}
	slices.SortStableFunc(out, func(a, b Active) int {
		return cmp.Compare(layer.PaintRank(a.Layer.Type), layer.PaintRank(b.Layer.Type))
	})
	return out
}

func (t *Timeline) Active() []Active {
	return t.ActiveAt(t.currentTime)
}

// OnUpdate registers fn to run after every tick, seek and stop.
func (t *Timeline) OnUpdate(fn UpdateListener) ListenerID {
	t.nextListener++
	t.listeners = append(t.listeners, registeredListener{id: t.nextListener, fn: fn})
	return t.nextListener
}

func (t *Timeline) OffUpdate(id ListenerID) bool {
	for i, l := range t.listeners {
		if l.id == id {
			t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Timeline) notify() {
	if len(t.listeners) == 0 {
		return
	}
	active := t.Active()
	for _, l := range t.listeners {
		l.fn(t.currentTime, active)
	}
}
