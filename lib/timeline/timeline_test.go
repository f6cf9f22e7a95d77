package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tallyframe/tallyframe/lib/effects"
	"github.com/tallyframe/tallyframe/lib/layer"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestTimeline(t *testing.T) (*Timeline, *ManualScheduler, *layer.Manager) {
	t.Helper()
	m := layer.NewManager()
	for _, l := range []*layer.Layer{
		layer.New("bar-0", "Bar 0", "bar", nil),
		layer.New("bar-1", "Bar 1", "bar", nil),
		layer.New("line", "Polygon", "line", nil),
		layer.New("label", "Title", "label", nil),
	} {
		if !m.AddLayer(l, "") {
			t.Fatalf("add %s", l.ID)
		}
	}
	sched := NewManualScheduler(time.Unix(0, 0))
	return New(sched, m), sched, m
}

func fadeLinear(id string, start, dur float64) Animation {
	a := DefaultAnimation(id)
	a.StartTime = start
	a.Duration = dur
	a.Effect = effects.Single(effects.Fade)
	return a
}

func TestPlaybackScenario(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))

	tl.Play()
	if tl.State() != Playing {
		t.Fatalf("state = %s", tl.State())
	}
	sched.Advance(0) // first frame primes the delta timer
	sched.Advance(500 * time.Millisecond)

	if !near(tl.CurrentTime(), 500) {
		t.Fatalf("currentTime = %f", tl.CurrentTime())
	}
	act := tl.Active()
	if len(act) != 1 || !near(act[0].Progress, 0.5) || act[0].Completed {
		t.Fatalf("active at 500: %+v", act)
	}

	sched.Advance(500 * time.Millisecond)
	if tl.IsPlaying() {
		t.Error("playback must stop at the end")
	}
	if tl.CurrentTime() != 1000 {
		t.Errorf("currentTime = %f, want 1000", tl.CurrentTime())
	}
	if sched.Pending() != 0 {
		t.Errorf("no frame may be requested after the end, %d pending", sched.Pending())
	}

	act = tl.ActiveAt(1500)
	if len(act) != 1 || act[0].Progress != 1 || !act[0].Completed {
		t.Errorf("active at 1500: %+v", act)
	}
}

func TestTickOvershootClamps(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 300))

	var times []float64
	tl.OnUpdate(func(ms float64, _ []Active) {
		times = append(times, ms)
	})
	tl.Play()
	sched.Advance(0)
	sched.Advance(time.Second)

	if diff := cmp.Diff([]float64{0, 300}, times); diff != "" {
		t.Errorf("update times (-want +got):\n%s", diff)
	}
	if tl.State() != Paused {
		t.Errorf("state at end = %s", tl.State())
	}
}

func TestPlayIsIdempotent(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))

	tl.Play()
	tl.Play()
	if sched.Pending() != 1 {
		t.Fatalf("expected a single tick chain, %d pending", sched.Pending())
	}
	sched.Advance(0)
	if sched.Pending() != 1 {
		t.Errorf("tick must reschedule itself once, %d pending", sched.Pending())
	}
}

func TestPauseThenPlayKeepsOneChain(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))

	tl.Play()
	tl.Pause()
	tl.Play()
	// the stale tick is still queued but must exit without rescheduling
	if sched.Pending() != 2 {
		t.Fatalf("pending = %d", sched.Pending())
	}
	sched.Advance(0)
	if sched.Pending() != 1 {
		t.Errorf("expected one live chain, %d pending", sched.Pending())
	}
}

func TestPauseAndStop(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))

	tl.Play()
	sched.Advance(0)
	sched.Advance(200 * time.Millisecond)
	tl.Pause()
	if sched.Advance(200*time.Millisecond) != 1 {
		t.Fatal("the queued tick should still run once")
	}
	if !near(tl.CurrentTime(), 200) {
		t.Errorf("paused tick advanced the clock: %f", tl.CurrentTime())
	}
	if sched.Pending() != 0 || tl.State() != Paused {
		t.Errorf("pending %d, state %s", sched.Pending(), tl.State())
	}

	updates := 0
	tl.OnUpdate(func(float64, []Active) { updates++ })
	tl.Stop()
	tl.Stop()
	if updates != 1 {
		t.Errorf("second stop must be a no-op, got %d updates", updates)
	}
	if tl.CurrentTime() != 0 || tl.State() != Idle {
		t.Errorf("after stop: %f %s", tl.CurrentTime(), tl.State())
	}
}

func TestSpeed(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))
	if tl.SetSpeed(0) || tl.SetSpeed(-2) {
		t.Error("non-positive speed accepted")
	}
	tl.SetSpeed(2)
	tl.Play()
	sched.Advance(0)
	sched.Advance(100 * time.Millisecond)
	if !near(tl.CurrentTime(), 200) {
		t.Errorf("currentTime = %f, want 200", tl.CurrentTime())
	}
}

func TestLoop(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 100))
	tl.SetLoop(true)
	tl.Play()
	sched.Advance(0)
	sched.Advance(150 * time.Millisecond)
	if !tl.IsPlaying() || tl.CurrentTime() != 0 {
		t.Errorf("loop should wrap: playing=%v t=%f", tl.IsPlaying(), tl.CurrentTime())
	}
	sched.Advance(40 * time.Millisecond)
	if !near(tl.CurrentTime(), 40) {
		t.Errorf("after wrap t=%f", tl.CurrentTime())
	}
}

func TestPlayFromEndRestarts(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 100))
	tl.SeekTo(100)
	tl.Play()
	if tl.CurrentTime() != 0 {
		t.Errorf("play at the end should rewind, t=%f", tl.CurrentTime())
	}
	sched.Advance(0)
}

func TestEmptyTimelineCompletesImmediately(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.Play()
	sched.Advance(16 * time.Millisecond)
	if tl.IsPlaying() || tl.CurrentTime() != 0 {
		t.Errorf("playing=%v t=%f", tl.IsPlaying(), tl.CurrentTime())
	}
}

func TestSeek(t *testing.T) {
	tl, _, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))
	tl.AddAnimation(fadeLinear("bar-1", 500, 1000))

	tests := []struct {
		seek float64
		want float64
	}{
		{-50, 0},
		{700, 700},
		{9000, 1500},
	}
	for _, tt := range tests {
		tl.SeekTo(tt.seek)
		if tl.CurrentTime() != tt.want {
			t.Errorf("SeekTo(%f) = %f, want %f", tt.seek, tl.CurrentTime(), tt.want)
		}
	}
	tl.SeekToProgress(0.5)
	if tl.CurrentTime() != 750 {
		t.Errorf("SeekToProgress(0.5) = %f", tl.CurrentTime())
	}
	if tl.IsPlaying() {
		t.Error("seek must not start playback")
	}
}

func TestNaNInputsStayInRange(t *testing.T) {
	tl, sched, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 1000))

	tl.SeekTo(500)
	tl.SeekTo(math.NaN())
	if tl.CurrentTime() != 0 {
		t.Errorf("SeekTo(NaN) = %f, want 0", tl.CurrentTime())
	}
	tl.SeekToProgress(math.NaN())
	if tl.CurrentTime() != 0 {
		t.Errorf("SeekToProgress(NaN) = %f, want 0", tl.CurrentTime())
	}

	tl.Play()
	for i := 0; i < 20 && tl.IsPlaying(); i++ {
		sched.Advance(100 * time.Millisecond)
	}
	if tl.IsPlaying() || tl.CurrentTime() != 1000 || sched.Pending() != 0 {
		t.Errorf("playback did not complete: playing=%v t=%f pending=%d", tl.IsPlaying(), tl.CurrentTime(), sched.Pending())
	}

	if tl.SetSpeed(math.NaN()) || tl.SetSpeed(math.Inf(1)) {
		t.Error("non-finite speed accepted")
	}

	bad := fadeLinear("bar-1", math.NaN(), math.NaN())
	tl.AddAnimation(bad)
	got, _ := tl.Animation("bar-1")
	if got.StartTime != 0 || got.Duration != 0 {
		t.Errorf("NaN window stored as start=%f duration=%f", got.StartTime, got.Duration)
	}
	if tl.Duration() != 1000 {
		t.Errorf("duration %f, want 1000", tl.Duration())
	}
}

func TestRegistry(t *testing.T) {
	tl, _, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 800, 200))
	tl.AddAnimation(fadeLinear("bar-1", 0, 500))
	tl.AddAnimation(fadeLinear("line", 0, 300))

	if tl.Duration() != 1000 {
		t.Errorf("duration = %f", tl.Duration())
	}
	ids := func(as []Animation) []string {
		var out []string
		for _, a := range as {
			out = append(out, a.LayerID)
		}
		return out
	}
	if diff := cmp.Diff([]string{"bar-1", "line", "bar-0"}, ids(tl.Schedule())); diff != "" {
		t.Errorf("schedule (-want +got):\n%s", diff)
	}

	// replacing keeps the registration slot
	tl.AddAnimation(fadeLinear("bar-0", 0, 100))
	if diff := cmp.Diff([]string{"bar-0", "bar-1", "line"}, ids(tl.Animations())); diff != "" {
		t.Errorf("registration order (-want +got):\n%s", diff)
	}
	if tl.Len() != 3 || tl.Duration() != 500 {
		t.Errorf("len %d duration %f", tl.Len(), tl.Duration())
	}

	tl.SeekTo(450)
	if !tl.UpdateAnimation("bar-1", func(a *Animation) { a.Duration = 100; a.LayerID = "hijack" }) {
		t.Fatal("update failed")
	}
	if _, ok := tl.Animation("hijack"); ok {
		t.Error("update must not rename the animation")
	}
	if tl.Duration() != 300 || tl.CurrentTime() != 300 {
		t.Errorf("duration %f, currentTime %f not clamped", tl.Duration(), tl.CurrentTime())
	}
	if tl.UpdateAnimation("missing", func(*Animation) {}) {
		t.Error("update of a missing animation succeeded")
	}

	if !tl.RemoveAnimation("line") || tl.RemoveAnimation("line") {
		t.Error("remove")
	}
	tl.ClearAnimations()
	if tl.Len() != 0 || tl.Duration() != 0 || tl.CurrentTime() != 0 {
		t.Error("clear")
	}
	if tl.AddAnimation(Animation{}) {
		t.Error("animation without layer accepted")
	}
}

func TestAddNormalizes(t *testing.T) {
	tl, _, _ := newTestTimeline(t)
	tl.AddAnimation(Animation{LayerID: "bar-0", StartTime: -10, Duration: -1, EffectOptions: effects.Options{}})
	got, _ := tl.Animation("bar-0")
	want := Animation{LayerID: "bar-0", Effect: effects.Single(effects.Auto), Easing: effects.EasingLinear}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("normalized (-want +got):\n%s", diff)
	}
}

func TestProgressMonotonic(t *testing.T) {
	for _, easing := range []string{"linear", "easeInQuad", "easeInOutCubic", "easeOutSine"} {
		a := fadeLinear("bar-0", 200, 600)
		a.Easing = easing
		prev := -1.0
		for ms := 0.0; ms <= 1000; ms += 5 {
			p := Progress(a, ms)
			if p < prev-1e-12 {
				t.Fatalf("%s: progress fell from %f to %f at %f", easing, prev, p, ms)
			}
			if p < 0 || p > 1 {
				t.Fatalf("%s: progress %f out of range", easing, p)
			}
			prev = p
		}
		if Progress(a, 199) != 0 || Progress(a, 800) != 1 {
			t.Errorf("%s: window edges", easing)
		}
	}

	instant := fadeLinear("bar-0", 100, 0)
	if Progress(instant, 99) != 0 || Progress(instant, 100) != 1 {
		t.Error("zero-duration animation must jump at its start")
	}
}

func TestActiveSetOrderAndDangling(t *testing.T) {
	tl, _, m := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("label", 0, 100))
	tl.AddAnimation(fadeLinear("bar-0", 0, 100))
	tl.AddAnimation(fadeLinear("line", 0, 100))
	tl.AddAnimation(fadeLinear("bar-1", 400, 100))
	tl.AddAnimation(fadeLinear("ghost", 0, 100))

	var got []string
	for _, a := range tl.ActiveAt(50) {
		got = append(got, a.Layer.ID)
	}
	if diff := cmp.Diff([]string{"line", "bar-0", "label"}, got); diff != "" {
		t.Errorf("paint order (-want +got):\n%s", diff)
	}

	m.RemoveLayer("bar-0")
	if n := len(tl.ActiveAt(450)); n != 3 {
		t.Errorf("expected removed layer to be skipped, %d active", n)
	}
}

func TestOffUpdate(t *testing.T) {
	tl, _, _ := newTestTimeline(t)
	tl.AddAnimation(fadeLinear("bar-0", 0, 100))
	calls := 0
	id := tl.OnUpdate(func(float64, []Active) { calls++ })
	tl.SeekTo(10)
	if !tl.OffUpdate(id) || tl.OffUpdate(id) {
		t.Error("OffUpdate")
	}
	tl.SeekTo(20)
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}
