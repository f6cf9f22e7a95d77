package mixer

import (
	"context"
	"errors"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/charts"
	"github.com/tallyframe/tallyframe/lib/config"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/theatre"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

func newMixer(t *testing.T) *Mixer {
	t.Helper()
	p := document.DefaultPresentation()
	p.Width, p.Height = 40, 20
	m := New(Options{FPS: 100, Background: color.Black}, p)
	m.Theatre.RegisterRoutine("box", func(s canvas.Surface, l *layer.Layer, _ float64) {
		s.FillRect(0, 0, 40, 20, color.White)
	})
	return m
}

func TestStepDrivesTimeline(t *testing.T) {
	m := newMixer(t)
	sc := m.Theatre.Chart
	sc.Layers.AddLayer(layer.New("box", "", "box", nil), "")
	a := timeline.DefaultAnimation("box")
	a.Effect = nil
	a.Duration = 100
	sc.Timeline.AddAnimation(a)

	if m.Frame() != nil {
		t.Fatal("frame before the first step")
	}
	start := time.Unix(100, 0)
	m.Theatre.Play()
	if m.Pending() != 1 {
		t.Fatalf("pending after play: %d", m.Pending())
	}
	m.Step(start)
	m.Step(start.Add(60 * time.Millisecond))
	if got := sc.Timeline.CurrentTime(); got != 60 {
		t.Errorf("current time %v", got)
	}
	m.Step(start.Add(200 * time.Millisecond))
	if sc.Timeline.IsPlaying() || m.Pending() != 0 {
		t.Error("timeline should have completed")
	}

	frame := m.Frame()
	if frame == nil || frame.Bounds().Dx() != 40 {
		t.Fatalf("frame %v", frame)
	}
	if c := frame.RGBAAt(10, 10); c.R != 0xff {
		t.Errorf("box not drawn: %v", c)
	}
	frame.Pix[0] = 1
	if m.Frame().Pix[0] == 1 {
		t.Error("Frame should return a copy")
	}
}

func TestStepFollowsPresentationSize(t *testing.T) {
	m := newMixer(t)
	m.Step(time.Unix(0, 0))
	m.Theatre.Presentation.Width = 80
	m.Step(time.Unix(1, 0))
	if w := m.Frame().Bounds().Dx(); w != 80 {
		t.Errorf("width %d", w)
	}
}

func TestDoRunsOnFrameLoop(t *testing.T) {
	m := newMixer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = m.Run(ctx)
	}()

	var layers int
	err := m.Do(ctx, func() {
		m.Theatre.Chart.Layers.AddLayer(layer.New("a", "", "box", nil), "")
		layers = m.Theatre.Chart.Layers.Count()
	})
	if err != nil || layers != 1 {
		t.Fatalf("Do: %v, %d layers", err, layers)
	}

	m.Shutdown()
	m.Shutdown()
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	if err := m.Do(ctx, func() {}); !errors.Is(err, ErrStopped) {
		t.Errorf("Do after shutdown: %v", err)
	}
}

var sample = []float64{150, 152, 155, 158, 160, 161, 163, 165, 168, 170}

func TestSetupFromDataset(t *testing.T) {
	m := newMixer(t)
	palette, _ := charts.Preset("classic")
	charts.Register(m.Theatre, palette)
	m.Theatre.AddTable("stale", "stale")
	cfg := &config.Config{
		Playback: config.PlaybackCfg{Speed: 2, Autoplay: true, Loop: true},
		Dataset: &config.DatasetCfg{
			DatasetCfgStub: config.DatasetCfgStub{Type: "inline", Classes: 4, Title: "Heights", Table: true},
			Source:         &config.InlineDatasetCfg{Samples: sample},
		},
	}
	if err := Setup(m.Theatre, cfg); err != nil {
		t.Fatal(err)
	}

	th := m.Theatre
	if n := len(th.Chart.Layers.GetLayersByType(charts.TypeBar)); n != 4 {
		t.Errorf("bars: %d", n)
	}
	if th.Table("stale") != nil || len(th.Tables) != 1 {
		t.Errorf("tables from before the dataset were kept: %d", len(th.Tables))
	}
	table := th.Table(FrequencyTable)
	if table == nil {
		t.Fatal("frequency table missing")
	}
	if table.Timeline.Speed() != 2 || !table.Timeline.Loop() || !table.Timeline.IsPlaying() {
		t.Error("playback settings not applied to the table")
	}
	if !th.Chart.Timeline.IsPlaying() || m.Pending() != 2 {
		t.Errorf("autoplay: playing %t, pending %d", th.Chart.Timeline.IsPlaying(), m.Pending())
	}
}

func TestSetupFromDocument(t *testing.T) {
	m := newMixer(t)
	sc := m.Theatre.Chart
	sc.Layers.AddLayer(layer.New("box", "", "box", nil), "")
	sc.Timeline.AddAnimation(timeline.DefaultAnimation("box"))
	b, err := document.MarshalYAML(m.Theatre.Export())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}

	other := newMixer(t)
	cfg := &config.Config{Document: config.CfgPath(path), Playback: config.PlaybackCfg{Speed: 1}}
	if err := Setup(other.Theatre, cfg); err != nil {
		t.Fatal(err)
	}
	if other.Theatre.Chart.Layers.FindLayer("box") == nil || other.Theatre.Chart.Timeline.Duration() != 1000 {
		t.Error("document not restored")
	}
	if other.Theatre.Chart.Timeline.IsPlaying() {
		t.Error("playing without autoplay")
	}

	cfg.Document = config.CfgPath(filepath.Join(t.TempDir(), "missing.json"))
	if err := Setup(other.Theatre, cfg); err == nil {
		t.Error("missing document accepted")
	}
}

func TestReloadResumesPlayback(t *testing.T) {
	m := newMixer(t)
	sc := m.Theatre.Chart
	sc.Layers.AddLayer(layer.New("box", "", "box", nil), "")
	sc.Timeline.AddAnimation(timeline.DefaultAnimation("box"))
	doc := m.Theatre.Export()

	m.Theatre.Play()
	if err := Reload(m.Theatre, doc); err != nil {
		t.Fatal(err)
	}
	if !m.Theatre.Chart.Timeline.IsPlaying() {
		t.Error("reload stopped playback")
	}
	m.Theatre.Pause()
	if err := Reload(m.Theatre, doc); err != nil {
		t.Fatal(err)
	}
	if m.Theatre.Chart.Timeline.IsPlaying() {
		t.Error("reload started playback")
	}
}

func TestRenderSequence(t *testing.T) {
	p := document.DefaultPresentation()
	p.Width, p.Height = 120, 80
	th := theatre.New(timeline.NewManualScheduler(time.Unix(0, 0)), p)
	if _, err := charts.BuildHistogram(th, sample, charts.HistogramOptions{Classes: 3, Stagger: 100, Duration: 200}); err != nil {
		t.Fatal(err)
	}
	duration := th.Chart.Timeline.Duration()

	dir := t.TempDir()
	n, err := RenderSequence(context.Background(), th.Export(), dir, SequenceOptions{FPS: 10, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	if want := int(math.Ceil(duration/100)) + 1; n != want {
		t.Errorf("frames %d, want %d for %vms", n, want, duration)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		t.Errorf("%d files for %d frames", len(entries), n)
	}

	f, err := os.Open(filepath.Join(dir, "frame-00000.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Errorf("bounds %v", img.Bounds())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderSequence(ctx, th.Export(), t.TempDir(), SequenceOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled render: %v", err)
	}
}
