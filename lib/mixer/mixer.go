package mixer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/metrics"
	"github.com/tallyframe/tallyframe/lib/theatre"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

var ErrStopped = errors.New("frame loop is not running")

type Options struct {
	FPS        int
	Background color.Color
}

// Mixer runs the frame loop. The theatre and everything it owns belong to
// the goroutine running Run; other goroutines reach them through Do.
type Mixer struct {
	Theatre *theatre.Theatre

	fps        int
	background color.Color
	pending    []timeline.FrameCallback
	raster     *canvas.Raster

	jobs     chan func()
	shutdown chan struct{}
	stopped  chan struct{}
	once     sync.Once

	frameMutex sync.RWMutex
	frame      *image.RGBA
}

func New(opts Options, p document.Presentation) *Mixer {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	m := &Mixer{
		fps:        opts.FPS,
		background: opts.Background,
		jobs:       make(chan func()),
		shutdown:   make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	m.Theatre = theatre.New(m, p)
	return m
}

// RequestFrame queues cb for the next tick. It must be called from the
// frame goroutine, which is where the timeline calls it from.
func (m *Mixer) RequestFrame(cb timeline.FrameCallback) {
	m.pending = append(m.pending, cb)
}

func (m *Mixer) Pending() int {
	return len(m.pending)
}

// Run ticks at the configured rate until ctx is done or Shutdown is
// called.
func (m *Mixer) Run(ctx context.Context) error {
	defer close(m.stopped)

	ticker := time.NewTicker(time.Second / time.Duration(m.fps))
	defer ticker.Stop()

	slog.Info("frame loop started", slog.String("module", "mixer"), slog.Int("fps", m.fps))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.shutdown:
			slog.Info("frame loop stopped", slog.String("module", "mixer"))
			return nil
		case job := <-m.jobs:
			job()
		case now := <-ticker.C:
			m.Step(now)
		}
	}
}

// Step runs one refresh: the frame callbacks queued so far, then a render
// of the chart into the published frame.
func (m *Mixer) Step(now time.Time) {
	batch := m.pending
	m.pending = nil
	for _, cb := range batch {
		cb(now)
	}
	metrics.Ticks.Add(float64(len(batch)))

	w, h := m.Theatre.Presentation.Width, m.Theatre.Presentation.Height
	if w <= 0 || h <= 0 {
		return
	}
	if m.raster == nil || m.raster.Image().Bounds().Dx() != w || m.raster.Image().Bounds().Dy() != h {
		m.raster = canvas.NewRaster(w, h)
	}
	m.raster.Clear(m.background)
	m.Theatre.Render(m.raster)
	m.publish(m.raster.Image())
}

func (m *Mixer) publish(img *image.RGBA) {
	m.frameMutex.Lock()
	defer m.frameMutex.Unlock()
	if m.frame == nil || m.frame.Bounds() != img.Bounds() {
		m.frame = image.NewRGBA(img.Bounds())
	}
	copy(m.frame.Pix, img.Pix)
}

// Frame returns a copy of the last rendered frame, or nil before the
// first one. Safe to call from any goroutine.
func (m *Mixer) Frame() *image.RGBA {
	m.frameMutex.RLock()
	defer m.frameMutex.RUnlock()
	if m.frame == nil {
		return nil
	}
	out := image.NewRGBA(m.frame.Bounds())
	copy(out.Pix, m.frame.Pix)
	return out
}

// Do runs fn on the frame goroutine and waits for it to finish.
func (m *Mixer) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn()
	}
	select {
	case m.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-m.stopped:
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-m.stopped:
		return ErrStopped
	}
}

// Shutdown asks Run to return after the current job or tick.
func (m *Mixer) Shutdown() {
	m.once.Do(func() {
		close(m.shutdown)
	})
}

func (m *Mixer) Done() <-chan struct{} {
	return m.stopped
}
