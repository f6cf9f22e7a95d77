package mixer

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallyframe/tallyframe/lib/canvas"
	"github.com/tallyframe/tallyframe/lib/charts"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/theatre"
	"github.com/tallyframe/tallyframe/lib/timeline"
)

type SequenceOptions struct {
	FPS int
	// Workers bounds the number of frames being encoded at once.
	Workers int
	// Pattern names each frame; it gets the frame index.
	Pattern string
}

func (o SequenceOptions) withDefaults() SequenceOptions {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Pattern == "" {
		o.Pattern = "frame-%05d.png"
	}
	return o
}

// RenderSequence renders the chart of doc from start to end into one PNG
// per frame under dir and returns how many frames were written. Frames
// are drawn in order on the calling goroutine; only encoding is spread
// over workers.
func RenderSequence(ctx context.Context, doc *document.Document, dir string, opts SequenceOptions) (int, error) {
	opts = opts.withDefaults()

	t := theatre.New(timeline.NewManualScheduler(time.Unix(0, 0)), document.DefaultPresentation())
	if err := t.Restore(doc); err != nil {
		return 0, err
	}
	palette, _ := charts.Preset(t.Presentation.ColorPreset)
	charts.Register(t, palette)

	w, h := t.Presentation.Width, t.Presentation.Height
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("document canvas size %dx%d is invalid", w, h)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	step := 1000 / float64(opts.FPS)
	frames := int(math.Ceil(t.Chart.Timeline.Duration()/step)) + 1

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	raster := canvas.NewRaster(w, h)
	for i := 0; i < frames; i++ {
		if gctx.Err() != nil {
			break
		}
		t.SeekTo(float64(i) * step)
		raster.Clear(palette.Background)
		t.Render(raster)

		img := image.NewRGBA(raster.Image().Bounds())
		copy(img.Pix, raster.Image().Pix)
		name := filepath.Join(dir, fmt.Sprintf(opts.Pattern, i))
		g.Go(func() error {
			return writePNG(name, img)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return frames, nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not encode %s: %w", name, err)
	}
	return f.Close()
}
