package canvas

import (
	"image/color"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(20, 20)
	r.FillRect(5, 5, 10, 10, red)

	img := r.Image()
	if got := img.RGBAAt(10, 10); got != red {
		t.Errorf("inside pixel: expected %v, got %v", red, got)
	}
	if got := img.RGBAAt(1, 1); got.A != 0 {
		t.Errorf("outside pixel should be untouched, got %v", got)
	}
}

func TestRasterTranslateAndRestore(t *testing.T) {
	r := NewRaster(20, 20)
	r.Save()
	r.Translate(10, 0)
	r.FillRect(0, 0, 5, 5, red)
	r.Restore()
	r.FillRect(0, 10, 5, 5, red)

	img := r.Image()
	if img.RGBAAt(12, 2) != red {
		t.Error("translated rect missing")
	}
	if img.RGBAAt(2, 2).A != 0 {
		t.Error("translation leaked to the untranslated position")
	}
	if img.RGBAAt(2, 12) != red {
		t.Error("restore did not reset the transform")
	}
}

func TestRasterClipAndAlpha(t *testing.T) {
	r := NewRaster(20, 20)
	r.Save()
	r.ClipRect(0, 0, 10, 20)
	r.SetAlpha(0.5)
	r.FillRect(0, 0, 20, 20, red)
	r.Restore()

	img := r.Image()
	left := img.RGBAAt(5, 5)
	if left.A < 120 || left.A > 135 {
		t.Errorf("expected half alpha inside clip, got %v", left)
	}
	if img.RGBAAt(15, 5).A != 0 {
		t.Error("fill escaped the clip")
	}
	if r.Alpha() != 1 {
		t.Errorf("alpha not restored, got %f", r.Alpha())
	}
}

func TestRasterZeroAlphaDrawsNothing(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetAlpha(0)
	r.FillCircle(5, 5, 4, red)
	if r.Image().RGBAAt(5, 5).A != 0 {
		t.Error("expected transparent output at alpha 0")
	}
}

func TestRecorderTracksState(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.Save()
	rec.Translate(10, 5)
	rec.Scale(2, 2)
	rec.Translate(1, 1)
	rec.ClipRect(0, 0, 10, 10)
	rec.FillRect(0, 0, 1, 1, red)
	rec.Restore()
	rec.FillText(3, 4, "hi", red)

	if len(rec.Ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(rec.Ops))
	}
	op := rec.Ops[0]
	if op.OffsetX != 12 || op.OffsetY != 7 || op.ScaleX != 2 {
		t.Errorf("unexpected transform %+v", op)
	}
	if op.Clip != (Rect{X: 12, Y: 7, W: 20, H: 20}) {
		t.Errorf("unexpected clip %+v", op.Clip)
	}
	if rec.Ops[1].OffsetX != 0 || rec.Ops[1].Clip.W != 100 {
		t.Errorf("state not restored: %+v", rec.Ops[1])
	}
	if rec.Depth() != 0 {
		t.Errorf("unbalanced save/restore: %d", rec.Depth())
	}
}
