package timeline

import (
	"math"

	"github.com/tallyframe/tallyframe/lib/effects"
)

const DefaultDuration = 1000

// Animation schedules one layer. Times are milliseconds on the timeline's
// own clock.
type Animation struct {
	LayerID       string
	StartTime     float64
	Duration      float64
	Effect        effects.Spec
	EffectOptions effects.Options
	Easing        string
}

// DefaultAnimation returns the default animation for a layer: starts at 0,
// lasts one second, picks its effect from the layer type, no easing.
func DefaultAnimation(layerID string) Animation {
	return Animation{
		LayerID:   layerID,
		StartTime: 0,
		Duration:  DefaultDuration,
		Effect:    effects.Single(effects.Auto),
		Easing:    effects.EasingLinear,
	}
}

func (a Animation) End() float64 {
	return a.StartTime + a.Duration
}

// normalized brings a caller-built animation into the canonical form the
// registry stores, so that equal animations compare equal.
func (a Animation) normalized() Animation {
	if !finite(a.StartTime) || a.StartTime < 0 {
		a.StartTime = 0
	}
	if !finite(a.Duration) || a.Duration < 0 {
		a.Duration = 0
	}
	if len(a.Effect) == 0 {
		a.Effect = effects.Single(effects.Auto)
	}
	if len(a.EffectOptions) == 0 {
		a.EffectOptions = nil
	}
	if a.Easing == "" {
		a.Easing = effects.EasingLinear
	}
	return a
}

// RawProgress is the linear position of t inside the animation window.
func (a Animation) RawProgress(t float64) float64 {
	if t < a.StartTime {
		return 0
	}
	if t >= a.End() {
		return 1
	}
	return (t - a.StartTime) / a.Duration
}

// Progress is RawProgress shaped by the animation's easing.
func (a Animation) Progress(t float64) float64 {
	raw := a.RawProgress(t)
	if raw == 0 || raw == 1 {
		return raw
	}
	return effects.Ease(a.Easing, raw)
}

func (a Animation) Started(t float64) bool {
	return t >= a.StartTime
}

func (a Animation) Completed(t float64) bool {
	return t >= a.End()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
