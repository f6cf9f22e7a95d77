package effects

import (
	"maps"
	"math"
	"slices"
)

const EasingLinear = "linear"

// EasingFunc maps a linear time fraction in [0, 1] onto perceived progress.
type EasingFunc func(t float64) float64

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

var easings = map[string]EasingFunc{
	EasingLinear: func(t float64) float64 { return t },

	"easeInQuad":  func(t float64) float64 { return t * t },
	"easeOutQuad": func(t float64) float64 { return 1 - (1-t)*(1-t) },
	"easeInOutQuad": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	},

	"easeInCubic":  func(t float64) float64 { return t * t * t },
	"easeOutCubic": easeOutCubic,
	"easeInOutCubic": func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	},

	"easeInSine":    func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"easeOutSine":   func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"easeInOutSine": func(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 },

	"easeOutBack": easeOutBack,
	"easeOutElastic": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		const c4 = 2 * math.Pi / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	},
	"easeOutBounce": easeOutBounce,
}

func easeOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// easeOutBack overshoots past 1 before settling.
func easeOutBack(t float64) float64 {
	return 1 + backC3*math.Pow(t-1, 3) + backC1*math.Pow(t-1, 2)
}

func easeOutBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Ease shapes p with the named easing. Unknown names fall back to linear
// and p is clamped to [0, 1] first.
func Ease(name string, p float64) float64 {
	p = clamp01(p)
	fn, ok := easings[name]
	if !ok {
		return p
	}
	return fn(p)
}

func HasEasing(name string) bool {
	_, ok := easings[name]
	return ok
}

func EasingNames() []string {
	return slices.Sorted(maps.Keys(easings))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
