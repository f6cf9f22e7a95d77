// Package document converts scenes to and from the compact save format.
//
// Every field equal to its entry in Defaults is left out on export and put
// back on import. Both directions read the same table through elide and
// restore, so a field cannot be omitted without also being restored.
package document

import (
	"github.com/tallyframe/tallyframe/lib/effects"
)

const Version = "1.0"

type Document struct {
	Version string     `json:"version" yaml:"version"`
	Chart   Chart      `json:"chart" yaml:"chart"`
	Tables  []TableDoc `json:"tables,omitempty" yaml:"tables,omitempty"`
}

type Chart struct {
	Root     *LayerDoc    `json:"root" yaml:"root"`
	Timeline *TimelineDoc `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Config   *ConfigDoc   `json:"config,omitempty" yaml:"config,omitempty"`
}

type LayerDoc struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type" yaml:"type"`
	Visible  *bool          `json:"visible,omitempty" yaml:"visible,omitempty"`
	Order    *int           `json:"order,omitempty" yaml:"order,omitempty"`
	ParentID *string        `json:"p_id,omitempty" yaml:"p_id,omitempty"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	Children []*LayerDoc    `json:"children,omitempty" yaml:"children,omitempty"`
}

type AnimationDoc struct {
	LayerID       string          `json:"layerId" yaml:"layerId"`
	StartTime     *float64        `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	Duration      *float64        `json:"duration,omitempty" yaml:"duration,omitempty"`
	Effect        effects.Spec    `json:"effect,omitempty" yaml:"effect,omitempty"`
	EffectOptions effects.Options `json:"effectOptions,omitempty" yaml:"effectOptions,omitempty"`
	Easing        *string         `json:"easing,omitempty" yaml:"easing,omitempty"`
}

// TimelineDoc carries the schedule and the playhead. Duration is derived
// from the animations and only written for readers of the file; import
// recomputes it.
type TimelineDoc struct {
	Animations  []AnimationDoc `json:"animations,omitempty" yaml:"animations,omitempty"`
	CurrentTime *float64       `json:"currentTime,omitempty" yaml:"currentTime,omitempty"`
	Duration    float64        `json:"duration,omitempty" yaml:"duration,omitempty"`
}

type AxisDoc struct {
	XLabel string  `json:"xLabel,omitempty" yaml:"xLabel,omitempty"`
	YLabel string  `json:"yLabel,omitempty" yaml:"yLabel,omitempty"`
	XMin   float64 `json:"xMin,omitempty" yaml:"xMin,omitempty"`
	XMax   float64 `json:"xMax,omitempty" yaml:"xMax,omitempty"`
	YMin   float64 `json:"yMin,omitempty" yaml:"yMin,omitempty"`
	YMax   float64 `json:"yMax,omitempty" yaml:"yMax,omitempty"`
	Step   float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

type ConfigDoc struct {
	Axis        *AxisDoc        `json:"axis,omitempty" yaml:"axis,omitempty"`
	Features    map[string]bool `json:"features,omitempty" yaml:"features,omitempty"`
	ColorPreset *string         `json:"colorPreset,omitempty" yaml:"colorPreset,omitempty"`
	Width       *int            `json:"width,omitempty" yaml:"width,omitempty"`
	Height      *int            `json:"height,omitempty" yaml:"height,omitempty"`
}

type TableDoc struct {
	ID       string       `json:"id" yaml:"id"`
	CanvasID string       `json:"canvasId,omitempty" yaml:"canvasId,omitempty"`
	Root     *LayerDoc    `json:"root" yaml:"root"`
	Timeline *TimelineDoc `json:"timeline,omitempty" yaml:"timeline,omitempty"`
}

// Defaults holds the value every elided field takes on import. A layer's
// p_id has no entry: its default is the id of the layer that contains it.
var Defaults = struct {
	Visible     bool
	Order       int
	StartTime   float64
	Duration    float64
	Effect      effects.Spec
	Easing      string
	CurrentTime float64
	Axis        AxisDoc
	ColorPreset string
	Width       int
	Height      int
}{
	Visible:     true,
	Order:       0,
	StartTime:   0,
	Duration:    1000,
	Effect:      effects.Single(effects.Auto),
	Easing:      effects.EasingLinear,
	CurrentTime: 0,
	ColorPreset: "classic",
	Width:       960,
	Height:      540,
}

func elide[T comparable](v T, def T) *T {
	if v == def {
		return nil
	}
	return &v
}

func restore[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
