package effects

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Options carries effect parameters. When several effects are composed,
// an entry keyed by an effect name holding a map overrides the flat
// options for that effect only.
type Options map[string]any

// For returns the options seen by the named effect.
func (o Options) For(name string) Options {
	sub, ok := o[name]
	if !ok {
		return o
	}
	var nested map[string]any
	switch v := sub.(type) {
	case Options:
		nested = v
	case map[string]any:
		nested = v
	default:
		return o
	}
	merged := make(Options, len(o)+len(nested))
	maps.Copy(merged, o)
	maps.Copy(merged, nested)
	return merged
}

func (o Options) Float(key string, fallback float64) float64 {
	if f, ok := Number(o[key]); ok {
		return f
	}
	return fallback
}

// Number reads a numeric payload value the way encoders leave it: float64
// from JSON, unsigned or signed integers from YAML, int from Go callers.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func (o Options) String(key string, fallback string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Spec names one effect or an ordered list of effects. Encoded as a plain
// string when it holds a single name.
type Spec []string

func Single(name string) Spec {
	return Spec{name}
}

func (s Spec) String() string {
	return strings.Join(s, "+")
}

func (s Spec) IsAuto() bool {
	return len(s) == 0 || (len(s) == 1 && s[0] == Auto)
}

func (s Spec) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON leaves s nil for null and for empty names, so the field
// falls back to its default.
func (s *Spec) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = specOf(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("effect must be a name or a list of names: %w", err)
	}
	*s = specOf(many...)
	return nil
}

func (s Spec) MarshalYAML() (interface{}, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

func (s *Spec) UnmarshalYAML(b []byte) error {
	var one string
	if err := yaml.Unmarshal(b, &one); err == nil {
		*s = specOf(one)
		return nil
	}
	var many []string
	if err := yaml.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("effect must be a name or a list of names: %w", err)
	}
	*s = specOf(many...)
	return nil
}

func specOf(names ...string) Spec {
	var s Spec
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s = append(s, n)
		}
	}
	return s
}
