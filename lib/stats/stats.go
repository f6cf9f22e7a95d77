// Package stats buckets a sample into classes for frequency tables and
// histograms.
package stats

import (
	"errors"
	"math"
	"slices"
)

var ErrEmpty = errors.New("no values")

// Class is one bucket of a frequency distribution. Lower is inclusive,
// Upper is exclusive except for the last class.
type Class struct {
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Count      int     `json:"count"`
	Midpoint   float64 `json:"midpoint"`
	Relative   float64 `json:"relative"`
	Cumulative int     `json:"cumulative"`
}

type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Sturges returns the class count suggested by Sturges' rule.
func Sturges(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(1 + math.Log2(float64(n))))
}

// ClassWidth is the range of values split into k classes. A sample with no
// spread gets width 1.
func ClassWidth(values []float64, k int) float64 {
	if len(values) == 0 || k <= 0 {
		return 0
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if hi == lo {
		return 1
	}
	return (hi - lo) / float64(k)
}

// Classes returns k empty classes spanning values. k <= 0 picks the count
// with Sturges' rule.
func Classes(values []float64, k int) ([]Class, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	if k <= 0 {
		k = Sturges(len(values))
	}
	w := ClassWidth(values, k)
	lo := slices.Min(values)
	out := make([]Class, k)
	for i := range out {
		lower := lo + float64(i)*w
		out[i] = Class{
			Lower:    lower,
			Upper:    lower + w,
			Midpoint: lower + w/2,
		}
	}
	return out, nil
}

// Tally counts values into a copy of classes and fills in the relative and
// cumulative frequencies. Values outside every class are ignored.
func Tally(values []float64, classes []Class) []Class {
	out := slices.Clone(classes)
	for i := range out {
		out[i].Count = 0
	}
	for _, v := range values {
		if i := classIndex(out, v); i >= 0 {
			out[i].Count++
		}
	}
	total := 0
	for i := range out {
		total += out[i].Count
		out[i].Cumulative = total
	}
	for i := range out {
		if total > 0 {
			out[i].Relative = float64(out[i].Count) / float64(total)
		}
	}
	return out
}

func classIndex(classes []Class, v float64) int {
	last := len(classes) - 1
	for i, c := range classes {
		if v >= c.Lower && (v < c.Upper || (i == last && v <= c.Upper)) {
			return i
		}
	}
	return -1
}

// MaxCount is the largest class count, the height a histogram scales to.
func MaxCount(classes []Class) int {
	m := 0
	for _, c := range classes {
		m = max(m, c.Count)
	}
	return m
}

func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmpty
	}
	sorted := slices.Sorted(slices.Values(values))
	n := len(sorted)
	s := Summary{N: n, Min: sorted[0], Max: sorted[n-1]}
	for _, v := range sorted {
		s.Mean += v
	}
	s.Mean /= float64(n)
	if n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	for _, v := range sorted {
		s.StdDev += (v - s.Mean) * (v - s.Mean)
	}
	if n > 1 {
		s.StdDev = math.Sqrt(s.StdDev / float64(n-1))
	} else {
		s.StdDev = 0
	}
	return s, nil
}
