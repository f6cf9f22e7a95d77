package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var heights = []float64{150, 152, 155, 158, 160, 161, 163, 165, 168, 170}

func TestSturges(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {10, 5}, {16, 5}, {17, 6}, {100, 8},
	}
	for _, tt := range tests {
		if got := Sturges(tt.n); got != tt.want {
			t.Errorf("Sturges(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestClassWidth(t *testing.T) {
	if w := ClassWidth(heights, 4); w != 5 {
		t.Errorf("width = %f", w)
	}
	if w := ClassWidth([]float64{3, 3, 3}, 2); w != 1 {
		t.Errorf("flat sample width = %f", w)
	}
	if w := ClassWidth(nil, 3); w != 0 {
		t.Errorf("empty width = %f", w)
	}
}

func TestTally(t *testing.T) {
	classes, err := Classes(heights, 4)
	if err != nil {
		t.Fatal(err)
	}
	got := Tally(heights, classes)
	want := []Class{
		{Lower: 150, Upper: 155, Midpoint: 152.5, Count: 2, Cumulative: 2, Relative: 0.2},
		{Lower: 155, Upper: 160, Midpoint: 157.5, Count: 2, Cumulative: 4, Relative: 0.2},
		{Lower: 160, Upper: 165, Midpoint: 162.5, Count: 3, Cumulative: 7, Relative: 0.3},
		{Lower: 165, Upper: 170, Midpoint: 167.5, Count: 3, Cumulative: 10, Relative: 0.3},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("tally (-want +got):\n%s", diff)
	}
	if MaxCount(got) != 3 {
		t.Errorf("max count = %d", MaxCount(got))
	}
	if classes[0].Count != 0 {
		t.Error("tally must not modify its input")
	}

	outside := Tally([]float64{100, 150}, classes)
	if outside[len(outside)-1].Cumulative != 1 {
		t.Error("values outside every class must be ignored")
	}
}

func TestClassesSturgesDefault(t *testing.T) {
	classes, err := Classes(heights, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 5 {
		t.Errorf("got %d classes", len(classes))
	}
	if _, err := Classes(nil, 3); !errors.Is(err, ErrEmpty) {
		t.Errorf("got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{4, 1, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 4 || s.Min != 1 || s.Max != 4 || s.Mean != 2.5 || s.Median != 2.5 {
		t.Errorf("summary: %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(5.0/3.0)) > 1e-9 {
		t.Errorf("stddev = %f", s.StdDev)
	}
}
