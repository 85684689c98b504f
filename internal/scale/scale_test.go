package scale

import (
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLinearBarHeight(t *testing.T) {
	const plotHeight = 360.0
	y := NewLinear(0, 8, plotHeight, 0)

	tests := []struct {
		count  float64
		height float64
	}{
		{8, plotHeight},
		{0, 0},
		{4, plotHeight / 2},
		{2, plotHeight / 4},
	}
	for _, tt := range tests {
		if got := plotHeight - y.Map(tt.count); !almostEqual(got, tt.height) {
			t.Errorf("height(%v) = %v, expected %v", tt.count, got, tt.height)
		}
	}
}

func TestLinearDegenerateAndNaN(t *testing.T) {
	l := NewLinear(5, 5, 0, 80)
	if got := l.Map(5); got != 40 {
		t.Errorf("degenerate domain: expected range midpoint 40, got %v", got)
	}
	if got := NewLinear(0, 1, 0, 10).Map(math.NaN()); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}

func TestSqrtBubbleRadius(t *testing.T) {
	r := NewSqrt(0, 10, 0, 80)
	if got := r.Map(10); !almostEqual(got, 80) {
		t.Errorf("r(10) = %v, expected 80", got)
	}
	if got := r.Map(0); got != 0 {
		t.Errorf("r(0) = %v, expected 0", got)
	}
	if got := r.Map(2.5); !almostEqual(got, 40) {
		t.Errorf("r(2.5) = %v, expected 40", got)
	}
}

func TestMaxSkipsNaN(t *testing.T) {
	if got := Max([]float64{3, math.NaN(), 7, math.Inf(1), 1, math.Inf(-1)}); got != 7 {
		t.Errorf("Max = %v, expected 7", got)
	}
	if got := Max(nil); !math.IsNaN(got) {
		t.Errorf("Max(nil) = %v, expected NaN", got)
	}
}

func TestBand(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "a"}, 0, 100).Padding(0.2)

	if got := len(b.Domain()); got != 3 {
		t.Fatalf("expected duplicates to collapse to 3 bands, got %d", got)
	}
	// step = 100 / (3 - 0.2 + 0.4)
	step := 100 / 3.2
	if !almostEqual(b.Step(), step) {
		t.Errorf("step = %v, expected %v", b.Step(), step)
	}
	if !almostEqual(b.Bandwidth(), step*0.8) {
		t.Errorf("bandwidth = %v, expected %v", b.Bandwidth(), step*0.8)
	}
	x, ok := b.Map("a")
	if !ok || !almostEqual(x, step*0.2) {
		t.Errorf("Map(a) = %v,%v expected %v", x, ok, step*0.2)
	}
	xc, _ := b.Map("c")
	if !almostEqual(xc+b.Bandwidth()+step*0.2, 100) {
		t.Errorf("last band should end one outer padding before the range end, got %v", xc+b.Bandwidth())
	}
	if _, ok := b.Map("zzz"); ok {
		t.Errorf("unknown label must not map")
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		start, stop float64
		count       int
		expected    []float64
	}{
		{0, 8, 10, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{8, 0, 10, []float64{8, 7, 6, 5, 4, 3, 2, 1, 0}},
	}
	for _, tt := range tests {
		got := Ticks(tt.start, tt.stop, tt.count)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Ticks(%v, %v, %d) = %v, expected %v", tt.start, tt.stop, tt.count, got, tt.expected)
		}
	}
}

func TestTickFormat(t *testing.T) {
	f := NewLinear(0, 1, 0, 100).TickFormat(5)
	if got := f(0.4); got != "0.4" {
		t.Errorf("format(0.4) = %q", got)
	}
	g := NewLinear(0, 8, 0, 100).TickFormat(10)
	if got := g(3); got != "3" {
		t.Errorf("format(3) = %q", got)
	}
}
