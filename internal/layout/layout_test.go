package layout

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestPieDonutProportions(t *testing.T) {
	pie := Pie{StartAngle: 1.1 * math.Pi, EndAngle: 3.1 * math.Pi}
	scores := []float64{29.3, 54.0, 16.7}
	arcs := pie.Layout(scores)

	if len(arcs) != 3 {
		t.Fatalf("expected 3 arcs, got %d", len(arcs))
	}
	if arcs[0].StartAngle != pie.StartAngle {
		t.Errorf("first arc must start at the pie start angle")
	}
	if math.Abs(arcs[2].EndAngle-pie.EndAngle) > 1e-9 {
		t.Errorf("last arc must end at the pie end angle, got %v", arcs[2].EndAngle)
	}
	for i, a := range arcs {
		if a.Index != i {
			t.Errorf("arc %d: data order must be preserved, got index %d", i, a.Index)
		}
		if got := pie.Fraction(a); math.Abs(got-scores[i]/100) > 1e-9 {
			t.Errorf("arc %d: fraction %v, expected %v", i, got, scores[i]/100)
		}
	}
}

func TestPieZeroSum(t *testing.T) {
	arcs := DefaultPie().Layout([]float64{0, math.NaN(), -3})
	for _, a := range arcs {
		if a.EndAngle != a.StartAngle {
			t.Errorf("expected zero-width arc, got %+v", a)
		}
	}
}

func TestArcPath(t *testing.T) {
	d := ArcPath(230, 290, 0, math.Pi/2)
	if !strings.HasPrefix(d, "M0,-290A290,290,0,0,1,290,0L230,0A230,230,0,0,0,0,-230Z") {
		t.Errorf("unexpected quarter arc path: %s", d)
	}

	large := ArcPath(0, 100, 0, 1.5*math.Pi)
	if !strings.Contains(large, ",0,1,1,") {
		t.Errorf("expected large-arc flag for a 270 degree sector: %s", large)
	}

	ring := ArcPath(50, 100, 0, 2*math.Pi)
	if strings.Count(ring, "M") != 2 {
		t.Errorf("full turn must be drawn as two rings: %s", ring)
	}
}

func TestSimulationCoolsDown(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	nodes := make([]*Node, 8)
	for i := range nodes {
		nodes[i] = &Node{X: rnd.Float64() * 900, Y: rnd.Float64() * 800, Radius: 10 + float64(i)*5}
	}
	radius := func(n *Node) float64 { return n.Radius }

	sim := NewSimulation(rnd).
		Force("charge", NewManyBody(func(n *Node) float64 { return n.Radius * n.Radius * 0.01 })).
		Force("center", NewCenter(500, 300)).
		Force("y", NewPositionY(300, 0.03)).
		Force("collision", NewCollide(radius)).
		Nodes(nodes)

	ticks := 0
	ended := false
	sim.OnTick(func([]*Node) { ticks++ })
	sim.OnEnd(func([]*Node) { ended = true })

	n, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n != ticks || !ended {
		t.Errorf("expected tick listener per step and end listener, ticks=%d n=%d ended=%v", ticks, n, ended)
	}
	if n < 290 || n > 310 {
		t.Errorf("default cooling schedule should stop after about 300 ticks, got %d", n)
	}

	var cx, cy float64
	for _, nd := range nodes {
		cx += nd.X
		cy += nd.Y
	}
	cx /= float64(len(nodes))
	cy /= float64(len(nodes))
	if math.Abs(cx-500) > 1 || math.Abs(cy-300) > 1 {
		t.Errorf("centre force should keep the mean near (500,300), got (%v,%v)", cx, cy)
	}

	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			if d < (nodes[i].Radius+nodes[j].Radius)*0.8 {
				t.Errorf("nodes %d and %d overlap: distance %v", i, j, d)
			}
		}
	}
}

func TestSimulationHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim := NewSimulation(nil).Nodes([]*Node{{X: 1, Y: 1}})
	if _, err := sim.Run(ctx); err == nil {
		t.Errorf("expected context error")
	}
}

func TestNodesWithoutPositionGetPlaced(t *testing.T) {
	nodes := []*Node{{X: math.NaN(), Y: math.NaN()}, {X: math.NaN(), Y: 0}}
	NewSimulation(nil).Nodes(nodes)
	for i, n := range nodes {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			t.Errorf("node %d was not placed", i)
		}
	}
}
