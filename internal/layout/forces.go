package layout

import "math"

// ManyBody - взаимодействие всех узлов со всеми. Положительная сила
// притягивает, отрицательная отталкивает.
type ManyBody struct {
	Strength func(*Node) float64

	DistanceMin float64

	nodes     []*Node
	strengths []float64
	random    func() float64
}

// NewManyBody создает силу с сила(узел) = strength(узел)
func NewManyBody(strength func(*Node) float64) *ManyBody {
	return &ManyBody{Strength: strength, DistanceMin: 1}
}

func (f *ManyBody) Initialize(nodes []*Node, random func() float64) {
	f.nodes = nodes
	f.random = random
	f.strengths = make([]float64, len(nodes))
	for i, n := range nodes {
		if f.Strength == nil {
			f.strengths[i] = -30
			continue
		}
		f.strengths[i] = f.Strength(n)
	}
}

// Apply считает точные попарные взаимодействия
func (f *ManyBody) Apply(alpha float64) {
	min2 := f.DistanceMin * f.DistanceMin
	for _, n := range f.nodes {
		for _, o := range f.nodes {
			if o == n {
				continue
			}
			x := o.X - n.X
			y := o.Y - n.Y
			if x == 0 {
				x = jiggle(f.random)
			}
			if y == 0 {
				y = jiggle(f.random)
			}
			l := x*x + y*y
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			w := f.strengths[o.Index] * alpha / l
			n.VX += x * w
			n.VY += y * w
		}
	}
}

// Center сдвигает все узлы так, чтобы их центр масс совпал с точкой
type Center struct {
	X, Y     float64
	Strength float64

	nodes []*Node
}

// NewCenter создает центрирующую силу
func NewCenter(x, y float64) *Center {
	return &Center{X: x, Y: y, Strength: 1}
}

func (f *Center) Initialize(nodes []*Node, _ func() float64) { f.nodes = nodes }

func (f *Center) Apply(float64) {
	if len(f.nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}
	cnt := float64(len(f.nodes))
	sx = (sx/cnt - f.X) * f.Strength
	sy = (sy/cnt - f.Y) * f.Strength
	for _, n := range f.nodes {
		n.X -= sx
		n.Y -= sy
	}
}

// PositionY тянет узлы к горизонтали Y
type PositionY struct {
	Y        float64
	Strength float64

	nodes []*Node
}

// NewPositionY создает силу притяжения к горизонтали
func NewPositionY(y, strength float64) *PositionY {
	return &PositionY{Y: y, Strength: strength}
}

func (f *PositionY) Initialize(nodes []*Node, _ func() float64) { f.nodes = nodes }

func (f *PositionY) Apply(alpha float64) {
	for _, n := range f.nodes {
		n.VY += (f.Y - n.Y) * f.Strength * alpha
	}
}

// Collide разводит пересекающиеся круги
type Collide struct {
	Radius     func(*Node) float64
	Strength   float64
	Iterations int

	nodes  []*Node
	radii  []float64
	random func() float64
}

// NewCollide создает силу столкновений с радиусом radius(узел)
func NewCollide(radius func(*Node) float64) *Collide {
	return &Collide{Radius: radius, Strength: 1, Iterations: 1}
}

func (f *Collide) Initialize(nodes []*Node, random func() float64) {
	f.nodes = nodes
	f.random = random
	f.radii = make([]float64, len(nodes))
	for i, n := range nodes {
		r := 1.0
		if f.Radius != nil {
			r = f.Radius(n)
		}
		if math.IsNaN(r) || r < 0 {
			r = 0
		}
		f.radii[i] = r
	}
}

// Apply сравнивает прогнозируемые позиции (позиция + скорость) каждой пары
func (f *Collide) Apply(float64) {
	for k := 0; k < f.Iterations; k++ {
		for i, n := range f.nodes {
			ri := f.radii[i]
			ri2 := ri * ri
			for j := i + 1; j < len(f.nodes); j++ {
				o := f.nodes[j]
				rj := f.radii[j]
				r := ri + rj
				x := n.X + n.VX - o.X - o.VX
				y := n.Y + n.VY - o.Y - o.VY
				l := x*x + y*y
				if l >= r*r {
					continue
				}
				if x == 0 {
					x = jiggle(f.random)
					l += x * x
				}
				if y == 0 {
					y = jiggle(f.random)
					l += y * y
				}
				l = math.Sqrt(l)
				l = (r - l) / l * f.Strength
				x *= l
				y *= l
				rj2 := rj * rj
				share := 0.5
				if ri2+rj2 > 0 {
					share = rj2 / (ri2 + rj2)
				}
				n.VX += x * share
				n.VY += y * share
				o.VX -= x * (1 - share)
				o.VY -= y * (1 - share)
			}
		}
	}
}
