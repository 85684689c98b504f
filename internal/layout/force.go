package layout

import (
	"context"
	"math"
	"math/rand"
)

// Node - узел силовой симуляции
type Node struct {
	Index  int
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Force изменяет скорости или позиции узлов на очередном шаге
type Force interface {
	Initialize(nodes []*Node, random func() float64)
	Apply(alpha float64)
}

// Simulation - итеративный решатель с охлаждением alpha.
// Симуляция останавливается, когда alpha опускается ниже AlphaMin.
type Simulation struct {
	nodes []*Node
	names []string
	force map[string]Force

	Alpha         float64
	AlphaMin      float64
	AlphaDecay    float64
	AlphaTarget   float64
	// VelocityDecay - доля скорости, теряемая на каждом шаге
	VelocityDecay float64

	random func() float64
	onTick []func([]*Node)
	onEnd  []func([]*Node)
}

// NewSimulation создает симуляцию с параметрами охлаждения по умолчанию:
// около 300 шагов до остановки.
func NewSimulation(rnd *rand.Rand) *Simulation {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	alphaMin := 0.001
	return &Simulation{
		force:         make(map[string]Force),
		Alpha:         1,
		AlphaMin:      alphaMin,
		AlphaDecay:    1 - math.Pow(alphaMin, 1.0/300),
		VelocityDecay: 0.4,
		random:        rnd.Float64,
	}
}

// Nodes задает узлы и инициализирует зарегистрированные силы
func (s *Simulation) Nodes(nodes []*Node) *Simulation {
	s.nodes = nodes
	for i, n := range nodes {
		n.Index = i
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			// спираль Ферма, как у узлов без начальной позиции
			radius := 10 * math.Sqrt(0.5+float64(i))
			angle := float64(i) * math.Pi * (3 - math.Sqrt(5))
			n.X = radius * math.Cos(angle)
			n.Y = radius * math.Sin(angle)
		}
		if math.IsNaN(n.VX) || math.IsNaN(n.VY) {
			n.VX, n.VY = 0, 0
		}
	}
	for _, name := range s.names {
		s.force[name].Initialize(s.nodes, s.random)
	}
	return s
}

// Force регистрирует силу под именем. Силы применяются в порядке регистрации.
func (s *Simulation) Force(name string, f Force) *Simulation {
	if _, ok := s.force[name]; !ok {
		s.names = append(s.names, name)
	}
	s.force[name] = f
	if s.nodes != nil {
		f.Initialize(s.nodes, s.random)
	}
	return s
}

// OnTick добавляет обработчик, вызываемый после каждого шага
func (s *Simulation) OnTick(fn func([]*Node)) *Simulation {
	s.onTick = append(s.onTick, fn)
	return s
}

// OnEnd добавляет обработчик остановки симуляции
func (s *Simulation) OnEnd(fn func([]*Node)) *Simulation {
	s.onEnd = append(s.onEnd, fn)
	return s
}

// Step выполняет один шаг симуляции
func (s *Simulation) Step() {
	s.Alpha += (s.AlphaTarget - s.Alpha) * s.AlphaDecay
	for _, name := range s.names {
		s.force[name].Apply(s.Alpha)
	}
	keep := 1 - s.VelocityDecay
	for _, n := range s.nodes {
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
}

// Run выполняет шаги до остывания или отмены контекста и возвращает
// количество выполненных шагов.
func (s *Simulation) Run(ctx context.Context) (int, error) {
	ticks := 0
	for s.Alpha >= s.AlphaMin {
		if err := ctx.Err(); err != nil {
			return ticks, err
		}
		s.Step()
		ticks++
		for _, fn := range s.onTick {
			fn(s.nodes)
		}
	}
	for _, fn := range s.onEnd {
		fn(s.nodes)
	}
	return ticks, nil
}

func jiggle(random func() float64) float64 {
	return (random() - 0.5) * 1e-6
}
