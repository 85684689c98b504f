// Package layout содержит раскладки, которые графики получают через Engine:
// круговую раскладку, генератор дуг и силовую симуляцию.
package layout

import (
	"math"
	"strconv"
	"strings"
)

const tau = 2 * math.Pi

// Arc - сектор круговой раскладки
type Arc struct {
	Index      int
	Value      float64
	StartAngle float64
	EndAngle   float64
}

// Pie раскладывает значения по окружности в исходном порядке.
// Углы отсчитываются по часовой стрелке от "12 часов".
type Pie struct {
	StartAngle float64
	EndAngle   float64
	PadAngle   float64
}

// DefaultPie охватывает полный круг
func DefaultPie() Pie {
	return Pie{StartAngle: 0, EndAngle: tau}
}

// Layout вычисляет секторы. Нулевые, отрицательные и нечисловые значения
// дают секторы нулевой ширины.
func (p Pie) Layout(values []float64) []Arc {
	n := len(values)
	sum := 0.0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}

	da := math.Min(tau, math.Max(-tau, p.EndAngle-p.StartAngle))
	pa := math.Min(math.Abs(da)/float64(max(n, 1)), p.PadAngle)
	if da < 0 {
		pa = -pa
	}
	k := 0.0
	if sum > 0 {
		k = (da - float64(n)*pa) / sum
	}

	arcs := make([]Arc, n)
	a0 := p.StartAngle
	for i, v := range values {
		w := 0.0
		if v > 0 {
			w = v * k
		}
		a1 := a0 + w + pa
		arcs[i] = Arc{Index: i, Value: v, StartAngle: a0, EndAngle: a1}
		a0 = a1
	}
	return arcs
}

// Fraction возвращает долю полного оборота раскладки, занятую сектором
func (p Pie) Fraction(a Arc) float64 {
	da := p.EndAngle - p.StartAngle
	if da == 0 {
		return 0
	}
	return (a.EndAngle - a.StartAngle) / da
}

// ArcPath строит данные SVG path для кольцевого сектора.
// При inner == 0 получается обычный сектор круга.
func ArcPath(inner, outer, a0, a1 float64) string {
	if outer < inner {
		inner, outer = outer, inner
	}
	da := math.Abs(a1 - a0)
	if outer <= 0 || math.IsNaN(da) {
		return "M0,0Z"
	}

	var b strings.Builder
	if da >= tau-1e-9 {
		// полный круг: две полуокружности, иначе дуга вырождается
		writeRing(&b, outer, 1)
		if inner > 0 {
			writeRing(&b, inner, 0)
		}
		return b.String()
	}

	sweep := 1
	if a1 < a0 {
		sweep = 0
	}
	large := 0
	if da > math.Pi {
		large = 1
	}

	ox0, oy0 := point(outer, a0)
	ox1, oy1 := point(outer, a1)
	b.WriteString("M" + num(ox0) + "," + num(oy0))
	b.WriteString("A" + num(outer) + "," + num(outer) + ",0," + strconv.Itoa(large) + "," + strconv.Itoa(sweep) + "," + num(ox1) + "," + num(oy1))
	if inner > 0 {
		ix1, iy1 := point(inner, a1)
		ix0, iy0 := point(inner, a0)
		b.WriteString("L" + num(ix1) + "," + num(iy1))
		b.WriteString("A" + num(inner) + "," + num(inner) + ",0," + strconv.Itoa(large) + "," + strconv.Itoa(1-sweep) + "," + num(ix0) + "," + num(iy0))
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

func writeRing(b *strings.Builder, r float64, sweep int) {
	s := strconv.Itoa(sweep)
	b.WriteString("M0," + num(-r))
	b.WriteString("A" + num(r) + "," + num(r) + ",0,1," + s + ",0," + num(r))
	b.WriteString("A" + num(r) + "," + num(r) + ",0,1," + s + ",0," + num(-r))
	b.WriteString("Z")
}

func point(r, a float64) (float64, float64) {
	return r * math.Sin(a), -r * math.Cos(a)
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // убираем -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
