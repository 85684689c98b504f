// Package scale переводит значения данных в пиксели.
package scale

import (
	"math"
	"strconv"
)

// Linear - непрерывная линейная шкала
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear создает линейную шкалу
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map переводит значение домена в значение диапазона.
// Для вырожденного домена возвращается середина диапазона.
func (l Linear) Map(v float64) float64 {
	return interpolate(l.Range, normalize(l.Domain, v))
}

// Ticks возвращает "круглые" значения делений оси
func (l Linear) Ticks(count int) []float64 {
	return Ticks(l.Domain[0], l.Domain[1], count)
}

// TickFormat форматирует деление с точностью шага
func (l Linear) TickFormat(count int) func(float64) string {
	step := math.Abs(TickStep(l.Domain[0], l.Domain[1], count))
	precision := 0
	if step > 0 && step < 1 {
		precision = int(math.Max(0, -math.Floor(math.Log10(step))))
	}
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}

func normalize(domain [2]float64, v float64) float64 {
	span := domain[1] - domain[0]
	if span == 0 || math.IsNaN(span) {
		if math.IsNaN(span) {
			return math.NaN()
		}
		return 0.5
	}
	return (v - domain[0]) / span
}

func interpolate(r [2]float64, t float64) float64 {
	return r[0]*(1-t) + r[1]*t
}
