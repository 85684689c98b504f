package scale

import "math"

// Sqrt - степенная шкала с показателем 0.5.
// Площадь круга, построенного по ней, пропорциональна значению.
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
}

// NewSqrt создает шкалу квадратного корня
func NewSqrt(d0, d1, r0, r1 float64) Sqrt {
	return Sqrt{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map переводит значение домена в значение диапазона
func (s Sqrt) Map(v float64) float64 {
	d := [2]float64{signedSqrt(s.Domain[0]), signedSqrt(s.Domain[1])}
	return interpolate(s.Range, normalize(d, signedSqrt(v)))
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// Max возвращает максимум конечных значений, NaN и бесконечности пропускаются.
// Для пустого набора возвращается NaN.
func Max(values []float64) float64 {
	max := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}
