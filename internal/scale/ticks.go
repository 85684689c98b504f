package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec подбирает шаг вида 1, 2 или 5 * 10^k.
// Отрицательный inc означает шаг 1/-inc, так дробные деления
// считаются без накопления ошибки.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks возвращает примерно count делений между start и stop включительно
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if !(i2 >= i1) || math.IsInf(i1, 0) || math.IsInf(i2, 0) {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		if inc < 0 {
			v = (i1 + float64(i)) / -inc
		} else {
			v = (i1 + float64(i)) * inc
		}
		if reverse {
			ticks[n-1-i] = v
		} else {
			ticks[i] = v
		}
	}
	return ticks
}

// TickStep возвращает шаг делений, используемый Ticks
func TickStep(start, stop float64, count int) float64 {
	if start == stop || count <= 0 {
		return 0
	}
	if stop < start {
		start, stop = stop, start
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}
