package scale

import "math"

// Band - порядковая шкала, делящая диапазон на равные полосы
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64

	step      float64
	bandwidth float64
	positions []float64
}

// NewBand создает шкалу полос. Повторяющиеся метки домена схлопываются
// в одну полосу, порядок первого появления сохраняется.
func NewBand(domain []string, r0, r1 float64) *Band {
	b := &Band{index: make(map[string]int), r0: r0, r1: r1, align: 0.5}
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}
	b.rescale()
	return b
}

// Padding задает одинаковый внутренний и внешний отступ
func (b *Band) Padding(p float64) *Band {
	b.paddingInner = math.Min(1, p)
	b.paddingOuter = p
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := len(b.domain)
	start, stop := b.r0, b.r1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	b.step = (stop - start) / math.Max(1, float64(n)-b.paddingInner+b.paddingOuter*2)
	start += (stop - start - b.step*(float64(n)-b.paddingInner)) * b.align
	b.bandwidth = b.step * (1 - b.paddingInner)

	b.positions = make([]float64, n)
	for i := range b.positions {
		b.positions[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			b.positions[i], b.positions[j] = b.positions[j], b.positions[i]
		}
	}
}

// Map возвращает левую границу полосы метки
func (b *Band) Map(label string) (float64, bool) {
	i, ok := b.index[label]
	if !ok {
		return math.NaN(), false
	}
	return b.positions[i], true
}

// Bandwidth возвращает ширину полосы
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step возвращает расстояние между началами соседних полос
func (b *Band) Step() float64 { return b.step }

// Domain возвращает метки без повторов
func (b *Band) Domain() []string { return append([]string(nil), b.domain...) }
