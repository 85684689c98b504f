package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"sentiviz/internal/connect"
	"sentiviz/internal/model"
	"sentiviz/internal/scale"

	svg "github.com/ajstarks/svgo/float"
)

// BarLayout - размеры столбчатой диаграммы
type BarLayout struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
	// MaxCount - верхняя граница оси Y
	MaxCount float64
	Padding  float64
	Duration time.Duration
	Stagger  time.Duration
}

// DefaultBarLayout - холст 800x600 с областью построения 730x360
func DefaultBarLayout() BarLayout {
	return BarLayout{
		Width: 800, Height: 600,
		Top: 150, Right: 30, Bottom: 90, Left: 40,
		MaxCount: 8,
		Padding:  0.2,
		Duration: time.Second,
		Stagger:  100 * time.Millisecond,
	}
}

// PlotSize возвращает размер области построения
func (l BarLayout) PlotSize() (float64, float64) {
	return l.Width - l.Left - l.Right, l.Height - l.Top - l.Bottom
}

// Scales возвращает шкалы X и Y для набора строк
func (l BarLayout) Scales(rows []model.WordFrequency) (*scale.Band, scale.Linear) {
	width, height := l.PlotSize()
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Word
	}
	x := scale.NewBand(labels, 0, width+1).Padding(l.Padding)
	y := scale.NewLinear(0, l.MaxCount, height, 0)
	return x, y
}

// BarGeometry - итоговое положение столбца после анимации
type BarGeometry struct {
	X, Y, Width, Height float64
	Fill                string
}

// Bars вычисляет итоговую геометрию столбцов. Нечисловой count дает
// столбец нулевой высоты.
func (l BarLayout) Bars(rows []model.WordFrequency) []BarGeometry {
	x, y := l.Scales(rows)
	_, height := l.PlotSize()
	out := make([]BarGeometry, len(rows))
	for i, r := range rows {
		bx, _ := x.Map(r.Word)
		top := finite(y.Map(r.Count), height)
		out[i] = BarGeometry{
			X:      bx,
			Y:      top,
			Width:  x.Bandwidth(),
			Height: height - top,
			Fill:   model.BarPalette.Color(r.Emotion),
		}
	}
	return out
}

// AnimatedBarChart возвращает фабрику столбчатой диаграммы частот слов
func AnimatedBarChart(page *connect.Page, eng *Engine, lay BarLayout) ChartFunc[model.WordFrequency] {
	return func(ctx context.Context, selector string, rows []model.WordFrequency) error {
		if !page.Has(selector) {
			return fmt.Errorf("bar chart: %w: %s", connect.ErrMountNotFound, selector)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		token := newToken()
		width, height := lay.PlotSize()
		x, y := lay.Scales(rows)
		filterID := "squiggle-" + token

		var buf bytes.Buffer
		canvas := eng.Canvas(&buf)
		canvas.Start(lay.Width, lay.Height)
		canvas.Gtransform(translate(lay.Left, lay.Top))

		bottomAxis(canvas, x, width, height)
		leftAxis(canvas, y)
		squiggle(canvas, filterID)

		for i, bar := range lay.Bars(rows) {
			id := fmt.Sprintf("bar-%s-%d", token, i)
			canvas.Rect(bar.X, height, bar.Width, 0,
				attr("id", id),
				attr("class", "bar"),
				attr("data-emotion", rows[i].Emotion.String()),
				"fill:"+bar.Fill+";stroke:black;stroke-width:1.5;filter:url(#"+filterID+")")
			delay := time.Duration(i) * lay.Stagger
			animate(canvas.Writer, id, "y", height, bar.Y, delay, lay.Duration)
			animate(canvas.Writer, id, "height", 0, bar.Height, delay, lay.Duration)
		}

		canvas.Text(80, -60, eng.translate("Emotional Word Frequency"),
			attr("class", "title"),
			attr("text-anchor", "middle"),
			"font-size:14px;"+fontFamily+";font-weight:800;fill:#002E72")

		canvas.Gend()
		canvas.End()

		if _, err := page.Append(selector, "bar", buf.Bytes()); err != nil {
			return err
		}

		// легенда рисуется, только если на странице есть контейнер .legend
		if page.Has(connect.LegendSelector) {
			if _, err := page.Append(connect.LegendSelector, "legend", barLegend(eng, width)); err != nil {
				return err
			}
		}
		eng.Logger.Printf("bar chart drawn in %s: %d bars", selector, len(rows))
		return nil
	}
}

// LegendOffsets возвращает сдвиг по X каждой подписи легенды: каждая
// следующая смещается на длину предыдущей плюс offset.
func LegendOffsets(labels []string, offset float64) []float64 {
	out := make([]float64, len(labels))
	acc := 0.0
	for i, l := range labels {
		out[i] = acc
		acc += float64(utf8.RuneCountInString(l)) + offset
	}
	return out
}

func barLegend(eng *Engine, plotWidth float64) []byte {
	entries := []struct {
		label   string
		emotion model.Emotion
	}{
		{eng.translate("Positive"), model.EmotionPositive},
		{eng.translate("Negative"), model.EmotionNegative},
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	offsets := LegendOffsets(labels, 80)

	var buf bytes.Buffer
	canvas := eng.Canvas(&buf)
	canvas.Start(200, 30, "style=\"position:absolute;left:"+num(plotWidth/2)+"px;top:20px\"")
	for i, e := range entries {
		canvas.Gtransform(translate(offsets[i], 10))
		canvas.Rect(0, 0, 10, 10, attr("class", "legend"), "fill:"+model.BarPalette.Color(e.emotion)+";stroke:#000000")
		canvas.Text(20, 10, e.label, attr("class", "textselected"),
			"text-anchor:start;font-size:14px;font-weight:400;fill:#002E72;"+fontFamily)
		canvas.Gend()
	}
	canvas.End()
	return buf.Bytes()
}

// bottomAxis рисует ось категорий с подписями под углом -45 градусов
func bottomAxis(canvas *svg.SVG, x *scale.Band, width, height float64) {
	canvas.Gtransform(translate(0, height))
	canvas.Path("M0.5,6V0.5H"+num(width+1.5)+"V6", attr("class", "domain"), "fill:none;stroke:currentColor")
	half := x.Bandwidth() / 2
	for _, label := range x.Domain() {
		pos, _ := x.Map(label)
		canvas.Gtransform(translate(pos+half, 0))
		canvas.Line(0, 0, 0, 6, "stroke:currentColor")
		canvas.Text(0, 9, label,
			attr("dy", "0.71em"),
			attr("transform", "translate(-10,0)rotate(-45)"),
			"text-anchor:end;"+fontFamily+";font-size:14px;color:#002E72;fill:#002E72;text-transform:capitalize;font-weight:400")
		canvas.Gend()
	}
	canvas.Gend()
}

// leftAxis рисует ось значений без линии домена
func leftAxis(canvas *svg.SVG, y scale.Linear) {
	canvas.Group(attr("class", "axis"), "font-size:14px")
	format := y.TickFormat(10)
	for _, v := range y.Ticks(10) {
		pos := y.Map(v)
		if math.IsNaN(pos) {
			continue
		}
		canvas.Gtransform(translate(0, pos))
		canvas.Line(0, 0, -6, 0, "stroke:currentColor")
		canvas.Text(-9, 0, format(v), attr("dy", "0.32em"), "text-anchor:end;fill:currentColor")
		canvas.Gend()
	}
	canvas.Gend()
}
