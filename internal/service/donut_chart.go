package service

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"math"
	"strconv"
	"time"

	"sentiviz/internal/connect"
	"sentiviz/internal/layout"
	"sentiviz/internal/model"
)

// DonutLayout - параметры кольцевой диаграммы
type DonutLayout struct {
	Width, Height float64
	Pie           layout.Pie
	// OuterInset, InnerInset - отступы внешнего и внутреннего радиуса кольца от края холста
	OuterInset, InnerInset float64
	// AngleOffset - с какого угла от начала сектора стартует анимация
	AngleOffset float64
	Duration    time.Duration
	Stagger     time.Duration
	Frames      int
}

// DefaultDonutLayout - холст 800x600, кольцо от r-70 до r-10,
// развертка с 1.1π до 3.1π
func DefaultDonutLayout() DonutLayout {
	return DonutLayout{
		Width: 800, Height: 600,
		Pie:         layout.Pie{StartAngle: 1.1 * math.Pi, EndAngle: 3.1 * math.Pi},
		OuterInset:  10,
		InnerInset:  70,
		AngleOffset: 0.1,
		Duration:    500 * time.Millisecond,
		Stagger:     500 * time.Millisecond,
		Frames:      24,
	}
}

// Radii возвращает внутренний и внешний радиус кольца
func (l DonutLayout) Radii() (float64, float64) {
	r := math.Min(l.Width, l.Height) / 2
	return r - l.InnerInset, r - l.OuterInset
}

// Arcs раскладывает строки по кольцу в исходном порядке
func (l DonutLayout) Arcs(rows []model.SentimentScore) []layout.Arc {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Score
	}
	return l.Pie.Layout(values)
}

// Tooltip форматирует HTML всплывающей подсказки сектора
func Tooltip(eng *Engine, row model.SentimentScore) string {
	return html.EscapeString(eng.translate(row.Sentiment.String())) + "<br><b>" + strconv.FormatFloat(row.Score, 'f', -1, 64) + "</b>%"
}

// AnimatedDonutChart возвращает фабрику кольцевой диаграммы. При создании
// фабрика один раз добавляет на страницу div.tooltip.
func AnimatedDonutChart(page *connect.Page, eng *Engine, lay DonutLayout) ChartFunc[model.SentimentScore] {
	page.AppendBody(`<div class="tooltip"></div>`)

	return func(ctx context.Context, selector string, rows []model.SentimentScore) error {
		if !page.Has(selector) {
			return fmt.Errorf("donut chart: %w: %s", connect.ErrMountNotFound, selector)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		token := newToken()
		filterID := "squiggle-" + token
		inner, outer := lay.Radii()

		var buf bytes.Buffer
		canvas := eng.Canvas(&buf)
		canvas.Start(lay.Width, lay.Height)
		canvas.Gtransform(translate(lay.Width/2, lay.Height/2))

		for i, a := range lay.Arcs(rows) {
			row := rows[i]
			id := fmt.Sprintf("arc-%s-%d", token, i)
			canvas.Group(attr("class", "arc"))
			canvas.Path(layout.ArcPath(inner, outer, a.StartAngle, a.EndAngle),
				attr("id", id),
				attr("visibility", "hidden"),
				attr("data-sentiment", row.Sentiment.String()),
				attr("data-tooltip", Tooltip(eng, row)),
				"fill:"+model.DonutPalette.Color(row.Sentiment)+";stroke-width:1.5;stroke:black;filter:url(#"+filterID+")")

			begin := time.Duration(i) * lay.Stagger
			reveal(canvas.Writer, id, begin)
			animateValues(canvas.Writer, id, "d", lay.sweepFrames(a, inner, outer), begin, lay.Duration)
			canvas.Gend()
		}

		canvas.Text(0, 0, eng.translate("Overall Sentiment of K-12 Teachers"),
			attr("class", "title"),
			attr("text-anchor", "middle"),
			"font-size:14px;"+fontFamily+";font-weight:800;fill:#002E72")

		squiggle(canvas, filterID)
		canvas.Gend()
		canvas.End()

		if _, err := page.Append(selector, "donut", buf.Bytes()); err != nil {
			return err
		}
		eng.Logger.Printf("donut chart drawn in %s: %d arcs", selector, len(rows))
		return nil
	}
}

// sweepFrames - ключевые кадры роста сектора от start+AngleOffset до end
func (l DonutLayout) sweepFrames(a layout.Arc, inner, outer float64) []string {
	n := max(l.Frames, 2)
	from := a.StartAngle + l.AngleOffset
	frames := make([]string, n)
	for i := range frames {
		t := easeCubicInOut(float64(i) / float64(n-1))
		end := from + (a.EndAngle-from)*t
		frames[i] = layout.ArcPath(inner, outer, a.StartAngle, end)
	}
	return frames
}
