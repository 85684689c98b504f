package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"sentiviz/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownChart - неизвестный тип графика
var ErrUnknownChart = errors.New("unknown chart")

// Kind - тип графика
type Kind string

const (
	KindBar    Kind = "bar"
	KindBubble Kind = "bubble"
	KindDonut  Kind = "donut"
)

// Kinds - все типы графиков в порядке отображения
var Kinds = []Kind{KindBar, KindBubble, KindDonut}

// ParseKind разбирает тип графика из строки
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

// Title возвращает ключ локализации заголовка графика
func (k Kind) Title() string {
	switch k {
	case KindBar:
		return "Emotional Word Frequency"
	case KindBubble:
		return "Survey Terms"
	case KindDonut:
		return "Overall Sentiment of K-12 Teachers"
	}
	return string(k)
}

// hexColor переводит "#RGB" или "#RRGGBB" в цвет go-chart
func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return drawing.ColorFromHex(hex)
}

// RenderBarPNG рисует столбчатую диаграмму в PNG
func RenderBarPNG(eng *Engine, rows []model.WordFrequency, lay BarLayout, w io.Writer) error {
	var values []chart.Value
	for _, r := range rows {
		values = append(values, chart.Value{
			Label: r.Word,
			Value: finite(r.Count, 0),
			Style: chart.Style{
				FillColor:   hexColor(model.BarPalette.Color(r.Emotion)),
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1.5,
			},
		})
	}

	graph := chart.BarChart{
		Title:  eng.translate(KindBar.Title()),
		Width:  int(lay.Width),
		Height: int(lay.Height),
		Background: chart.Style{
			Padding: chart.Box{
				Top: 40,
			},
		},
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: lay.MaxCount},
		},
		Bars: values,
	}

	return graph.Render(chart.PNG, w)
}

// RenderDonutPNG рисует кольцевую диаграмму в PNG
func RenderDonutPNG(eng *Engine, rows []model.SentimentScore, lay DonutLayout, w io.Writer) error {
	var values []chart.Value
	for _, r := range rows {
		values = append(values, chart.Value{
			Label: eng.translate(r.Sentiment.String()),
			Value: finite(r.Score, 0),
			Style: chart.Style{
				FillColor:   hexColor(model.DonutPalette.Color(r.Sentiment)),
				StrokeColor: drawing.ColorBlack,
				FontColor:   hexColor("#002E72"),
			},
		})
	}

	graph := chart.DonutChart{
		Title:  eng.translate(KindDonut.Title()),
		Width:  int(lay.Width),
		Height: int(lay.Height),
		Values: values,
	}

	return graph.Render(chart.PNG, w)
}

// RenderBubblePNG прогоняет симуляцию и рисует итоговые позиции пузырей
// точками, радиус точки равен радиусу пузыря.
func RenderBubblePNG(ctx context.Context, eng *Engine, rows []model.SurveyTerm, lay BubbleLayout, w io.Writer) error {
	bubbles := lay.Nodes(rows, eng.Rand.Float64)
	if _, err := lay.Simulate(ctx, eng, bubbles, nil); err != nil {
		return err
	}

	xs := make([]float64, len(bubbles))
	ys := make([]float64, len(bubbles))
	var labels []chart.Value2
	for i, b := range bubbles {
		xs[i] = b.X
		ys[i] = lay.Height - b.Y // у SVG ось Y направлена вниз
		if text, _ := BubbleLabel(b.Term.Word, b.Radius); text != "" {
			labels = append(labels, chart.Value2{XValue: xs[i], YValue: ys[i], Label: text})
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    eng.translate(KindBubble.Title()),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
					return bubbles[index].Radius
				},
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return hexColor(model.BubblePalette.Color(bubbles[index].Term.Emotion))
				},
			},
		},
	}
	if len(labels) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: labels})
	}

	graph := chart.Chart{
		Title:  eng.translate(KindBubble.Title()),
		Width:  int(lay.Width),
		Height: int(lay.Height),
		XAxis:  chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: lay.Width}, Style: chart.Style{Hidden: true}},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: lay.Height}, Style: chart.Style{Hidden: true}},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}
