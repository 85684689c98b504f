package service

import (
	"context"
	"io"
	"math"

	"sentiviz/internal/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Интерактивные страницы ECharts: та же раскладка и те же цвета, но
// подсказки и анимацию рисует браузерная библиотека.

func initOpts(title string, width, height float64) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     num(width) + "px",
			Height:    num(height) + "px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	}
}

// RenderBarECharts пишет HTML страницу со столбчатой диаграммой
func RenderBarECharts(eng *Engine, rows []model.WordFrequency, lay BarLayout, w io.Writer) error {
	title := eng.translate(KindBar.Title())
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(initOpts(title, lay.Width, lay.Height),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: lay.MaxCount}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)...)

	labels := make([]string, len(rows))
	items := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.Word
		items[i] = opts.BarData{
			Name:      r.Word,
			Value:     finite(r.Count, 0),
			ItemStyle: &opts.ItemStyle{Color: model.BarPalette.Color(r.Emotion), BorderColor: "black"},
		}
	}
	bar.SetXAxis(labels).AddSeries("count", items)
	return bar.Render(w)
}

// RenderDonutECharts пишет HTML страницу с кольцевой диаграммой
func RenderDonutECharts(eng *Engine, rows []model.SentimentScore, lay DonutLayout, w io.Writer) error {
	title := eng.translate(KindDonut.Title())
	pie := charts.NewPie()
	pie.SetGlobalOptions(append(initOpts(title, lay.Width, lay.Height),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}<br><b>{c}</b>%"}),
	)...)

	items := make([]opts.PieData, len(rows))
	for i, r := range rows {
		items[i] = opts.PieData{
			Name:      eng.translate(r.Sentiment.String()),
			Value:     finite(r.Score, 0),
			ItemStyle: &opts.ItemStyle{Color: model.DonutPalette.Color(r.Sentiment), BorderColor: "black"},
		}
	}
	inner, outer := lay.Radii()
	pie.AddSeries("sentiment", items).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{num(inner), num(outer)},
		}),
	)
	return pie.Render(w)
}

// RenderBubbleECharts пишет HTML страницу с итоговыми позициями пузырей,
// по серии на каждую эмоцию
func RenderBubbleECharts(ctx context.Context, eng *Engine, rows []model.SurveyTerm, lay BubbleLayout, w io.Writer) error {
	bubbles := lay.Nodes(rows, eng.Rand.Float64)
	if _, err := lay.Simulate(ctx, eng, bubbles, nil); err != nil {
		return err
	}

	title := eng.translate(KindBubble.Title())
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(initOpts(title, lay.Width, lay.Height),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: lay.Width, Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: lay.Height, Show: opts.Bool(false)}),
	)...)

	groups := map[model.Emotion][]opts.ScatterData{}
	var order []model.Emotion
	for _, b := range bubbles {
		e := b.Term.Emotion
		if _, ok := groups[e]; !ok {
			order = append(order, e)
		}
		groups[e] = append(groups[e], opts.ScatterData{
			Name:       b.Term.Word,
			Value:      []interface{}{num(b.X), num(lay.Height - b.Y)},
			Symbol:     "circle",
			SymbolSize: int(math.Round(b.Radius * 2)),
		})
	}
	for _, e := range order {
		scatter.AddSeries(eng.translate(e.String()), groups[e],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: model.BubblePalette.Color(e), BorderColor: "black"}))
	}
	return scatter.Render(w)
}
