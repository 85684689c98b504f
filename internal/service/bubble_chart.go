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
	"sentiviz/internal/scale"
)

// BubbleLayout - параметры пузырьковой диаграммы
type BubbleLayout struct {
	Width, Height float64
	MaxRadius     float64
	// SpreadX, SpreadY - область случайных начальных позиций
	SpreadX, SpreadY float64
	ForceStrength    float64
	ChargeFactor     float64
}

// DefaultBubbleLayout - холст 1000x600, максимальный радиус 80
func DefaultBubbleLayout() BubbleLayout {
	return BubbleLayout{
		Width: 1000, Height: 600,
		MaxRadius:     80,
		SpreadX:       900,
		SpreadY:       800,
		ForceStrength: 0.03,
		ChargeFactor:  0.01,
	}
}

// Bubble - узел диаграммы: строка данных и ее положение
type Bubble struct {
	Term model.SurveyTerm
	*layout.Node
}

// RadiusScale возвращает шкалу радиусов [0, max(occurrence)] -> [0, MaxRadius]
func (l BubbleLayout) RadiusScale(rows []model.SurveyTerm) scale.Sqrt {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Occurrence
	}
	return scale.NewSqrt(0, scale.Max(values), 0, l.MaxRadius)
}

// Nodes превращает строки в узлы симуляции со случайной начальной позицией
func (l BubbleLayout) Nodes(rows []model.SurveyTerm, rnd func() float64) []Bubble {
	radius := l.RadiusScale(rows)
	out := make([]Bubble, len(rows))
	for i, r := range rows {
		out[i] = Bubble{
			Term: r,
			Node: &layout.Node{
				Radius: math.Max(0, finite(radius.Map(r.Occurrence), 0)),
				X:      rnd() * l.SpreadX,
				Y:      rnd() * l.SpreadY,
			},
		}
	}
	return out
}

// Simulate настраивает силы и прогоняет симуляцию до остывания.
// onTick вызывается после каждого шага.
func (l BubbleLayout) Simulate(ctx context.Context, eng *Engine, bubbles []Bubble, onTick func([]*layout.Node)) (int, error) {
	nodes := nodesOf(bubbles)
	sim := eng.Simulation(eng.Rand).
		Force("charge", layout.NewManyBody(func(n *layout.Node) float64 {
			return math.Pow(n.Radius, 2) * l.ChargeFactor
		})).
		Force("center", layout.NewCenter(l.Width/2, l.Height/2)).
		Force("y", layout.NewPositionY(l.Height/2, l.ForceStrength)).
		Force("collision", layout.NewCollide(func(n *layout.Node) float64 { return n.Radius })).
		Nodes(nodes)
	if onTick != nil {
		sim.OnTick(onTick)
	}
	return sim.Run(ctx)
}

// BubbleLabel возвращает подпись пузыря, обрезанную до radius/3 символов,
// и размер шрифта в пикселях. Пустая подпись не рисуется.
func BubbleLabel(word string, radius float64) (string, int) {
	limit := int(math.Floor(radius / 3))
	runes := []rune(word)
	if limit < len(runes) {
		runes = runes[:max(limit, 0)]
	}
	if len(runes) == 0 {
		return "", 0
	}
	size := radius / 3
	size *= 10 / float64(len(runes))
	size++
	return string(runes), int(math.Round(size))
}

// AnimatedBubbleChart возвращает фабрику пузырьковой диаграммы. Позиции
// каждого шага симуляции записываются как ключевые кадры cx/cy.
func AnimatedBubbleChart(page *connect.Page, eng *Engine, lay BubbleLayout) ChartFunc[model.SurveyTerm] {
	return func(ctx context.Context, selector string, rows []model.SurveyTerm) error {
		if !page.Has(selector) {
			return fmt.Errorf("bubble chart: %w: %s", connect.ErrMountNotFound, selector)
		}

		bubbles := lay.Nodes(rows, eng.Rand.Float64)
		frames := make([][][2]float64, 0, 300)
		record := func(nodes []*layout.Node) {
			frame := make([][2]float64, len(nodes))
			for i, n := range nodes {
				frame[i] = [2]float64{n.X, n.Y}
			}
			frames = append(frames, frame)
		}
		record(nodesOf(bubbles))

		ticks, err := lay.Simulate(ctx, eng, bubbles, record)
		if err != nil {
			return fmt.Errorf("bubble chart: %w", err)
		}
		frames = sampleFrames(frames, eng.MaxFrames)
		dur := time.Duration(ticks) * eng.FrameInterval

		token := newToken()
		filterID := "squiggle-" + token

		var buf bytes.Buffer
		canvas := eng.Canvas(&buf)
		canvas.Start(lay.Width, lay.Height)

		for i, b := range bubbles {
			canvas.Group(attr("class", "node"))
			circleID := fmt.Sprintf("bubble-%s-%d", token, i)
			canvas.Circle(b.X, b.Y, b.Radius,
				attr("id", circleID),
				attr("class", "bubble"),
				attr("data-emotion", b.Term.Emotion.String()),
				attr("data-tooltip", html.EscapeString(b.Term.Word)+"<br><b>"+strconv.FormatFloat(b.Term.Occurrence, 'f', -1, 64)+"</b>"),
				"fill:"+model.BubblePalette.Color(b.Term.Emotion)+";stroke-width:1;stroke:black;filter:url(#"+filterID+")")
			animateValues(canvas.Writer, circleID, "cx", coords(frames, i, 0), 0, dur)
			animateValues(canvas.Writer, circleID, "cy", coords(frames, i, 1), 0, dur)

			if text, size := BubbleLabel(b.Term.Word, b.Radius); text != "" {
				labelID := fmt.Sprintf("label-%s-%d", token, i)
				canvas.Text(b.X, b.Y, text,
					attr("id", labelID),
					attr("dy", ".3em"),
					"text-anchor:middle;font-size:"+strconv.Itoa(size)+"px;"+fontFamily)
				animateValues(canvas.Writer, labelID, "x", coords(frames, i, 0), 0, dur)
				animateValues(canvas.Writer, labelID, "y", coords(frames, i, 1), 0, dur)
			}
			canvas.Gend()
		}
		squiggle(canvas, filterID)
		canvas.End()

		if _, err := page.Append(selector, "bubble", buf.Bytes()); err != nil {
			return err
		}
		eng.Logger.Printf("bubble chart drawn in %s: %d bubbles, %d ticks", selector, len(bubbles), ticks)
		return nil
	}
}

func nodesOf(bubbles []Bubble) []*layout.Node {
	nodes := make([]*layout.Node, len(bubbles))
	for i, b := range bubbles {
		nodes[i] = b.Node
	}
	return nodes
}

// sampleFrames прореживает кадры до limit, сохраняя первый и последний
func sampleFrames(frames [][][2]float64, limit int) [][][2]float64 {
	if limit < 2 || len(frames) <= limit {
		return frames
	}
	out := make([][][2]float64, 0, limit)
	step := float64(len(frames)-1) / float64(limit-1)
	for i := 0; i < limit; i++ {
		out = append(out, frames[int(math.Round(float64(i)*step))])
	}
	return out
}

func coords(frames [][][2]float64, node, axis int) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = num(f[node][axis])
	}
	return out
}
