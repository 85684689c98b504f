package service

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	svg "github.com/ajstarks/svgo/float"
)

const fontFamily = "font-family:Open Sans, sans-serif"

// cubicInOut - кривая смягчения переходов по умолчанию
const cubicInOutSpline = "0.645 0.045 0.355 1"

// newToken возвращает короткий префикс, делающий id элементов уникальными
// при повторных вызовах фабрики на одной странице
func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// squiggle добавляет фильтр "нарисовано от руки"
func squiggle(canvas *svg.SVG, id string) {
	canvas.Def()
	canvas.Filter(id)
	canvas.FeTurbulence(svg.Filterspec{Result: "noise"}, "turbulence", 0.01, 0.01, 3, 0, false)
	canvas.FeDisplacementMap(svg.Filterspec{In: "SourceGraphic", In2: "noise"}, 4, "R", "G")
	canvas.Fend()
	canvas.DefEnd()
}

// animate пишет переход атрибута элемента id от from к to
func animate(w io.Writer, id, attr string, from, to float64, begin, dur time.Duration) {
	fmt.Fprintf(w, `<animate xlink:href="#%s" attributeName="%s" from="%s" to="%s" begin="%s" dur="%s" calcMode="spline" keyTimes="0;1" keySplines="%s" fill="freeze"/>`+"\n",
		id, attr, num(from), num(to), seconds(begin), seconds(dur), cubicInOutSpline)
}

// animateValues пишет анимацию по ключевым кадрам
func animateValues(w io.Writer, id, attr string, values []string, begin, dur time.Duration) {
	if len(values) < 2 {
		return
	}
	fmt.Fprintf(w, `<animate xlink:href="#%s" attributeName="%s" values="%s" begin="%s" dur="%s" calcMode="linear" fill="freeze"/>`+"\n",
		id, attr, strings.Join(values, ";"), seconds(begin), seconds(dur))
}

// reveal делает скрытый элемент видимым в момент begin
func reveal(w io.Writer, id string, begin time.Duration) {
	fmt.Fprintf(w, `<set xlink:href="#%s" attributeName="visibility" to="visible" begin="%s" fill="freeze"/>`+"\n", id, seconds(begin))
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// finite заменяет NaN и бесконечности значением fallback
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// easeCubicInOut повторяет кривую cubicInOutSpline для ключевых кадров
func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
