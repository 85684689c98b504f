package service

import (
	"context"
	"io"
	"log"
	"math/rand"
	"time"

	"sentiviz/internal/layout"
	"sentiviz/pkg/localization"

	svg "github.com/ajstarks/svgo/float"
)

// ChartFunc - фабрика графика: один вызов рисует одну поверхность в точке
// монтирования selector. Повторный вызов добавляет еще одну поверхность.
type ChartFunc[T any] func(ctx context.Context, selector string, rows []T) error

// Engine - зависимости, которые фабрики графиков получают явно
type Engine struct {
	// Canvas создает SVG холст поверх буфера поверхности
	Canvas func(w io.Writer) *svg.SVG
	// Simulation создает силовую симуляцию для пузырьков
	Simulation func(rnd *rand.Rand) *layout.Simulation
	Rand       *rand.Rand
	Locale     *localization.Locale
	Logger     *log.Logger
	// FrameInterval - длительность одного шага симуляции в анимации
	FrameInterval time.Duration
	// MaxFrames ограничивает число ключевых кадров анимации
	MaxFrames int
}

// NewEngine создает Engine с SVG холстом svgo и встроенной симуляцией.
// seed == 0 означает случайное начальное состояние.
func NewEngine(locale *localization.Locale, logger *log.Logger, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		Canvas:        svg.New,
		Simulation:    layout.NewSimulation,
		Rand:          rand.New(rand.NewSource(seed)),
		Locale:        locale,
		Logger:        logger,
		FrameInterval: time.Second / 60,
		MaxFrames:     60,
	}
}

func (e *Engine) translate(key string) string {
	return e.Locale.Translate(key)
}
