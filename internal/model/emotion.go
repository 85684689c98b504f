package model

import "strings"

// Emotion описывает категорию тональности строки данных
type Emotion int

const (
	EmotionUnknown Emotion = iota
	EmotionPositive
	EmotionNegative
	EmotionNeutral
)

// ParseEmotion разбирает значение колонки emotion/sentiment.
// Все, что не распознано, становится EmotionUnknown.
func ParseEmotion(s string) Emotion {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return EmotionPositive
	case "negative":
		return EmotionNegative
	case "neutral":
		return EmotionNeutral
	default:
		return EmotionUnknown
	}
}

func (e Emotion) String() string {
	switch e {
	case EmotionPositive:
		return "positive"
	case EmotionNegative:
		return "negative"
	case EmotionNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Palette сопоставляет каждой эмоции цвет заливки.
// Пустое поле и EmotionUnknown дают Fallback.
type Palette struct {
	Positive string
	Negative string
	Neutral  string
	Fallback string
}

// Color возвращает цвет для эмоции
func (p Palette) Color(e Emotion) string {
	var c string
	switch e {
	case EmotionPositive:
		c = p.Positive
	case EmotionNegative:
		c = p.Negative
	case EmotionNeutral:
		c = p.Neutral
	case EmotionUnknown:
	}
	if c == "" {
		return p.Fallback
	}
	return c
}

// Палитры графиков. У столбцов и пузырей нейтральный и неизвестный
// класс рисуются цветом негативного.
var (
	BarPalette = Palette{
		Positive: "#EF9772",
		Negative: "#002e72",
		Fallback: "#002e72",
	}
	BubblePalette = Palette{
		Positive: "#91ccf7",
		Negative: "#e7f2ff",
		Fallback: "#e7f2ff",
	}
	DonutPalette = Palette{
		Positive: "#EF9772",
		Negative: "#78C1EE",
		Neutral:  "#FFF",
		Fallback: "#FFF",
	}
)
