package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRow возвращается из Validate для некорректных строк
var ErrInvalidRow = errors.New("invalid row")

// WordFrequency представляет строку частотного словаря для столбчатой диаграммы
type WordFrequency struct {
	Word    string  `json:"words"`
	Count   float64 `json:"count"`
	Emotion Emotion `json:"emotion"`
}

// Validate проверяет корректность строки
func (w *WordFrequency) Validate() error {
	if strings.TrimSpace(w.Word) == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidRow)
	}
	if !isFinite(w.Count) {
		return fmt.Errorf("%w: count of %q is not a number", ErrInvalidRow, w.Word)
	}
	return nil
}

// SurveyTerm представляет термин опроса для пузырьковой диаграммы
type SurveyTerm struct {
	Word       string  `json:"word"`
	Occurrence float64 `json:"occurrence"`
	Emotion    Emotion `json:"emotion"`
}

// Validate проверяет корректность строки
func (s *SurveyTerm) Validate() error {
	if strings.TrimSpace(s.Word) == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidRow)
	}
	if !isFinite(s.Occurrence) {
		return fmt.Errorf("%w: occurrence of %q is not a number", ErrInvalidRow, s.Word)
	}
	return nil
}

// SentimentScore - доля ответов с данной тональностью, в процентах
type SentimentScore struct {
	Sentiment Emotion `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Validate проверяет корректность строки
func (s *SentimentScore) Validate() error {
	if !isFinite(s.Score) || s.Score < 0 {
		return fmt.Errorf("%w: score %v for %s", ErrInvalidRow, s.Score, s.Sentiment)
	}
	return nil
}

// DefaultSentimentScores возвращает встроенный набор данных кольцевой диаграммы
func DefaultSentimentScores() []SentimentScore {
	return []SentimentScore{
		{Sentiment: EmotionNeutral, Score: 29.3},
		{Sentiment: EmotionPositive, Score: 54.0},
		{Sentiment: EmotionNegative, Score: 16.7},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
