package model

import (
	"errors"
	"math"
	"testing"
)

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		input    string
		expected Emotion
	}{
		{"positive", EmotionPositive},
		{" Negative ", EmotionNegative},
		{"NEUTRAL", EmotionNeutral},
		{"joy", EmotionUnknown},
		{"", EmotionUnknown},
	}

	for _, tt := range tests {
		if got := ParseEmotion(tt.input); got != tt.expected {
			t.Errorf("ParseEmotion(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestPaletteColor(t *testing.T) {
	for _, e := range []Emotion{EmotionNegative, EmotionNeutral, EmotionUnknown} {
		if got := BarPalette.Color(e); got != "#002e72" {
			t.Errorf("BarPalette.Color(%v) = %s, expected negative color", e, got)
		}
		if got := BubblePalette.Color(e); got != "#e7f2ff" {
			t.Errorf("BubblePalette.Color(%v) = %s, expected negative color", e, got)
		}
	}
	if got := BarPalette.Color(EmotionPositive); got != "#EF9772" {
		t.Errorf("BarPalette positive = %s", got)
	}

	donut := map[Emotion]string{
		EmotionPositive: "#EF9772",
		EmotionNegative: "#78C1EE",
		EmotionNeutral:  "#FFF",
		EmotionUnknown:  "#FFF",
	}
	for e, want := range donut {
		if got := DonutPalette.Color(e); got != want {
			t.Errorf("DonutPalette.Color(%v) = %s, expected %s", e, got, want)
		}
	}
}

func TestDefaultSentimentScoresSumTo100(t *testing.T) {
	total := 0.0
	for _, s := range DefaultSentimentScores() {
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected validation error: %v", err)
		}
		total += s.Score
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("expected scores to sum to 100, got %v", total)
	}
}

func TestValidate(t *testing.T) {
	bad := []interface{ Validate() error }{
		&WordFrequency{Word: "", Count: 1},
		&WordFrequency{Word: "calm", Count: math.NaN()},
		&SurveyTerm{Word: "stress", Occurrence: math.Inf(1)},
		&SentimentScore{Sentiment: EmotionPositive, Score: -1},
	}
	for i, row := range bad {
		if err := row.Validate(); !errors.Is(err, ErrInvalidRow) {
			t.Errorf("row %d: expected ErrInvalidRow, got %v", i, err)
		}
	}

	good := &WordFrequency{Word: "happy", Count: 3, Emotion: EmotionPositive}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
