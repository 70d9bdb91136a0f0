package main

import (
	"testing"

	"contribhub/internal/domain"
)

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   domain.Difficulty
	}{
		{"good first issue", []string{"bug", "good first issue"}, domain.DifficultyBeginner},
		{"case insensitive", []string{"Good First Issue"}, domain.DifficultyBeginner},
		{"help wanted", []string{"help wanted", "docs"}, domain.DifficultyIntermediate},
		{"beginner wins over help wanted", []string{"help wanted", "good first issue"}, domain.DifficultyBeginner},
		{"no signal", []string{"bug", "p1"}, domain.DifficultyUnknown},
		{"no labels", nil, domain.DifficultyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := difficultyFor(tt.labels); got != tt.want {
				t.Errorf("difficultyFor(%v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}
