package store

import (
	"math"
	"testing"
)

func TestMeanRatingEmptySetIsZero(t *testing.T) {
	got := meanRating(nil)
	if got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
	if math.IsNaN(got) {
		t.Fatal("empty set must not produce NaN")
	}
}

func TestMeanRatingExactMean(t *testing.T) {
	tests := []struct {
		ratings []int
		want    float64
	}{
		{[]int{5}, 5},
		{[]int{5, 3}, 4},
		{[]int{1, 2, 3, 4, 5}, 3},
		{[]int{4, 5}, 4.5},
		{[]int{1, 1, 2}, 4.0 / 3.0},
	}
	for _, tt := range tests {
		got := meanRating(tt.ratings)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("meanRating(%v) = %v, want %v", tt.ratings, got, tt.want)
		}
	}
}

func TestMeanRatingIdempotent(t *testing.T) {
	ratings := []int{2, 4, 5}
	first := meanRating(ratings)
	second := meanRating(ratings)
	if first != second {
		t.Fatalf("recompute with unchanged set diverged: %v vs %v", first, second)
	}
}

func TestMeanRatingDeleteSequence(t *testing.T) {
	// ratings [5,3] -> 4.0, drop the 3 -> 5.0, drop the rest -> 0
	if got := meanRating([]int{5, 3}); got != 4.0 {
		t.Fatalf("expected 4.0, got %v", got)
	}
	if got := meanRating([]int{5}); got != 5.0 {
		t.Fatalf("expected 5.0, got %v", got)
	}
	if got := meanRating([]int{}); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
