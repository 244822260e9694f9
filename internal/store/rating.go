package store

// meanRating computes the arithmetic mean of review ratings. An empty set
// yields exactly 0, never NaN.
func meanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, rating := range ratings {
		total += rating
	}
	return float64(total) / float64(len(ratings))
}
