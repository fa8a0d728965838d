// Package rating computes the stored rating aggregate of a guide or business.
package rating

import "tourism/pkg/model"

// Compute averages the given published ratings. No ratings yields a zero
// average with a zero count. The average is not rounded.
func Compute(ratings []int) model.RatingSummary {
	if len(ratings) == 0 {
		return model.RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return model.RatingSummary{
		Average: float64(sum) / float64(len(ratings)),
		Count:   int64(len(ratings)),
	}
}
