package runtime

import "iter"

// relativePosition returns (i+1)/count for the first pair of seq whose item
// matches, i being the oldest-first index. The scan order is whatever seq
// yields, which is how callers choose between first and last occurrence.
func relativePosition[T any](seq iter.Seq2[int, T], count int, match func(T) bool) float64 {
	if count == 0 {
		return 0
	}
	for i, item := range seq {
		if match(item) {
			return float64(i+1) / float64(count)
		}
	}
	return 0
}
