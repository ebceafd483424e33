package news

import "math"

// TrendingScore is the ranking signal. Engagement dominates; recency
// decays as 1/hours with a 0.1 hour clamp so fresh articles don't
// divide by near-zero.
//
//	score = 0.6*views + 0.3*shares + 0.1*(1/max(hoursOld, 0.1))
func TrendingScore(views, shares int, hoursOld float64) float64 {
	recency := 1 / math.Max(hoursOld, 0.1)
	return 0.6*float64(views) + 0.3*float64(shares) + 0.1*recency
}
