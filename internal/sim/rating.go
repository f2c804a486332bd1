package sim

import "math"

const (
	NeutralRating  = 1.0
	ZeroKillRating = 0.3
	RatingFloor    = 0.5
	ratingKDWeight = 1.5
)

// PerformanceRating scores a player's net kill differential relative to the
// number of rounds played. No rounds yields a neutral 1.0, no kills a fixed
// 0.3, and everything else is floored at 0.5.
func PerformanceRating(kills, deaths, totalRounds int) float64 {
	if totalRounds <= 0 {
		return NeutralRating
	}
	if kills == 0 {
		return ZeroKillRating
	}
	r := ratingKDWeight*float64(kills-deaths)/float64(totalRounds) + 1.0
	return math.Max(RatingFloor, r)
}

func assignRatings(totalRounds int, teams ...*Team) {
	for _, t := range teams {
		for _, p := range t.Players {
			p.PerformanceRating = PerformanceRating(p.Kills, p.Deaths, totalRounds)
		}
	}
}
