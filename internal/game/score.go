package game

import (
	"math"
	"time"
)

const (
	// BasePoints is awarded for every correct answer
	BasePoints = 10
	// MaxTimeBonus is the bonus for answering within the first second
	MaxTimeBonus = 5
)

// Points is what an answer given after elapsed is worth.
// The bonus loses one point per whole second and never goes below zero.
func Points(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	bonus := MaxTimeBonus - int(math.Floor(elapsed.Seconds()))
	if bonus < 0 {
		bonus = 0
	}
	return BasePoints + bonus
}

// applyScore adds points for a correct answer or deducts them for a wrong one,
// keeping the total at zero or above
func applyScore(score, points int, correct bool) int {
	if correct {
		return score + points
	}
	score -= points
	if score < 0 {
		return 0
	}
	return score
}
