package domain

import (
	"fmt"
	"math"
	"time"
)

// Mode selects how prompts are chosen and when a session ends
type Mode string

const (
	ModeQuiz      Mode = "quiz"
	ModeEndless   Mode = "endless"
	ModeTimed     Mode = "timed"
	ModeFlashcard Mode = "flashcard"
)

// Modes lists the modes in menu order
var Modes = []Mode{ModeQuiz, ModeEndless, ModeTimed, ModeFlashcard}

// ParseMode converts a stored or callback value into a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Direction selects which language is shown as the prompt
type Direction string

const (
	// DirectionKorean shows Korean and asks for English
	DirectionKorean Direction = "korean"
	// DirectionEnglish shows English and asks for Korean
	DirectionEnglish Direction = "english"
)

// ParseDirection converts a stored or callback value into a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionKorean, DirectionEnglish:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Results is the end-of-session summary
type Results struct {
	Mode     Mode
	Score    int
	Correct  int
	Total    int
	Passes   int // flashcard only
	Duration time.Duration
}

// Accuracy returns the rounded percentage of correct answers, 0 when nothing was answered
func (r Results) Accuracy() int {
	return Accuracy(r.Correct, r.Total)
}

// Accuracy returns round(100*correct/total), or 0 when total is 0
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// SessionResult is a finished session as stored for history
type SessionResult struct {
	ID         int
	UserID     int64
	Bin        Bin
	Mode       Mode
	Direction  Direction
	Categories []string
	Score      int
	Correct    int
	Total      int
	Accuracy   int
	Passes     int
	FinishedAt time.Time
}

// BestScore is the highest score a user reached in a mode
type BestScore struct {
	Mode  Mode
	Score int
	Games int
}
