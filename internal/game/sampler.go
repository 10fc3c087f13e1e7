package game

import (
	"math/rand/v2"

	"koreanvocab/internal/domain"
)

// OptionCount is the number of incorrect choices shown next to the answer
const OptionCount = 3

// Field extracts the text a record contributes to a prompt or an option
type Field func(domain.WordRecord) string

// PromptField returns the field shown as the prompt for a direction
func PromptField(dir domain.Direction) Field {
	if dir == domain.DirectionEnglish {
		return func(w domain.WordRecord) string { return w.English }
	}
	return func(w domain.WordRecord) string { return w.Korean }
}

// AnswerField returns the field answer options are written in.
// Alphabet entries answer with their pronunciation when they carry one.
func AnswerField(bin domain.Bin, dir domain.Direction) Field {
	if dir == domain.DirectionEnglish {
		if bin == domain.BinAlphabet {
			return func(w domain.WordRecord) string {
				if w.KoreanPronunciation != "" {
					return w.KoreanPronunciation
				}
				return w.Korean
			}
		}
		return func(w domain.WordRecord) string { return w.Korean }
	}
	if bin == domain.BinAlphabet {
		return func(w domain.WordRecord) string {
			if w.EnglishPronunciation != "" {
				return w.EnglishPronunciation
			}
			return w.English
		}
	}
	return func(w domain.WordRecord) string { return w.English }
}

// Sampler picks incorrect answer options
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler drawing from rng
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Options returns up to OptionCount distinct values of field, none equal to the
// correct record's value. With sameCategory set, the first pass only considers
// records from the correct record's category. When that pass comes up short the
// rest is drawn from the distinct values of the whole pool; fewer than
// OptionCount values are returned when the pool has no more distinct values.
func (s *Sampler) Options(correct domain.WordRecord, pool []domain.WordRecord, field Field, sameCategory bool) []string {
	want := field(correct)
	used := map[string]bool{want: true, "": true}
	chosen := make([]string, 0, OptionCount)

	candidates := make([]domain.WordRecord, 0, len(pool))
	for _, w := range pool {
		if used[field(w)] {
			continue
		}
		if sameCategory && w.Category != correct.Category {
			continue
		}
		candidates = append(candidates, w)
	}

	for len(chosen) < OptionCount && len(candidates) > 0 {
		i := s.rng.IntN(len(candidates))
		v := field(candidates[i])
		last := len(candidates) - 1
		candidates[i] = candidates[last]
		candidates = candidates[:last]
		if used[v] {
			continue
		}
		used[v] = true
		chosen = append(chosen, v)
	}
	if len(chosen) == OptionCount {
		return chosen
	}

	var rest []string
	for _, w := range pool {
		v := field(w)
		if used[v] {
			continue
		}
		used[v] = true
		rest = append(rest, v)
	}
	s.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	for _, v := range rest {
		if len(chosen) == OptionCount {
			break
		}
		chosen = append(chosen, v)
	}
	return chosen
}
