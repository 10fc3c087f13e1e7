package game

import (
	"math/rand/v2"
	"slices"

	"koreanvocab/internal/domain"
)

// policy decides which record comes next and when a session is over.
// Each mode carries its own pool or timer state.
type policy interface {
	next() domain.WordRecord
	answered(rec domain.WordRecord, correct bool)
	done() bool
	remaining() int
}

func newPolicy(mode domain.Mode, records []domain.WordRecord, rng *rand.Rand, timeLimit int) policy {
	switch mode {
	case domain.ModeQuiz:
		return newQuizPolicy(records, rng)
	case domain.ModeTimed:
		return &timedPolicy{endlessPolicy: newEndlessPolicy(records, rng), left: timeLimit}
	case domain.ModeFlashcard:
		return newFlashcardPolicy(records, rng)
	default:
		return newEndlessPolicy(records, rng)
	}
}

func shuffled(records []domain.WordRecord, rng *rand.Rand) []domain.WordRecord {
	out := slices.Clone(records)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// quizPolicy retires records answered correctly and puts missed ones back
// at a random position
type quizPolicy struct {
	rng  *rand.Rand
	pool []domain.WordRecord
	cur  int
}

func newQuizPolicy(records []domain.WordRecord, rng *rand.Rand) *quizPolicy {
	return &quizPolicy{rng: rng, pool: shuffled(records, rng), cur: -1}
}

func (p *quizPolicy) next() domain.WordRecord {
	p.cur = p.rng.IntN(len(p.pool))
	return p.pool[p.cur]
}

func (p *quizPolicy) answered(rec domain.WordRecord, correct bool) {
	if p.cur < 0 {
		return
	}
	p.pool = slices.Delete(p.pool, p.cur, p.cur+1)
	p.cur = -1
	if !correct {
		p.pool = slices.Insert(p.pool, p.rng.IntN(len(p.pool)+1), rec)
	}
}

func (p *quizPolicy) done() bool     { return len(p.pool) == 0 }
func (p *quizPolicy) remaining() int { return len(p.pool) }

// endlessPolicy draws from every record forever, re-rolling once on an
// immediate repeat
type endlessPolicy struct {
	rng     *rand.Rand
	records []domain.WordRecord
	last    domain.WordRecord
	hasLast bool
}

func newEndlessPolicy(records []domain.WordRecord, rng *rand.Rand) *endlessPolicy {
	return &endlessPolicy{rng: rng, records: records}
}

func (p *endlessPolicy) next() domain.WordRecord {
	rec := p.records[p.rng.IntN(len(p.records))]
	if p.hasLast && rec.SameWord(p.last) && len(p.records) > 1 {
		rec = p.records[p.rng.IntN(len(p.records))]
	}
	p.last, p.hasLast = rec, true
	return rec
}

func (p *endlessPolicy) answered(domain.WordRecord, bool) {}
func (p *endlessPolicy) done() bool                      { return false }
func (p *endlessPolicy) remaining() int                  { return -1 }

// timedPolicy is endless play against a countdown in whole seconds
type timedPolicy struct {
	*endlessPolicy
	left int
}

// tick counts one second down and reports whether time is up
func (p *timedPolicy) tick() bool {
	if p.left > 0 {
		p.left--
	}
	return p.left <= 0
}

func (p *timedPolicy) done() bool { return p.left <= 0 }

// flashcardPolicy walks the deck once, then keeps re-dealing the cards marked
// unknown until a pass has none
type flashcardPolicy struct {
	rng      *rand.Rand
	pool     []domain.WordRecord
	pos      int
	missed   []domain.WordRecord
	passes   int
	finished bool
}

func newFlashcardPolicy(records []domain.WordRecord, rng *rand.Rand) *flashcardPolicy {
	return &flashcardPolicy{rng: rng, pool: shuffled(records, rng), passes: 1}
}

func (p *flashcardPolicy) next() domain.WordRecord {
	return p.pool[p.pos]
}

func (p *flashcardPolicy) answered(rec domain.WordRecord, known bool) {
	if !known {
		p.missed = append(p.missed, rec)
	}
	p.pos++
	if p.pos < len(p.pool) {
		return
	}
	if len(p.missed) == 0 {
		p.finished = true
		return
	}
	p.pool = shuffled(p.missed, p.rng)
	p.missed = nil
	p.pos = 0
	p.passes++
}

func (p *flashcardPolicy) done() bool     { return p.finished }
func (p *flashcardPolicy) remaining() int { return len(p.pool) - p.pos }
