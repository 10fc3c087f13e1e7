// Package game holds the vocabulary game engine: option sampling, the four
// play modes and scoring. It knows nothing about how prompts are displayed.
// A Session is not safe for concurrent use; callers serialize access.
package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"koreanvocab/internal/domain"
)

// DefaultTimeLimit is the timed mode countdown in seconds
const DefaultTimeLimit = 60

var (
	ErrSessionOver   = errors.New("session is over")
	ErrNoPrompt      = errors.New("no prompt is waiting for an answer")
	ErrWrongMode     = errors.New("operation not available in this mode")
	ErrUnknownOption = errors.New("option out of range")
)

// Config is fixed when a session starts
type Config struct {
	Bin        domain.Bin
	Mode       domain.Mode
	Direction  domain.Direction
	Categories []string
	TimeLimit  int // seconds, timed mode only
}

// Prompt is one turn as shown to the player
type Prompt struct {
	Record    domain.WordRecord
	Text      string
	Answer    string
	Options   []string // empty for flashcards
	Audio     string
	NameAudio string
	Flipped   bool // flashcards only
	Turn      int
}

// Outcome describes the effect of one answer or flashcard mark
type Outcome struct {
	Correct  bool
	Expected string
	Points   int
	Score    int
	Finished bool
}

// Option customizes a session
type Option func(*Session)

// WithRand makes every random choice come from rng
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock replaces time.Now for answer timing
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is one game from start to results
type Session struct {
	cfg         Config
	records     []domain.WordRecord
	policy      policy
	sampler     *Sampler
	rng         *rand.Rand
	now         func() time.Time
	promptField Field
	answerField Field

	current   *Prompt
	shownAt   time.Time
	turn      int
	score     int
	correct   int
	total     int
	startedAt time.Time
	endedAt   time.Time
	ended     bool
}

// NewSession starts a game over the selected categories of cat
func NewSession(cat *domain.Catalog, cfg Config, opts ...Option) (*Session, error) {
	if cat == nil {
		return nil, &domain.ValidationError{Field: "bin", Reason: "select a content type (Alphabet, Words, or Phrases) before starting"}
	}
	sel := domain.Selection{Bin: cfg.Bin, Categories: cfg.Categories}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if _, err := domain.ParseMode(string(cfg.Mode)); err != nil {
		return nil, &domain.ValidationError{Field: "mode", Reason: err.Error()}
	}
	if cfg.Direction == "" {
		cfg.Direction = domain.DirectionKorean
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}

	records := cat.Records(cfg.Categories)
	if len(records) == 0 {
		return nil, domain.ErrEmptyPool
	}

	s := &Session{
		cfg:         cfg,
		records:     records,
		now:         time.Now,
		promptField: PromptField(cfg.Direction),
		answerField: AnswerField(cfg.Bin, cfg.Direction),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.sampler = NewSampler(s.rng)
	s.policy = newPolicy(cfg.Mode, records, s.rng, cfg.TimeLimit)
	s.startedAt = s.now()
	return s, nil
}

// Config returns the settings the session started with
func (s *Session) Config() Config { return s.cfg }

// Mode returns the session mode
func (s *Session) Mode() domain.Mode { return s.cfg.Mode }

// Ended reports whether the session reached its results
func (s *Session) Ended() bool { return s.ended }

// Score returns the running score
func (s *Session) Score() int { return s.score }

// Remaining is the pool size for quiz and flashcard modes, -1 otherwise
func (s *Session) Remaining() int { return s.policy.remaining() }

// TimeLeft is the countdown in seconds for timed mode, -1 otherwise
func (s *Session) TimeLeft() int {
	if p, ok := s.policy.(*timedPolicy); ok {
		return p.left
	}
	return -1
}

// Current returns a copy of the prompt waiting for an answer, or nil
func (s *Session) Current() *Prompt {
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// Next moves to a new prompt. It returns ErrSessionOver once the mode has
// nothing left to show.
func (s *Session) Next() (*Prompt, error) {
	if s.ended {
		return nil, ErrSessionOver
	}
	if s.policy.done() {
		s.finish()
		return nil, ErrSessionOver
	}

	rec := s.policy.next()
	s.turn++
	p := &Prompt{
		Record: rec,
		Text:   s.promptField(rec),
		Answer: s.answerField(rec),
		Turn:   s.turn,
	}
	if s.cfg.Direction == domain.DirectionEnglish {
		p.Audio, p.NameAudio = rec.AudioEn, rec.AudioEnName
	} else {
		p.Audio, p.NameAudio = rec.AudioKo, rec.AudioKoName
	}
	if s.cfg.Mode != domain.ModeFlashcard {
		wrong := s.sampler.Options(rec, s.records, s.answerField, s.cfg.Bin == domain.BinAlphabet)
		options := append([]string{p.Answer}, wrong...)
		s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		p.Options = options
	}

	s.current = p
	s.shownAt = s.now()
	return s.Current(), nil
}

// SubmitOption answers with the option at index i of the current prompt
func (s *Session) SubmitOption(i int) (Outcome, error) {
	if s.ended {
		return Outcome{}, ErrSessionOver
	}
	if s.current == nil {
		return Outcome{}, ErrNoPrompt
	}
	if i < 0 || i >= len(s.current.Options) {
		return Outcome{}, ErrUnknownOption
	}
	return s.SubmitAnswer(s.current.Options[i])
}

// SubmitAnswer scores choice against the current prompt
func (s *Session) SubmitAnswer(choice string) (Outcome, error) {
	if s.ended {
		return Outcome{}, ErrSessionOver
	}
	if s.cfg.Mode == domain.ModeFlashcard {
		return Outcome{}, ErrWrongMode
	}
	if s.current == nil {
		return Outcome{}, ErrNoPrompt
	}

	cur := s.current
	s.current = nil
	correct := choice == cur.Answer
	points := Points(s.now().Sub(s.shownAt))

	s.total++
	if correct {
		s.correct++
	}
	s.score = applyScore(s.score, points, correct)
	s.policy.answered(cur.Record, correct)

	out := Outcome{Correct: correct, Expected: cur.Answer, Points: points, Score: s.score}
	if s.policy.done() {
		s.finish()
		out.Finished = true
	}
	return out, nil
}

// Flip turns the current flashcard over
func (s *Session) Flip() (*Prompt, error) {
	if s.ended {
		return nil, ErrSessionOver
	}
	if s.cfg.Mode != domain.ModeFlashcard {
		return nil, ErrWrongMode
	}
	if s.current == nil {
		return nil, ErrNoPrompt
	}
	s.current.Flipped = !s.current.Flipped
	return s.Current(), nil
}

// Mark records whether the player knew the current flashcard. Unknown cards
// come back in the next pass.
func (s *Session) Mark(known bool) (Outcome, error) {
	if s.ended {
		return Outcome{}, ErrSessionOver
	}
	if s.cfg.Mode != domain.ModeFlashcard {
		return Outcome{}, ErrWrongMode
	}
	if s.current == nil {
		return Outcome{}, ErrNoPrompt
	}

	cur := s.current
	s.current = nil
	s.total++
	if known {
		s.correct++
	}
	s.policy.answered(cur.Record, known)

	out := Outcome{Correct: known, Expected: cur.Answer}
	if s.policy.done() {
		s.finish()
		out.Finished = true
	}
	return out, nil
}

// Tick advances the timed mode countdown by one second and reports whether
// the session is over. Other modes ignore ticks.
func (s *Session) Tick() bool {
	p, ok := s.policy.(*timedPolicy)
	if !ok {
		return s.ended
	}
	if s.ended {
		return true
	}
	if p.tick() {
		s.finish()
		return true
	}
	return false
}

// End stops the session and returns its results. Calling it again returns
// the same results.
func (s *Session) End() domain.Results {
	s.finish()
	return s.Results()
}

// Results summarizes the session so far
func (s *Session) Results() domain.Results {
	end := s.endedAt
	if !s.ended {
		end = s.now()
	}
	r := domain.Results{
		Mode:     s.cfg.Mode,
		Score:    s.score,
		Correct:  s.correct,
		Total:    s.total,
		Duration: end.Sub(s.startedAt),
	}
	if p, ok := s.policy.(*flashcardPolicy); ok {
		r.Passes = p.passes
	}
	return r
}

func (s *Session) finish() {
	if s.ended {
		return
	}
	s.ended = true
	s.current = nil
	s.endedAt = s.now()
}
