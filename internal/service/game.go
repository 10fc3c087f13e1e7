package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"koreanvocab/internal/catalog"
	"koreanvocab/internal/domain"
	"koreanvocab/internal/game"
	"koreanvocab/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrNoSession       = errors.New("no game in progress")
	ErrUnknownCategory = errors.New("unknown category")
)

// TimeoutFunc receives the results of a timed session that ran out of time
type TimeoutFunc func(userID int64, results domain.Results)

// GameSettings tune the game service
type GameSettings struct {
	TimeLimit    int           // timed mode seconds, 0 means game.DefaultTimeLimit
	TickInterval time.Duration // one countdown second, 0 means time.Second
}

// Turn is what the player sees after an action
type Turn struct {
	Mode      domain.Mode
	Prompt    *game.Prompt
	Outcome   *game.Outcome
	Results   *domain.Results // set once the session is over
	Score     int
	Remaining int
	TimeLeft  int
}

type player struct {
	mu       sync.Mutex
	sel      domain.Selection
	catalog  *domain.Catalog
	session  *game.Session
	stopTick chan struct{}
}

// GameService keeps one selection and game per user
type GameService struct {
	loader     catalog.Loader
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	settings   GameSettings
	logger     *zap.Logger
	opts       []game.Option

	onTimeout TimeoutFunc

	mu      sync.Mutex
	players map[int64]*player
}

// NewGameService creates a new game service
func NewGameService(
	loader catalog.Loader,
	userRepo repository.UserRepository,
	resultRepo repository.ResultRepository,
	settings GameSettings,
	logger *zap.Logger,
	opts ...game.Option,
) *GameService {
	if settings.TimeLimit <= 0 {
		settings.TimeLimit = game.DefaultTimeLimit
	}
	if settings.TickInterval <= 0 {
		settings.TickInterval = time.Second
	}
	return &GameService{
		loader:     loader,
		userRepo:   userRepo,
		resultRepo: resultRepo,
		settings:   settings,
		logger:     logger,
		opts:       opts,
		players:    make(map[int64]*player),
	}
}

// OnTimeout sets the callback for timed sessions that end on their own
func (s *GameService) OnTimeout(fn TimeoutFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTimeout = fn
}

// player returns the user's state, creating it from stored preferences on
// first use. The preferences query runs outside s.mu.
func (s *GameService) player(userID int64) *player {
	s.mu.Lock()
	p, ok := s.players[userID]
	s.mu.Unlock()
	if ok {
		return p
	}

	prefs, err := s.userRepo.GetPreferences(userID)
	if err != nil {
		s.logger.Warn("Failed to load preferences, using defaults",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		prefs = domain.DefaultPreferences()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another request for the same user may have won the race
	if p, ok := s.players[userID]; ok {
		return p
	}
	p = &player{sel: domain.Selection{Direction: prefs.Direction, Mode: prefs.Mode}}
	s.players[userID] = p
	return p
}

// SelectBin loads the bin's catalog and clears the category selection.
// Selecting the current bin again changes nothing. On a load failure the
// previous catalog stays in place.
func (s *GameService) SelectBin(ctx context.Context, userID int64, bin domain.Bin) (domain.Selection, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sel.Bin == bin && p.catalog != nil {
		return cloneSelection(p.sel), nil
	}

	cat, err := s.loader.Load(ctx, bin)
	if err != nil {
		s.logger.Error("Failed to load catalog",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("bin", string(bin)),
		)
		return cloneSelection(p.sel), err
	}

	p.catalog = cat
	p.sel.Bin = bin
	p.sel.Clear()
	return cloneSelection(p.sel), nil
}

// ToggleCategory flips the category at index i of the loaded catalog
func (s *GameService) ToggleCategory(userID int64, i int) (domain.Selection, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog == nil {
		return cloneSelection(p.sel), noBinError()
	}
	if i < 0 || i >= len(p.catalog.Categories) {
		return cloneSelection(p.sel), fmt.Errorf("%w: index %d", ErrUnknownCategory, i)
	}
	p.sel.ToggleCategory(p.catalog.Categories[i])
	return cloneSelection(p.sel), nil
}

// SelectAllCategories selects every category of the loaded catalog
func (s *GameService) SelectAllCategories(userID int64) (domain.Selection, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog == nil {
		return cloneSelection(p.sel), noBinError()
	}
	p.sel.SelectAll(p.catalog.Categories)
	return cloneSelection(p.sel), nil
}

// ClearCategories deselects every category
func (s *GameService) ClearCategories(userID int64) domain.Selection {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sel.Clear()
	return cloneSelection(p.sel)
}

// SetDirection changes the prompt language for the next game
func (s *GameService) SetDirection(userID int64, dir domain.Direction) domain.Selection {
	p := s.player(userID)
	p.mu.Lock()
	p.sel.Direction = dir
	sel := cloneSelection(p.sel)
	p.mu.Unlock()

	s.savePreferences(userID, sel)
	return sel
}

// SetMode changes the mode for the next game
func (s *GameService) SetMode(userID int64, mode domain.Mode) domain.Selection {
	p := s.player(userID)
	p.mu.Lock()
	p.sel.Mode = mode
	sel := cloneSelection(p.sel)
	p.mu.Unlock()

	s.savePreferences(userID, sel)
	return sel
}

// Selection returns a copy of the user's current selection
func (s *GameService) Selection(userID int64) domain.Selection {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneSelection(p.sel)
}

// Categories returns the categories of the loaded catalog in manifest order
func (s *GameService) Categories(userID int64) []string {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog == nil {
		return nil
	}
	return append([]string(nil), p.catalog.Categories...)
}

// Start begins a new game from the current selection, ending any game in progress
func (s *GameService) Start(userID int64) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.sel.Validate(); err != nil {
		return nil, err
	}
	if p.catalog == nil {
		return nil, noBinError()
	}

	s.stopLocked(p)

	sess, err := game.NewSession(p.catalog, game.Config{
		Bin:        p.sel.Bin,
		Mode:       p.sel.Mode,
		Direction:  p.sel.Direction,
		Categories: append([]string(nil), p.sel.Categories...),
		TimeLimit:  s.settings.TimeLimit,
	}, s.opts...)
	if err != nil {
		return nil, err
	}

	prompt, err := sess.Next()
	if err != nil {
		return nil, err
	}

	p.session = sess
	if sess.Mode() == domain.ModeTimed {
		stop := make(chan struct{})
		p.stopTick = stop
		go s.runTimer(userID, p, sess, stop)
	}

	s.logger.Info("Game started",
		zap.Int64("user_id", userID),
		zap.String("bin", string(p.sel.Bin)),
		zap.String("mode", string(p.sel.Mode)),
		zap.Strings("categories", p.sel.Categories),
	)

	return s.turn(sess, prompt, nil), nil
}

// Current returns the prompt waiting for an answer
func (s *GameService) Current(userID int64) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil || p.session.Current() == nil {
		return nil, ErrNoSession
	}
	return s.turn(p.session, p.session.Current(), nil), nil
}

// Answer submits the option at index i and moves on to the next prompt
func (s *GameService) Answer(userID int64, i int) (*Turn, error) {
	return s.resolve(userID, func(sess *game.Session) (game.Outcome, error) {
		return sess.SubmitOption(i)
	})
}

// Mark records whether the player knew the current flashcard
func (s *GameService) Mark(userID int64, known bool) (*Turn, error) {
	return s.resolve(userID, func(sess *game.Session) (game.Outcome, error) {
		return sess.Mark(known)
	})
}

// Flip turns the current flashcard over
func (s *GameService) Flip(userID int64) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil, ErrNoSession
	}
	prompt, err := p.session.Flip()
	if err != nil {
		return nil, err
	}
	return s.turn(p.session, prompt, nil), nil
}

// ReturnToMenu ends the game in progress. It returns the results of the
// ended game, or nil when nothing was running.
func (s *GameService) ReturnToMenu(userID int64) *domain.Results {
	p := s.player(userID)
	p.mu.Lock()

	if p.session == nil {
		p.mu.Unlock()
		return nil
	}

	sess := p.session
	s.stopLocked(p)
	res := sess.End()
	p.mu.Unlock()

	s.saveResult(userID, sess.Config(), res)
	return &res
}

// Close stops every running countdown
func (s *GameService) Close() {
	s.mu.Lock()
	players := make([]*player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	s.mu.Unlock()

	for _, p := range players {
		p.mu.Lock()
		s.stopLocked(p)
		p.mu.Unlock()
	}
}

func (s *GameService) resolve(userID int64, submit func(*game.Session) (game.Outcome, error)) (*Turn, error) {
	p := s.player(userID)
	p.mu.Lock()

	sess := p.session
	if sess == nil {
		p.mu.Unlock()
		return nil, ErrNoSession
	}

	out, err := submit(sess)
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}

	if !out.Finished {
		prompt, err := sess.Next()
		if err == nil {
			t := s.turn(sess, prompt, &out)
			p.mu.Unlock()
			return t, nil
		}
		if !errors.Is(err, game.ErrSessionOver) {
			p.mu.Unlock()
			return nil, err
		}
	}

	s.stopLocked(p)
	res := sess.End()
	t := s.turn(sess, nil, &out)
	t.Results = &res
	p.mu.Unlock()

	s.saveResult(userID, sess.Config(), res)
	return t, nil
}

// runTimer ticks the countdown of one timed session. Each tick re-checks
// under the player lock that the session is still the live one.
func (s *GameService) runTimer(userID int64, p *player, sess *game.Session, stop <-chan struct{}) {
	ticker := time.NewTicker(s.settings.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.session != sess {
			p.mu.Unlock()
			return
		}
		if !sess.Tick() {
			p.mu.Unlock()
			continue
		}

		res := sess.End()
		p.session = nil
		p.stopTick = nil
		p.mu.Unlock()

		s.logger.Info("Timed game finished",
			zap.Int64("user_id", userID),
			zap.Int("score", res.Score),
		)
		s.saveResult(userID, sess.Config(), res)

		s.mu.Lock()
		fn := s.onTimeout
		s.mu.Unlock()
		if fn != nil {
			fn(userID, res)
		}
		return
	}
}

// stopLocked cancels the countdown and drops the session. p.mu must be held.
func (s *GameService) stopLocked(p *player) {
	if p.stopTick != nil {
		close(p.stopTick)
		p.stopTick = nil
	}
	p.session = nil
}

func (s *GameService) turn(sess *game.Session, prompt *game.Prompt, out *game.Outcome) *Turn {
	return &Turn{
		Mode:      sess.Mode(),
		Prompt:    prompt,
		Outcome:   out,
		Score:     sess.Score(),
		Remaining: sess.Remaining(),
		TimeLeft:  sess.TimeLeft(),
	}
}

func (s *GameService) saveResult(userID int64, cfg game.Config, res domain.Results) {
	if res.Total == 0 {
		return
	}
	err := s.resultRepo.SaveResult(&domain.SessionResult{
		UserID:     userID,
		Bin:        cfg.Bin,
		Mode:       res.Mode,
		Direction:  cfg.Direction,
		Categories: cfg.Categories,
		Score:      res.Score,
		Correct:    res.Correct,
		Total:      res.Total,
		Accuracy:   res.Accuracy(),
		Passes:     res.Passes,
	})
	if err != nil {
		s.logger.Error("Failed to save result",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("bin", string(cfg.Bin)),
		)
	}
}

func (s *GameService) savePreferences(userID int64, sel domain.Selection) {
	prefs := domain.Preferences{Direction: sel.Direction, Mode: sel.Mode}
	if err := s.userRepo.SavePreferences(userID, prefs); err != nil {
		s.logger.Warn("Failed to save preferences",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}
}

func noBinError() error {
	return &domain.ValidationError{Field: "bin", Reason: "select a content type (Alphabet, Words, or Phrases) before starting"}
}

func cloneSelection(sel domain.Selection) domain.Selection {
	sel.Categories = append([]string(nil), sel.Categories...)
	return sel
}
