package handler

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/game"
	"koreanvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const catalogTimeout = 15 * time.Second

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// A double tap edits the same content twice
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback acknowledges callbacks no button handler claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", cleanCallbackData(callback.Data)),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond(&tele.CallbackResponse{Text: "This button has expired, use /menu"})
}

// handleBin loads a content type and shows its categories
func (h *Handler) handleBin(c tele.Context) error {
	userID := c.Sender().ID

	bin, err := domain.ParseBin(cleanCallbackData(c.Data()))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown content type"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
	defer cancel()

	sel, err := h.gameService.SelectBin(ctx, userID, bin)
	if err != nil {
		var loadErr *domain.LoadError
		if errors.As(err, &loadErr) {
			return h.alert(c, "Error loading "+string(bin)+" words. Please try again later.")
		}
		h.logger.Error("Failed to select bin", zap.Error(err), zap.Int64("user_id", userID))
		return h.alert(c, "Something went wrong. Please try again.")
	}

	return h.showSetup(c, sel)
}

// handleCategory toggles one category
func (h *Handler) handleCategory(c tele.Context) error {
	i, err := parseIndex(c.Data())
	if err != nil {
		return c.Respond()
	}
	sel, err := h.gameService.ToggleCategory(c.Sender().ID, i)
	if err != nil {
		return h.setupError(c, err)
	}
	return h.showSetup(c, sel)
}

func (h *Handler) handleAll(c tele.Context) error {
	sel, err := h.gameService.SelectAllCategories(c.Sender().ID)
	if err != nil {
		return h.setupError(c, err)
	}
	return h.showSetup(c, sel)
}

func (h *Handler) handleNone(c tele.Context) error {
	return h.showSetup(c, h.gameService.ClearCategories(c.Sender().ID))
}

func (h *Handler) handleDirection(c tele.Context) error {
	dir, err := domain.ParseDirection(cleanCallbackData(c.Data()))
	if err != nil {
		return c.Respond()
	}
	return h.showSetup(c, h.gameService.SetDirection(c.Sender().ID, dir))
}

func (h *Handler) handleMode(c tele.Context) error {
	mode, err := domain.ParseMode(cleanCallbackData(c.Data()))
	if err != nil {
		return c.Respond()
	}
	return h.showSetup(c, h.gameService.SetMode(c.Sender().ID, mode))
}

// handleStartGame starts a game from the current selection
func (h *Handler) handleStartGame(c tele.Context) error {
	userID := c.Sender().ID

	turn, err := h.gameService.Start(userID)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return h.alert(c, vErr.Reason)
		case errors.Is(err, domain.ErrEmptyPool):
			return h.alert(c, "No words available in the selected categories.")
		}
		h.logger.Error("Failed to start game", zap.Error(err), zap.Int64("user_id", userID))
		return h.alert(c, "Something went wrong. Please try again.")
	}

	return h.showTurn(c, turn, true)
}

// handleAnswer scores the tapped option and shows the next prompt
func (h *Handler) handleAnswer(c tele.Context) error {
	i, err := parseIndex(c.Data())
	if err != nil {
		return c.Respond()
	}
	turn, err := h.gameService.Answer(c.Sender().ID, i)
	return h.afterMove(c, turn, err)
}

func (h *Handler) handleKnow(c tele.Context) error {
	turn, err := h.gameService.Mark(c.Sender().ID, true)
	return h.afterMove(c, turn, err)
}

func (h *Handler) handleDontKnow(c tele.Context) error {
	turn, err := h.gameService.Mark(c.Sender().ID, false)
	return h.afterMove(c, turn, err)
}

func (h *Handler) handleFlip(c tele.Context) error {
	turn, err := h.gameService.Flip(c.Sender().ID)
	if err != nil {
		return h.moveError(c, err)
	}
	return h.showTurn(c, turn, false)
}

func (h *Handler) handleReplay(c tele.Context) error {
	turn, err := h.gameService.Current(c.Sender().ID)
	if err != nil {
		return h.moveError(c, err)
	}
	h.playAudio(c, turn.Prompt.Audio, turn.Prompt.NameAudio)
	return c.Respond()
}

func (h *Handler) afterMove(c tele.Context, turn *service.Turn, err error) error {
	if err != nil {
		return h.moveError(c, err)
	}
	if turn.Results != nil {
		text := formatFeedback(turn.Outcome, turn.Mode) + formatResults(*turn.Results)
		return h.show(c, text, resultsMarkup())
	}
	return h.showTurn(c, turn, true)
}

func (h *Handler) moveError(c tele.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNoSession), errors.Is(err, game.ErrSessionOver):
		return c.Respond(&tele.CallbackResponse{Text: "No game in progress"})
	case errors.Is(err, game.ErrUnknownOption), errors.Is(err, game.ErrWrongMode), errors.Is(err, game.ErrNoPrompt):
		return c.Respond()
	}
	h.logger.Error("Game move failed", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
	return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
}

func (h *Handler) setupError(c tele.Context, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return h.alert(c, vErr.Reason)
	}
	if errors.Is(err, service.ErrUnknownCategory) {
		return c.Respond(&tele.CallbackResponse{Text: "This button has expired, use /menu"})
	}
	h.logger.Error("Setup change failed", zap.Error(err), zap.Int64("user_id", c.Sender().ID))
	return h.alert(c, "Something went wrong. Please try again.")
}

func (h *Handler) showSetup(c tele.Context, sel domain.Selection) error {
	return h.show(c, formatSetup(sel), setupMarkup(sel, h.gameService.Categories(c.Sender().ID)))
}

func (h *Handler) showTurn(c tele.Context, turn *service.Turn, withAudio bool) error {
	if err := h.show(c, formatTurn(turn), promptMarkup(turn.Prompt, turn.Mode)); err != nil {
		return err
	}
	if withAudio {
		h.playAudio(c, turn.Prompt.Audio, turn.Prompt.NameAudio)
	}
	return nil
}
