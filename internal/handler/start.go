package handler

import (
	"koreanvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	welcomeText  = "🇰🇷 Korean vocabulary trainer\n\nChoose what to practice:"
	errorText    = "Something went wrong. Please try again later."
	passwordText = "Hi! Enter the password to start practicing:"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	if !authorized {
		return c.Send(passwordText)
	}

	h.gameService.ReturnToMenu(userID)
	return c.Send(welcomeText, binMarkup())
}

// handleText treats free text as a password attempt from unauthorized users
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}
	if authorized {
		return c.Send("Use the buttons to play, or /start to pick a content type.")
	}

	if !h.authService.CheckPassword(c.Text()) {
		h.logger.Info("Wrong password", zap.Int64("user_id", userID))
		return c.Send("❌ Wrong password, try again:")
	}

	if err := h.authService.AuthorizeUser(userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	return c.Send("✅ Access granted!\n\n"+welcomeText, binMarkup())
}

// handleMenu stops any game and goes back to the setup screen
func (h *Handler) handleMenu(c tele.Context) error {
	userID := c.Sender().ID

	if res := h.gameService.ReturnToMenu(userID); res != nil {
		h.logger.Debug("Game abandoned",
			zap.Int64("user_id", userID),
			zap.Int("score", res.Score),
			zap.Int("total", res.Total),
		)
	}

	sel := h.gameService.Selection(userID)
	if sel.Bin == "" {
		return h.show(c, welcomeText, binMarkup())
	}
	return h.showSetup(c, sel)
}

// handleBins shows the content type list
func (h *Handler) handleBins(c tele.Context) error {
	h.gameService.ReturnToMenu(c.Sender().ID)
	return h.show(c, welcomeText, binMarkup())
}

// handleStats shows best scores and recent games
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID

	summary, err := h.statsService.Summary(userID)
	if err != nil {
		h.logger.Error("Failed to load stats", zap.Error(err), zap.Int64("user_id", userID))
		return h.alert(c, errorText)
	}
	return h.show(c, formatSummary(summary), backMarkup())
}

// sendTimeoutResults delivers the results of a timed game that ran out of time
func (h *Handler) sendTimeoutResults(userID int64, res domain.Results) {
	text := "⏰ Time's up!\n\n" + formatResults(res)
	if _, err := h.bot.Send(tele.ChatID(userID), text, resultsMarkup()); err != nil {
		h.logger.Error("Failed to send timeout results", zap.Error(err), zap.Int64("user_id", userID))
	}
}
