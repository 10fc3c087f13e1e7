package handler

import (
	"koreanvocab/internal/middleware"
	"koreanvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	authService  *service.AuthService
	gameService  *service.GameService
	statsService *service.StatsService
	audio        *AudioSource
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	gameService *service.GameService,
	statsService *service.StatsService,
	audio *AudioSource,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		authService:  authService,
		gameService:  gameService,
		statsService: statsService,
		audio:        audio,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Open to everyone: greeting and password entry
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything else needs an authorized user
	game := h.bot.Group()
	game.Use(middleware.AuthMiddleware(h.authService, h.logger))

	game.Handle("/menu", h.handleMenu)
	game.Handle("/stats", h.handleStats)

	game.Handle(&btnBin, h.handleBin)
	game.Handle(&btnBins, h.handleBins)
	game.Handle(&btnCategory, h.handleCategory)
	game.Handle(&btnAll, h.handleAll)
	game.Handle(&btnNone, h.handleNone)
	game.Handle(&btnDirection, h.handleDirection)
	game.Handle(&btnMode, h.handleMode)
	game.Handle(&btnStart, h.handleStartGame)
	game.Handle(&btnAgain, h.handleStartGame)
	game.Handle(&btnAnswer, h.handleAnswer)
	game.Handle(&btnReplay, h.handleReplay)
	game.Handle(&btnFlip, h.handleFlip)
	game.Handle(&btnKnow, h.handleKnow)
	game.Handle(&btnDontKnow, h.handleDontKnow)
	game.Handle(&btnMenu, h.handleMenu)
	game.Handle(&btnStats, h.handleStats)

	// Generic callback handler for stale or unknown buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)

	h.gameService.OnTimeout(h.sendTimeoutResults)
}

// show edits the message behind a callback, or sends a new one for commands
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// alert answers a callback with a popup, or a message for commands
func (h *Handler) alert(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
