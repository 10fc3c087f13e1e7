package middleware

import (
	"koreanvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Enter the password first. Send /start to begin."

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			// Ensure user exists
			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err), zap.Int64("user_id", userID))
				return deny(c, "Something went wrong. Please try again later.")
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err), zap.Int64("user_id", userID))
				return deny(c, "Something went wrong. Please try again later.")
			}

			if !authorized {
				logger.Debug("Unauthorized request", zap.Int64("user_id", userID))
				return deny(c, passwordPrompt)
			}

			return next(c)
		}
	}
}

// deny answers a button press with an alert and a command with a message
func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
