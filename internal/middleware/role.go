package middleware

import (
	"shopbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RoleMiddleware registers first-seen users and resolves their role
// before any handler runs. Events without a sender are dropped.
func RoleMiddleware(roles *service.RoleService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if _, err := roles.EnsureUser(sender.ID, sender.Username); err != nil {
				// The user is registered in memory even if the flush
				// failed; log and continue serving them
				logger.Error("Failed to persist new user",
					zap.Error(err),
					zap.Int64("user_id", sender.ID),
				)
			}

			return next(c)
		}
	}
}
