package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/logger"
)

// AccessOptions defines how the allow-list check behaves.
type AccessOptions struct {
	AllowedUsers []int64
	OnDenied     tele.HandlerFunc
}

// AllowList ensures only listed user ids reach downstream handlers. Everyone
// else gets the denial handler and the update stops there.
func AllowList(opts AccessOptions) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = struct{}{}
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if _, ok := allowed[user.ID]; !ok {
				logger.TG.Warn("access denied",
					slog.String("event", "tg.access"),
					slog.Int64("user_id", user.ID),
				)
				if opts.OnDenied != nil {
					return opts.OnDenied(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
