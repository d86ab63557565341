package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/logger"
)

// instrument wraps a handler with a per-update summary log line.
func (a *App) instrument(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		err := h(c)

		var userID int64
		if user := c.Sender(); user != nil {
			userID = user.ID
		}
		a.log.LogAttrs(context.Background(), slog.LevelInfo, "update handled",
			slog.String("event", "tg.handled"),
			slog.String("handler", name),
			slog.Int64("user_id", userID),
			slog.String("status", logger.Status(err)),
			slog.Duration("took", logger.Took(start)),
		)
		return err
	}
}
