// Package bot glues the Telegram transport to the store: command handlers,
// the conversation state machine over session states, and the inline
// callback dispatch.
package bot

import (
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/bot/middleware"
	"shoplistbot/internal/bot/session"
	"shoplistbot/internal/config"
	"shoplistbot/internal/logger"
	"shoplistbot/internal/store"
)

// App is the assembled bot: transport, store and per-user sessions.
type App struct {
	cfg      *config.Config
	store    *store.Store
	sessions *session.Manager
	bot      *tele.Bot
	log      *slog.Logger
}

// New builds the bot, wires the middleware chain and registers all routes.
func New(cfg *config.Config, st *store.Store) (*App, error) {
	log := logger.TG
	if log == nil {
		log = slog.Default()
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: buildPoller(cfg),
		Client: buildHTTPClient(),
		OnError: func(err error, c tele.Context) {
			var userID int64
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}
			log.Error("handler error",
				slog.String("event", "tg.error"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	app := &App{
		cfg:      cfg,
		store:    st,
		sessions: session.NewManager(),
		bot:      b,
		log:      log,
	}
	app.wire()
	return app, nil
}

func (a *App) wire() {
	a.bot.Use(middleware.Recover)
	if interval := a.cfg.RateLimit.Interval(); interval > 0 {
		a.bot.Use(middleware.RateLimit(middleware.RateLimitOptions{
			Interval: interval,
			Exclude:  a.cfg.RateLimit.ExcludeSet(),
		}))
	}
	a.bot.Use(middleware.Logging)

	// Liveness probe stays reachable for users outside the allow-list.
	a.bot.Handle("/test", a.instrument("test", a.handleTest))

	g := a.bot.Group()
	g.Use(middleware.AllowList(middleware.AccessOptions{
		AllowedUsers: a.cfg.Telegram.AllowedUsers,
		OnDenied: func(c tele.Context) error {
			return c.Send(msgAccessDenied)
		},
	}))

	g.Handle("/start", a.instrument("start", a.handleStart))
	g.Handle("/add_cat", a.instrument("add_cat", a.handleAddCat))
	g.Handle("/manage_categories", a.instrument("manage_categories", a.handleManageCategories))
	g.Handle("/join", a.instrument("join", a.handleJoin))
	g.Handle("/share", a.instrument("share", a.handleShare))
	g.Handle("/cancel", a.instrument("cancel", a.handleCancel))
	g.Handle(tele.OnText, a.instrument("text", a.handleText))
	g.Handle(tele.OnCallback, a.instrument("callback", a.handleCallback))
}
