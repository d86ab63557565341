package bot

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/config"
)

// commandMenu is what Telegram shows in the client's command popup.
var commandMenu = []tele.Command{
	{Text: "start", Description: "Запустить бота"},
	{Text: "add_cat", Description: "Добавить категорию"},
	{Text: "manage_categories", Description: "Управление категориями"},
	{Text: "join", Description: "Присоединиться к списку по коду"},
	{Text: "share", Description: "Показать код приглашения"},
	{Text: "cancel", Description: "Отменить текущее действие"},
}

// Run starts receiving updates and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Telegram.RunMode == config.RunModeLongpoll {
		// A webhook left over from a previous run blocks long polling.
		if err := a.bot.RemoveWebhook(); err != nil {
			a.log.Warn("webhook cleanup failed",
				slog.String("event", "tg.webhook_cleanup"),
				slog.String("err", err.Error()),
			)
		}
	}

	if err := a.bot.SetCommands(commandMenu); err != nil {
		a.log.Warn("command menu registration failed",
			slog.String("event", "tg.set_commands"),
			slog.String("err", err.Error()),
		)
	}

	a.log.Info("bot started",
		slog.String("event", "tg.start"),
		slog.String("run_mode", a.cfg.Telegram.RunMode),
		slog.String("username", a.bot.Me.Username),
	)

	go a.bot.Start()
	<-ctx.Done()
	a.bot.Stop()

	a.log.Info("bot stopped", slog.String("event", "tg.stop"))
	return nil
}
