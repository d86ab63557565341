package bot

import (
	"context"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/bot/callback"
	"shoplistbot/internal/bot/keyboard"
	"shoplistbot/internal/bot/session"
	"shoplistbot/internal/store"
	"shoplistbot/internal/view"
)

// renderList re-derives the current list view from the store plus the
// session view flags and delivers it. Nothing about a list is ever cached.
func (a *App) renderList(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID
	sess := a.sessions.Get(userID)

	switch {
	case sess.LastCategory == "":
		cats, err := a.store.CategoriesWithItems(ctx, userID, sess.ShowBought)
		if err != nil {
			return err
		}
		return a.showView(c, view.CategoryMenu(cats))

	case sess.LastCategory == callback.CategoryAll:
		items, err := a.store.Items(ctx, userID, sess.ShowBought)
		if err != nil {
			return err
		}
		cats, err := a.store.Categories(ctx, userID)
		if err != nil {
			return err
		}
		return a.showView(c, view.FullList(items, cats, sess.EditMode))

	default:
		items, err := a.store.Items(ctx, userID, sess.ShowBought)
		if err != nil {
			return err
		}
		scoped := make([]store.Item, 0, len(items))
		for _, item := range items {
			if item.Department == sess.LastCategory {
				scoped = append(scoped, item)
			}
		}
		return a.showView(c, view.CategoryList(sess.LastCategory, scoped, sess.EditMode))
	}
}

// showView edits the previous list message in place. When the edit is
// rejected (message too old, already gone) the old message is deleted and a
// fresh one sent; the reply-keyboard message is never touched.
func (a *App) showView(c tele.Context, v view.View) error {
	userID := c.Sender().ID
	sess := a.sessions.Get(userID)

	args := []interface{}{&tele.SendOptions{ParseMode: tele.ModeMarkdown}}
	if markup := keyboard.Inline(v.Buttons); markup != nil {
		args = append(args, markup)
	}

	if sess.LastListMsgID != 0 {
		ref := &tele.Message{ID: sess.LastListMsgID, Chat: c.Chat()}
		if _, err := a.bot.Edit(ref, v.Text, args...); err == nil {
			return nil
		} else if err != tele.ErrSameMessageContent {
			a.log.Debug("list edit rejected, resending",
				slog.String("event", "tg.edit_fallback"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			_ = a.bot.Delete(ref)
		} else {
			return nil
		}
	}

	msg, err := a.bot.Send(c.Chat(), v.Text, args...)
	if err != nil {
		return fmt.Errorf("send list: %w", err)
	}
	a.sessions.Update(userID, func(s *session.Session) { s.LastListMsgID = msg.ID })
	return nil
}

// editOrSend replaces the prompt message under a tapped button, falling back
// to a fresh message when the edit is rejected.
func (a *App) editOrSend(c tele.Context, text string, extra ...interface{}) error {
	if err := c.Edit(text, extra...); err == nil {
		return nil
	}
	return c.Send(text, extra...)
}
