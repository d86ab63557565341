package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/bot/callback"
	"shoplistbot/internal/bot/keyboard"
	"shoplistbot/internal/bot/session"
	"shoplistbot/internal/view"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.Reply(
		[]string{btnAddItem, btnShowList},
		[]string{btnToggleBought, btnClearBought},
	)
}

func categoryMenuMarkup() *tele.ReplyMarkup {
	return keyboard.Inline([][]view.Button{
		{{Text: "➕ Добавить", Data: callback.CatAdd}},
		{{Text: "✏️ Переименовать", Data: callback.CatRename}},
		{{Text: "🗑 Удалить", Data: callback.CatDelete}},
		{{Text: "❌ Отмена", Data: callback.Cancel}},
	})
}

func markdown() *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeMarkdown}
}

// handleStart greets the user, seeds the starter list and pins the reply
// keyboard. Safe to repeat: seeding is idempotent and a running flow is
// simply restarted.
func (a *App) handleStart(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	a.sessions.ResetFlow(userID)

	if err := a.store.Seed(ctx, userID); err != nil {
		return fmt.Errorf("seed starter list: %w", err)
	}

	msg, err := a.bot.Send(c.Chat(), msgWelcome, mainMenu())
	if err != nil {
		return err
	}
	a.sessions.Update(userID, func(s *session.Session) { s.KeyboardMsgID = msg.ID })
	return nil
}

func (a *App) handleAddCat(c tele.Context) error {
	userID := c.Sender().ID
	a.sessions.ResetFlow(userID)

	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send(msgAddCatUsage)
	}

	added, err := a.store.AddCategory(context.Background(), userID, name)
	if err != nil {
		return err
	}
	if !added {
		return c.Send(msgCategoryExists)
	}
	return c.Send(fmt.Sprintf(msgCategoryAddedFmt, name))
}

func (a *App) handleManageCategories(c tele.Context) error {
	userID := c.Sender().ID
	a.sessions.ResetFlow(userID)
	a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateCategoryMenu })
	return c.Send(msgCategoryMenu, categoryMenuMarkup(), markdown())
}

func (a *App) handleJoin(c tele.Context) error {
	userID := c.Sender().ID
	a.sessions.ResetFlow(userID)

	code := strings.ToUpper(strings.TrimSpace(c.Message().Payload))
	if code == "" {
		return c.Send(msgJoinUsage)
	}

	a.sessions.Update(userID, func(s *session.Session) {
		s.State = session.StateJoinConfirm
		s.PendingCode = code
	})
	markup := keyboard.Inline([][]view.Button{{
		{Text: "✅ Да", Data: callback.JoinConfirm},
		{Text: "❌ Нет", Data: callback.JoinCancel},
	}})
	return c.Send(fmt.Sprintf(msgJoinConfirmFmt, code), markup, markdown())
}

func (a *App) handleShare(c tele.Context) error {
	userID := c.Sender().ID
	code, err := a.store.InviteCode(context.Background(), userID)
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(msgShareFmt, code, code), markdown())
}

func (a *App) handleCancel(c tele.Context) error {
	a.sessions.ResetFlow(c.Sender().ID)
	return c.Send(msgCancelled)
}

func (a *App) handleTest(c tele.Context) error {
	return c.Send(msgTestOK)
}

// handleText routes reply-keyboard buttons first, then feeds free text into
// whichever flow step is waiting for it. Navigation always wins over flows.
func (a *App) handleText(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	switch text {
	case btnAddItem:
		return a.startAddItem(ctx, c)
	case btnShowList:
		a.sessions.ResetFlow(userID)
		a.sessions.Update(userID, func(s *session.Session) {
			s.LastCategory = ""
			s.EditMode = false
		})
		return a.renderList(ctx, c)
	case btnToggleBought:
		a.sessions.ResetFlow(userID)
		a.sessions.Update(userID, func(s *session.Session) { s.ShowBought = !s.ShowBought })
		return a.renderList(ctx, c)
	case btnClearBought:
		a.sessions.ResetFlow(userID)
		count, err := a.store.ClearBought(ctx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			return c.Send(msgNoBoughtItems)
		}
		return c.Send(msgBoughtCleared)
	case btnCancel:
		a.sessions.ResetFlow(userID)
		return c.Send(msgCancelled)
	}

	switch a.sessions.State(userID) {
	case session.StateEnteringName:
		return a.finishAddItem(ctx, c, text)
	case session.StateAddingCat:
		return a.finishAddCategory(ctx, c, text)
	case session.StateRenameNewName:
		return a.finishRenameCategory(ctx, c, text)
	}
	return nil
}

// startAddItem enters the add-item flow with a fresh category keyboard.
// Buttons carry indexes that are re-resolved against a fresh fetch on click.
func (a *App) startAddItem(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID
	a.sessions.ResetFlow(userID)

	cats, err := a.store.Categories(ctx, userID)
	if err != nil {
		return err
	}

	rows := make([][]view.Button, 0, len(cats)+1)
	for i, cat := range cats {
		rows = append(rows, []view.Button{{Text: cat, Data: callback.Dept(i)}})
	}
	rows = append(rows, []view.Button{{Text: "❌ Отмена", Data: callback.Cancel}})

	a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateChoosingCategory })
	return c.Send(msgChooseDept, keyboard.Inline(rows))
}

// finishAddItem consumes the typed item name. Empty name or a lost category
// discards silently.
func (a *App) finishAddItem(ctx context.Context, c tele.Context, name string) error {
	userID := c.Sender().ID
	dept := a.sessions.Get(userID).Department
	a.sessions.ResetFlow(userID)

	if name == "" || dept == "" {
		return nil
	}
	added, err := a.store.AddItem(ctx, userID, name, dept)
	if err != nil {
		return err
	}
	if !added {
		return c.Send(msgActionFailed)
	}
	return c.Send(msgItemAdded)
}

func (a *App) finishAddCategory(ctx context.Context, c tele.Context, name string) error {
	userID := c.Sender().ID
	a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateCategoryMenu })

	if name == "" {
		return a.sendCategoryMenu(c)
	}
	added, err := a.store.AddCategory(ctx, userID, name)
	if err != nil {
		return err
	}
	if added {
		_ = c.Send(fmt.Sprintf(msgCategoryAddedFmt, name))
	} else {
		_ = c.Send(msgCategoryExists)
	}
	return a.sendCategoryMenu(c)
}

func (a *App) finishRenameCategory(ctx context.Context, c tele.Context, newName string) error {
	userID := c.Sender().ID
	from := a.sessions.Get(userID).RenameFrom
	a.sessions.Update(userID, func(s *session.Session) {
		s.State = session.StateCategoryMenu
		s.RenameFrom = ""
	})

	if from == "" || newName == "" {
		return a.sendCategoryMenu(c)
	}
	renamed, err := a.store.RenameCategory(ctx, userID, from, newName)
	if err != nil {
		return err
	}
	if renamed {
		_ = c.Send(msgCategoryRenamed)
	} else {
		_ = c.Send(msgCategoryExists)
	}
	return a.sendCategoryMenu(c)
}

func (a *App) sendCategoryMenu(c tele.Context) error {
	return c.Send(msgCategoryMenu, categoryMenuMarkup(), markdown())
}
