package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/bot/callback"
	"shoplistbot/internal/bot/keyboard"
	"shoplistbot/internal/bot/session"
	"shoplistbot/internal/logger"
	"shoplistbot/internal/store"
	"shoplistbot/internal/view"
)

// handleCallback decodes the payload into a tagged variant and dispatches.
// Malformed payloads are rejected here, before any store call.
func (a *App) handleCallback(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	data := strings.TrimSpace(c.Callback().Data)
	cb, err := callback.Decode(data)
	if err != nil {
		a.log.Warn("callback rejected",
			slog.String("event", "tg.callback_rejected"),
			slog.Int64("user_id", userID),
			slog.String("payload", logger.SanitizeLimit(data, 64)),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgUnsupported})
	}

	// Clicks are acknowledged up front; everything user-visible goes through
	// message sends and edits.
	_ = c.Respond(&tele.CallbackResponse{})

	switch cb.Kind {
	case callback.KindListCats:
		a.sessions.ResetFlow(userID)
		a.sessions.Update(userID, func(s *session.Session) {
			s.LastCategory = ""
			s.EditMode = false
		})
		return a.renderList(ctx, c)

	case callback.KindList:
		a.sessions.ResetFlow(userID)
		scope := cb.Category
		a.sessions.Update(userID, func(s *session.Session) { s.LastCategory = scope })
		return a.renderList(ctx, c)

	case callback.KindToggleItem:
		if _, err := a.store.ToggleBought(ctx, cb.ItemID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Stale button after a concurrent deletion.
				return a.renderList(ctx, c)
			}
			return err
		}
		a.setListScope(userID, cb)
		return a.renderList(ctx, c)

	case callback.KindDeleteItem:
		if _, err := a.store.DeleteItem(ctx, cb.ItemID, userID); err != nil {
			return err
		}
		a.setListScope(userID, cb)
		return a.renderList(ctx, c)

	case callback.KindToggleEdit:
		a.setListScope(userID, cb)
		a.sessions.Update(userID, func(s *session.Session) { s.EditMode = !s.EditMode })
		return a.renderList(ctx, c)

	case callback.KindToggleView:
		a.sessions.Update(userID, func(s *session.Session) { s.ShowBought = !s.ShowBought })
		return a.renderList(ctx, c)

	case callback.KindDept:
		return a.chooseDepartment(ctx, c, cb.Index)

	case callback.KindCancel:
		a.sessions.ResetFlow(userID)
		return a.editOrSend(c, msgCancelled)

	case callback.KindManageCats:
		a.sessions.ResetFlow(userID)
		a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateCategoryMenu })
		return a.editOrSend(c, msgCategoryMenu, categoryMenuMarkup(), markdown())

	case callback.KindCatAdd:
		a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateAddingCat })
		return a.editOrSend(c, msgEnterCatName)

	case callback.KindCatRename:
		return a.selectCategory(ctx, c, session.StateRenameSelect, msgChooseCatRename, callback.RenameCat)

	case callback.KindCatDelete:
		return a.selectCategory(ctx, c, session.StateDeleteSelect, msgChooseCatDelete, callback.DeleteCat)

	case callback.KindRenameCat:
		a.sessions.Update(userID, func(s *session.Session) {
			s.State = session.StateRenameNewName
			s.RenameFrom = cb.Category
		})
		return a.editOrSend(c, msgEnterNewCatName)

	case callback.KindDeleteCat:
		return a.confirmDeleteCategory(ctx, c, cb.Category)

	case callback.KindConfirmDelete:
		return a.deleteCategory(ctx, c)

	case callback.KindBackToMenu:
		a.sessions.Update(userID, func(s *session.Session) {
			s.State = session.StateCategoryMenu
			s.RenameFrom = ""
			s.DeleteTarget = ""
		})
		return a.editOrSend(c, msgCategoryMenu, categoryMenuMarkup(), markdown())

	case callback.KindJoinConfirm:
		return a.confirmJoin(ctx, c)

	case callback.KindJoinCancel:
		a.sessions.ResetFlow(userID)
		return a.editOrSend(c, msgCancelled)
	}

	return nil
}

// setListScope records which list the action originated from so the re-render
// lands on the same view.
func (a *App) setListScope(userID int64, cb callback.Callback) {
	scope := cb.Category
	if cb.All() {
		scope = callback.CategoryAll
	}
	a.sessions.Update(userID, func(s *session.Session) { s.LastCategory = scope })
}

// chooseDepartment resolves a dept_<index> click against a fresh category
// fetch; the set may have changed since the keyboard was rendered.
func (a *App) chooseDepartment(ctx context.Context, c tele.Context, index int) error {
	userID := c.Sender().ID
	if a.sessions.State(userID) != session.StateChoosingCategory {
		return nil
	}

	cats, err := a.store.Categories(ctx, userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(cats) {
		a.sessions.ResetFlow(userID)
		return a.editOrSend(c, msgActionFailed)
	}

	dept := cats[index]
	a.sessions.Update(userID, func(s *session.Session) {
		s.State = session.StateEnteringName
		s.Department = dept
	})
	return a.editOrSend(c, msgEnterItemName)
}

// selectCategory shows the category picker step of the manage flow.
func (a *App) selectCategory(ctx context.Context, c tele.Context, next session.State, prompt string, encode func(string) string) error {
	userID := c.Sender().ID

	cats, err := a.store.Categories(ctx, userID)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		a.sessions.Update(userID, func(s *session.Session) { s.State = session.StateCategoryMenu })
		return a.editOrSend(c, msgCategoryMenu, categoryMenuMarkup(), markdown())
	}

	rows := make([][]view.Button, 0, len(cats)+1)
	for _, cat := range cats {
		rows = append(rows, []view.Button{{Text: cat, Data: encode(cat)}})
	}
	rows = append(rows, []view.Button{{Text: "⬅️ Назад", Data: callback.BackToMenu}})

	a.sessions.Update(userID, func(s *session.Session) { s.State = next })
	return a.editOrSend(c, prompt, keyboard.Inline(rows))
}

// confirmDeleteCategory shows the affected item count before committing.
func (a *App) confirmDeleteCategory(ctx context.Context, c tele.Context, name string) error {
	userID := c.Sender().ID

	count, err := a.store.CountItemsInCategory(ctx, userID, name)
	if err != nil {
		return err
	}

	a.sessions.Update(userID, func(s *session.Session) {
		s.State = session.StateDeleteConfirm
		s.DeleteTarget = name
	})
	markup := keyboard.Inline([][]view.Button{{
		{Text: "🗑 Удалить", Data: callback.ConfirmDelete},
		{Text: "⬅️ Назад", Data: callback.BackToMenu},
	}})
	return a.editOrSend(c, fmt.Sprintf(msgConfirmDeleteFmt, name, count), markup, markdown())
}

func (a *App) deleteCategory(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID
	target := a.sessions.Get(userID).DeleteTarget
	a.sessions.Update(userID, func(s *session.Session) {
		s.State = session.StateCategoryMenu
		s.DeleteTarget = ""
	})

	if target == "" {
		return a.sendCategoryMenu(c)
	}
	deleted, removed, err := a.store.DeleteCategory(ctx, userID, target)
	if err != nil {
		return err
	}
	if deleted {
		_ = a.editOrSend(c, fmt.Sprintf(msgCategoryDeleteFmt, removed))
	} else {
		_ = a.editOrSend(c, msgActionFailed)
	}
	return a.sendCategoryMenu(c)
}

// confirmJoin commits the pending invite code. The transient code is cleared
// no matter how the join turns out.
func (a *App) confirmJoin(ctx context.Context, c tele.Context) error {
	userID := c.Sender().ID
	code := a.sessions.Get(userID).PendingCode
	a.sessions.ResetFlow(userID)

	if code == "" {
		return a.editOrSend(c, msgJoinInvalid)
	}
	result, err := a.store.JoinGroup(ctx, userID, code)
	if err != nil {
		return err
	}
	switch result {
	case store.Joined:
		return a.editOrSend(c, msgJoined)
	case store.JoinAlreadyMember:
		return a.editOrSend(c, msgJoinAlready)
	default:
		return a.editOrSend(c, msgJoinInvalid)
	}
}
