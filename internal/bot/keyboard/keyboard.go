// Package keyboard converts view button grids into telebot markup.
package keyboard

import (
	tele "gopkg.in/telebot.v4"

	"shoplistbot/internal/view"
)

// Inline builds an inline keyboard from rendered view rows. Payloads are
// attached raw (no telebot unique prefix) so the legacy callback encoding
// goes over the wire untouched.
func Inline(rows [][]view.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = tele.InlineButton{Text: btn.Text, Data: btn.Data}
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// Reply builds a persistent reply keyboard from rows of button labels.
func Reply(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, IsPersistent: true}
	var kb []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		kb = append(kb, markup.Row(buttons...))
	}
	markup.Reply(kb...)
	return markup
}
