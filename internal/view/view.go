// Package view turns store query results into a presentation model: message
// text plus a structured button grid. It never talks to the transport, so
// every renderer is a pure function of its inputs.
package view

import (
	"fmt"
	"strings"

	"shoplistbot/internal/bot/callback"
	"shoplistbot/internal/store"
)

// Button is one inline control carrying a raw legacy callback payload.
type Button struct {
	Text string
	Data string
}

// View is a rendered message: text plus rows of inline buttons.
type View struct {
	Text    string
	Buttons [][]Button
}

const (
	// MaxButtonRows caps the control grid; Telegram rejects messages with
	// roughly a hundred buttons, 90 leaves headroom.
	MaxButtonRows = 90
	// bottomNavLimit is the row count under which the navigation row is
	// repeated at the bottom for convenience.
	bottomNavLimit = 88
	// showAllThreshold duplicates the "show all" action at the top once the
	// category menu grows past it.
	showAllThreshold = 6
)

const (
	markerBought   = "✅"
	markerUnbought = "⬜️"
)

// CategoryMenu renders the category selection view. Categories come in
// creation order and keep it.
func CategoryMenu(categories []string) View {
	showAll := Button{Text: "📝 Показать всё", Data: callback.ListAll()}

	var rows [][]Button
	if len(categories) > showAllThreshold {
		rows = append(rows, []Button{showAll})
	}
	for _, cat := range categories {
		rows = append(rows, []Button{{Text: cat, Data: callback.List(cat)}})
	}
	rows = append(rows, []Button{showAll})

	return View{Text: "🗏 *Выберите категорию:*", Buttons: rows}
}

// FullList renders every item grouped by category in category order. In edit
// mode each row deletes instead of toggling.
func FullList(items []store.Item, categories []string, editMode bool) View {
	if len(items) == 0 {
		return View{Text: "📭 Список покупок пуст."}
	}

	grouped := make(map[string][]store.Item)
	for _, item := range items {
		grouped[item.Department] = append(grouped[item.Department], item)
	}

	var text strings.Builder
	text.WriteString("📋 *Весь список:*\n")
	if editMode {
		text.WriteString("⚠️ _Режим удаления_\n")
	}

	backRow := []Button{{Text: "⬅️ Назад к категориям", Data: callback.ListCats()}}
	modeRow := []Button{modeButton(callback.RefAll, editMode)}

	rows := [][]Button{backRow, modeRow}
	for _, cat := range categories {
		catItems, ok := grouped[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(&text, "\n*%s*\n", cat)
		for _, item := range catItems {
			rows = append(rows, []Button{itemButton(item, callback.RefAll, editMode)})
		}
	}

	if len(rows) > MaxButtonRows {
		rows = rows[:MaxButtonRows]
		text.WriteString("\n\n⚠️ _Список слишком длинный, показаны первые товары._")
	}
	if len(rows) < bottomNavLimit {
		rows = append(rows, modeRow, backRow)
	}

	return View{Text: text.String(), Buttons: rows}
}

// CategoryList renders a single category. Items must already be scoped to it.
func CategoryList(category string, items []store.Item, editMode bool) View {
	backRow := []Button{{Text: "⬅️ Назад к категориям", Data: callback.ListCats()}}

	if len(items) == 0 {
		return View{
			Text:    fmt.Sprintf("В категории *%s* пусто.", category),
			Buttons: [][]Button{{{Text: "⬅️ Назад", Data: callback.ListCats()}}},
		}
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📂 *Категория:* %s\n", category)
	if editMode {
		text.WriteString("⚠️ _Режим удаления_\n")
	}

	rows := [][]Button{backRow}
	for _, item := range items {
		rows = append(rows, []Button{itemButton(item, category, editMode)})
	}
	rows = append(rows, []Button{modeButton(category, editMode)}, backRow)

	return View{Text: text.String(), Buttons: rows}
}

func itemButton(item store.Item, ref string, editMode bool) Button {
	if editMode {
		return Button{
			Text: "🗑 Удалить: " + item.Name,
			Data: callback.Del(item.ID, ref),
		}
	}
	marker := markerUnbought
	if item.IsBought {
		marker = markerBought
	}
	return Button{
		Text: marker + " " + item.Name,
		Data: callback.Tog(item.ID, ref),
	}
}

func modeButton(ref string, editMode bool) Button {
	if editMode {
		return Button{Text: "✅ Готово", Data: callback.ToggleEdit(ref)}
	}
	return Button{Text: "⚙️ Удаление", Data: callback.ToggleEdit(ref)}
}
