package view

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplistbot/internal/store"
)

func makeItems(category string, n int, bought bool) []store.Item {
	items := make([]store.Item, n)
	for i := range items {
		items[i] = store.Item{
			ID:         int64(i + 1),
			Name:       fmt.Sprintf("товар %d", i+1),
			Department: category,
			IsBought:   bought,
		}
	}
	return items
}

func TestCategoryMenuSmall(t *testing.T) {
	cats := []string{"🍞 Хлеб", "🥛 Молочное"}
	v := CategoryMenu(cats)

	// One row per category plus a single bottom "show all".
	require.Len(t, v.Buttons, 3)
	assert.Equal(t, "🍞 Хлеб", v.Buttons[0][0].Text)
	assert.Equal(t, "list_🍞 Хлеб", v.Buttons[0][0].Data)
	assert.Equal(t, "list_ALL", v.Buttons[2][0].Data)
}

func TestCategoryMenuDuplicatesShowAllWhenLarge(t *testing.T) {
	cats := make([]string, showAllThreshold+1)
	for i := range cats {
		cats[i] = fmt.Sprintf("Категория %d", i+1)
	}
	v := CategoryMenu(cats)

	require.Len(t, v.Buttons, len(cats)+2)
	assert.Equal(t, "list_ALL", v.Buttons[0][0].Data)
	assert.Equal(t, "list_ALL", v.Buttons[len(v.Buttons)-1][0].Data)
}

func TestFullListEmpty(t *testing.T) {
	v := FullList(nil, []string{"🍞 Хлеб"}, false)
	assert.Equal(t, "📭 Список покупок пуст.", v.Text)
	assert.Empty(t, v.Buttons)
}

func TestFullListGroupsByCategoryOrder(t *testing.T) {
	items := []store.Item{
		{ID: 1, Name: "Молоко", Department: "🥛 Молочное"},
		{ID: 2, Name: "Батон", Department: "🍞 Хлеб", IsBought: true},
	}
	v := FullList(items, []string{"🍞 Хлеб", "🥛 Молочное"}, false)

	// Header, then categories in creation order regardless of item order.
	breadIdx := strings.Index(v.Text, "🍞 Хлеб")
	milkIdx := strings.Index(v.Text, "🥛 Молочное")
	require.NotEqual(t, -1, breadIdx)
	require.NotEqual(t, -1, milkIdx)
	assert.Less(t, breadIdx, milkIdx)

	// Nav + mode on top, then one button per item, then mirrored nav.
	require.Len(t, v.Buttons, 6)
	assert.Equal(t, "list_cats", v.Buttons[0][0].Data)
	assert.Equal(t, "toggle_edit_all", v.Buttons[1][0].Data)
	assert.Equal(t, "tog_2_all", v.Buttons[2][0].Data)
	assert.Equal(t, "✅ Батон", v.Buttons[2][0].Text)
	assert.Equal(t, "tog_1_all", v.Buttons[3][0].Data)
	assert.Equal(t, "⬜️ Молоко", v.Buttons[3][0].Text)
}

func TestFullListEditMode(t *testing.T) {
	items := makeItems("🍞 Хлеб", 2, false)
	v := FullList(items, []string{"🍞 Хлеб"}, true)

	assert.Contains(t, v.Text, "Режим удаления")
	assert.Equal(t, "del_1_all", v.Buttons[2][0].Data)
	assert.True(t, strings.HasPrefix(v.Buttons[2][0].Text, "🗑 Удалить: "))
	assert.Equal(t, "✅ Готово", v.Buttons[1][0].Text)
}

func TestFullListCapsButtons(t *testing.T) {
	items := makeItems("🍞 Хлеб", 200, false)
	v := FullList(items, []string{"🍞 Хлеб"}, false)

	assert.Len(t, v.Buttons, MaxButtonRows)
	assert.Contains(t, v.Text, "Список слишком длинный")
	// Over the bottom-nav limit the trailing nav rows are dropped.
	last := v.Buttons[len(v.Buttons)-1][0]
	assert.True(t, strings.HasPrefix(last.Data, "tog_"))
}

func TestCategoryListEmpty(t *testing.T) {
	v := CategoryList("🍞 Хлеб", nil, false)
	assert.Equal(t, "В категории *🍞 Хлеб* пусто.", v.Text)
	require.Len(t, v.Buttons, 1)
	assert.Equal(t, "list_cats", v.Buttons[0][0].Data)
}

func TestCategoryListButtonsCarryCategory(t *testing.T) {
	items := makeItems("🍞 Хлеб", 1, false)
	v := CategoryList("🍞 Хлеб", items, false)

	require.Len(t, v.Buttons, 4)
	assert.Equal(t, "list_cats", v.Buttons[0][0].Data)
	assert.Equal(t, "tog_1_🍞 Хлеб", v.Buttons[1][0].Data)
	assert.Equal(t, "toggle_edit_🍞 Хлеб", v.Buttons[2][0].Data)
	assert.Equal(t, "list_cats", v.Buttons[3][0].Data)
}

func TestCategoryListEditMode(t *testing.T) {
	items := makeItems("🍞 Хлеб", 1, true)
	v := CategoryList("🍞 Хлеб", items, true)

	assert.Contains(t, v.Text, "Режим удаления")
	assert.Equal(t, "del_1_🍞 Хлеб", v.Buttons[1][0].Data)
}
