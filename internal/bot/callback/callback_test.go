package callback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Callback
	}{
		{"list cats", "list_cats", Callback{Kind: KindListCats}},
		{"list category", "list_🍞 Хлеб", Callback{Kind: KindList, Category: "🍞 Хлеб"}},
		{"list all", "list_ALL", Callback{Kind: KindList, Category: "ALL"}},
		{"toggle with unicode category", "tog_42_🍎 Фрукты и ягоды", Callback{Kind: KindToggleItem, ItemID: 42, Category: "🍎 Фрукты и ягоды"}},
		{"toggle all scope", "tog_7_all", Callback{Kind: KindToggleItem, ItemID: 7, Category: "all"}},
		{"delete item", "del_13_Напитки", Callback{Kind: KindDeleteItem, ItemID: 13, Category: "Напитки"}},
		{"toggle edit wins over tog prefix", "toggle_edit_all", Callback{Kind: KindToggleEdit, Category: "all"}},
		{"toggle edit category", "toggle_edit_🍞 Хлеб", Callback{Kind: KindToggleEdit, Category: "🍞 Хлеб"}},
		{"dept index", "dept_3", Callback{Kind: KindDept, Index: 3}},
		{"rename select", "rename_Сладкое", Callback{Kind: KindRenameCat, Category: "Сладкое"}},
		{"delete select", "delete_Сладкое", Callback{Kind: KindDeleteCat, Category: "Сладкое"}},
		{"cancel", "cancel", Callback{Kind: KindCancel}},
		{"back to menu", "back_to_menu", Callback{Kind: KindBackToMenu}},
		{"confirm delete", "confirm_delete", Callback{Kind: KindConfirmDelete}},
		{"join confirm", "join_confirm", Callback{Kind: KindJoinConfirm}},
		{"join cancel", "join_cancel", Callback{Kind: KindJoinCancel}},
		{"manage cats", "manage_cats_inline", Callback{Kind: KindManageCats}},
		{"toggle view", "toggle_view_inline", Callback{Kind: KindToggleView}},
		{"cat add", "cat_add", Callback{Kind: KindCatAdd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCategoryKeepsUnderscores(t *testing.T) {
	got, err := Decode("tog_5_my_cat_name")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ItemID)
	assert.Equal(t, "my_cat_name", got.Category)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"bogus",
		"tog_",
		"tog_42",
		"tog_abc_all",
		"del_42_",
		"dept_x",
		"toggle_edit_",
		"rename_",
		"list_",
	} {
		t.Run(data, func(t *testing.T) {
			_, err := Decode(data)
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, data := range []string{
		Tog(42, "🍎 Фрукты и ягоды"),
		Del(9, RefAll),
		ToggleEdit(RefAll),
		List("🍞 Хлеб"),
		ListAll(),
		Dept(5),
		RenameCat("Сладкое"),
		DeleteCat("Сладкое"),
	} {
		_, err := Decode(data)
		assert.NoError(t, err, data)
	}
}

func TestAll(t *testing.T) {
	assert.True(t, Callback{Category: RefAll}.All())
	assert.True(t, Callback{Category: CategoryAll}.All())
	assert.False(t, Callback{Category: "🍞 Хлеб"}.All())
}
