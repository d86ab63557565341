// Package callback encodes and decodes the inline button payloads.
//
// The wire format is a legacy short-prefix scheme (`tog_<id>_<category>`,
// `list_cats`, ...) that must stay byte-identical for older clients with
// buttons still on screen. Category names are free Unicode text, so decoding
// splits on the first delimiters only, never on every underscore.
package callback

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a decoded payload.
type Kind int

const (
	KindUnknown Kind = iota

	// KindListCats shows the category selection menu.
	KindListCats
	// KindList shows one category, or the whole list when Category == "ALL".
	KindList
	// KindToggleItem flips an item's bought flag.
	KindToggleItem
	// KindDeleteItem removes an item.
	KindDeleteItem
	// KindToggleEdit flips edit mode for the current list view.
	KindToggleEdit
	// KindDept selects a category by index during the add-item flow.
	KindDept
	// KindRenameCat selects the category to rename.
	KindRenameCat
	// KindDeleteCat selects the category to delete.
	KindDeleteCat

	KindCancel
	KindBackToMenu
	KindConfirmDelete
	KindJoinConfirm
	KindJoinCancel
	KindManageCats
	KindToggleView
	KindCatAdd
	KindCatRename
	KindCatDelete
)

// RefAll is the item-action suffix standing for the full-list view.
const RefAll = "all"

// CategoryAll is the list payload argument standing for the full list.
const CategoryAll = "ALL"

// Callback is a decoded inline button payload.
type Callback struct {
	Kind     Kind
	ItemID   int64
	Index    int
	Category string
}

// All reports whether the payload references the full-list view rather than
// a single category.
func (c Callback) All() bool {
	return c.Category == RefAll || c.Category == CategoryAll
}

var bareTokens = map[string]Kind{
	"list_cats":          KindListCats,
	"cancel":             KindCancel,
	"back_to_menu":       KindBackToMenu,
	"confirm_delete":     KindConfirmDelete,
	"join_confirm":       KindJoinConfirm,
	"join_cancel":        KindJoinCancel,
	"manage_cats_inline": KindManageCats,
	"toggle_view_inline": KindToggleView,
	"cat_add":            KindCatAdd,
	"cat_rename":         KindCatRename,
	"cat_delete":         KindCatDelete,
}

// Decode parses a raw payload into a tagged variant. Malformed payloads are
// rejected here, before any store call.
func Decode(data string) (Callback, error) {
	if kind, ok := bareTokens[data]; ok {
		return Callback{Kind: kind}, nil
	}

	switch {
	case strings.HasPrefix(data, "toggle_edit_"):
		ref := strings.TrimPrefix(data, "toggle_edit_")
		if ref == "" {
			return Callback{}, fmt.Errorf("callback: empty toggle_edit ref")
		}
		return Callback{Kind: KindToggleEdit, Category: ref}, nil

	case strings.HasPrefix(data, "tog_"):
		return decodeItemAction(KindToggleItem, strings.TrimPrefix(data, "tog_"))

	case strings.HasPrefix(data, "del_"):
		return decodeItemAction(KindDeleteItem, strings.TrimPrefix(data, "del_"))

	case strings.HasPrefix(data, "dept_"):
		idx, err := strconv.Atoi(strings.TrimPrefix(data, "dept_"))
		if err != nil {
			return Callback{}, fmt.Errorf("callback: bad dept index: %w", err)
		}
		return Callback{Kind: KindDept, Index: idx}, nil

	case strings.HasPrefix(data, "rename_"):
		cat := strings.TrimPrefix(data, "rename_")
		if cat == "" {
			return Callback{}, fmt.Errorf("callback: empty rename target")
		}
		return Callback{Kind: KindRenameCat, Category: cat}, nil

	case strings.HasPrefix(data, "delete_"):
		cat := strings.TrimPrefix(data, "delete_")
		if cat == "" {
			return Callback{}, fmt.Errorf("callback: empty delete target")
		}
		return Callback{Kind: KindDeleteCat, Category: cat}, nil

	case strings.HasPrefix(data, "list_"):
		cat := strings.TrimPrefix(data, "list_")
		if cat == "" {
			return Callback{}, fmt.Errorf("callback: empty list target")
		}
		return Callback{Kind: KindList, Category: cat}, nil
	}

	return Callback{}, fmt.Errorf("callback: unrecognized payload %q", data)
}

// decodeItemAction parses "<id>_<category-or-all>". The category may contain
// underscores, so only the first delimiter splits.
func decodeItemAction(kind Kind, rest string) (Callback, error) {
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Callback{}, fmt.Errorf("callback: item action needs id and ref: %q", rest)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Callback{}, fmt.Errorf("callback: bad item id: %w", err)
	}
	return Callback{Kind: kind, ItemID: id, Category: parts[1]}, nil
}

// Encoders. Kept next to Decode so the two sides of the wire format cannot
// drift apart.

func ListCats() string { return "list_cats" }

func List(category string) string { return "list_" + category }

func ListAll() string { return "list_" + CategoryAll }

func Tog(itemID int64, ref string) string { return fmt.Sprintf("tog_%d_%s", itemID, ref) }

func Del(itemID int64, ref string) string { return fmt.Sprintf("del_%d_%s", itemID, ref) }

func ToggleEdit(ref string) string { return "toggle_edit_" + ref }

func Dept(index int) string { return fmt.Sprintf("dept_%d", index) }

func RenameCat(category string) string { return "rename_" + category }

func DeleteCat(category string) string { return "delete_" + category }

const (
	Cancel        = "cancel"
	BackToMenu    = "back_to_menu"
	ConfirmDelete = "confirm_delete"
	JoinConfirm   = "join_confirm"
	JoinCancel    = "join_cancel"
	ManageCats    = "manage_cats_inline"
	ToggleView    = "toggle_view_inline"
	CatAdd        = "cat_add"
	CatRename     = "cat_rename"
	CatDelete     = "cat_delete"
)
