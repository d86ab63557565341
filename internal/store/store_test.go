package store

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"shoplistbot/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	sub, err := database.MigrationFiles(database.DriverSQLite)
	require.NoError(t, err)
	names, err := fs.Glob(sub, "*.up.sql")
	require.NoError(t, err)
	sort.Strings(names)
	for _, name := range names {
		script, err := fs.ReadFile(sub, name)
		require.NoError(t, err)
		_, err = db.Exec(string(script))
		require.NoError(t, err)
	}

	return New(db)
}

func TestSeedIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 100

	require.NoError(t, s.Seed(ctx, userID))

	cats, err := s.Categories(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cats, 12)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, items, 118)

	// A second seed must not duplicate anything.
	require.NoError(t, s.Seed(ctx, userID))

	cats, err = s.Categories(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cats, 12)

	items, err = s.Items(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, items, 118)
}

func TestFreshUserAddsItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 101
	const fruit = "🍎 Фрукты и ягоды"

	require.NoError(t, s.Seed(ctx, userID))

	cats, err := s.Categories(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, cats, fruit)

	added, err := s.AddItem(ctx, userID, "Киви", fruit)
	require.NoError(t, err)
	require.True(t, added)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	var found *Item
	for i := range items {
		if items[i].Name == "Киви" {
			found = &items[i]
			break
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, fruit, found.Department)
	assert.False(t, found.IsBought)
}

func TestAddCategoryDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 102

	added, err := s.AddCategory(ctx, userID, "Хозтовары")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddCategory(ctx, userID, "Хозтовары")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = s.AddCategory(ctx, userID, "  ")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestRenameCategoryMovesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 103

	_, err := s.AddCategory(ctx, userID, "Старая")
	require.NoError(t, err)
	for _, name := range []string{"Молоко", "Хлеб"} {
		added, err := s.AddItem(ctx, userID, name, "Старая")
		require.NoError(t, err)
		require.True(t, added)
	}

	renamed, err := s.RenameCategory(ctx, userID, "Старая", "Новая")
	require.NoError(t, err)
	require.True(t, renamed)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "Новая", item.Department)
	}

	cats, err := s.Categories(ctx, userID)
	require.NoError(t, err)
	assert.NotContains(t, cats, "Старая")
	assert.Contains(t, cats, "Новая")
}

func TestRenameCategoryCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 104

	for _, name := range []string{"Одна", "Другая"} {
		_, err := s.AddCategory(ctx, userID, name)
		require.NoError(t, err)
	}

	renamed, err := s.RenameCategory(ctx, userID, "Одна", "Другая")
	require.NoError(t, err)
	assert.False(t, renamed)
}

func TestToggleBoughtInvolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 105

	_, err := s.AddCategory(ctx, userID, "Продукты")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, userID, "Сыр", "Продукты")
	require.NoError(t, err)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	itemID := items[0].ID

	state, err := s.ToggleBought(ctx, itemID, userID)
	require.NoError(t, err)
	assert.True(t, state)

	state, err = s.ToggleBought(ctx, itemID, userID)
	require.NoError(t, err)
	assert.False(t, state)

	_, err = s.ToggleBought(ctx, 99999, userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleBoughtScopedToGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, 106, "Продукты")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, 106, "Сыр", "Продукты")
	require.NoError(t, err)

	items, err := s.Items(ctx, 106, true)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// A user from another group must not reach the item.
	_, err = s.ToggleBought(ctx, items[0].ID, 107)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 108

	_, err := s.AddCategory(ctx, userID, "Напитки")
	require.NoError(t, err)
	for _, name := range []string{"Сок", "Вода", "Чай"} {
		_, err := s.AddItem(ctx, userID, name, "Напитки")
		require.NoError(t, err)
	}

	count, err := s.CountItemsInCategory(ctx, userID, "Напитки")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	deleted, removed, err := s.DeleteCategory(ctx, userID, "Напитки")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 3, removed)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	for _, item := range items {
		assert.NotEqual(t, "Напитки", item.Department)
	}

	deleted, removed, err = s.DeleteCategory(ctx, userID, "Напитки")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, removed)
}

func TestClearBought(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 109

	_, err := s.AddCategory(ctx, userID, "Продукты")
	require.NoError(t, err)
	for _, name := range []string{"Молоко", "Хлеб", "Яйца"} {
		_, err := s.AddItem(ctx, userID, name, "Продукты")
		require.NoError(t, err)
	}

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items[:2] {
		_, err := s.ToggleBought(ctx, item.ID, userID)
		require.NoError(t, err)
	}

	cleared, err := s.ClearBought(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	items, err = s.Items(ctx, userID, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	cleared, err = s.ClearBought(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestJoinGroupSharing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userA int64 = 110
	const userB int64 = 111

	_, err := s.AddCategory(ctx, userA, "Продукты")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, userA, "Молоко", "Продукты")
	require.NoError(t, err)

	code, err := s.InviteCode(ctx, userA)
	require.NoError(t, err)
	require.Len(t, code, 6)

	// Codes are matched case-insensitively.
	result, err := s.JoinGroup(ctx, userB, strings.ToLower(code))
	require.NoError(t, err)
	assert.Equal(t, Joined, result)

	items, err := s.Items(ctx, userB, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Молоко", items[0].Name)

	// Anything B adds shows up for A.
	_, err = s.AddItem(ctx, userB, "Хлеб", "Продукты")
	require.NoError(t, err)
	items, err = s.Items(ctx, userA, true)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	result, err = s.JoinGroup(ctx, userB, code)
	require.NoError(t, err)
	assert.Equal(t, JoinAlreadyMember, result)

	result, err = s.JoinGroup(ctx, userB, "NOPE99")
	require.NoError(t, err)
	assert.Equal(t, JoinInvalidCode, result)

	result, err = s.JoinGroup(ctx, userB, "")
	require.NoError(t, err)
	assert.Equal(t, JoinInvalidCode, result)
}

func TestBoughtVisibilityAcrossUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userA int64 = 112
	const userB int64 = 113

	_, err := s.AddCategory(ctx, userA, "Продукты")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, userA, "Молоко", "Продукты")
	require.NoError(t, err)

	code, err := s.InviteCode(ctx, userA)
	require.NoError(t, err)
	result, err := s.JoinGroup(ctx, userB, code)
	require.NoError(t, err)
	require.Equal(t, Joined, result)

	items, err := s.Items(ctx, userA, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	_, err = s.ToggleBought(ctx, items[0].ID, userA)
	require.NoError(t, err)

	// Bought hidden: B no longer sees the item.
	items, err = s.Items(ctx, userB, false)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Bought shown: B sees it marked.
	items, err = s.Items(ctx, userB, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsBought)
}

func TestCategoriesWithItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 114

	for _, name := range []string{"Полная", "Пустая", "Купленная"} {
		_, err := s.AddCategory(ctx, userID, name)
		require.NoError(t, err)
	}
	_, err := s.AddItem(ctx, userID, "Молоко", "Полная")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, userID, "Хлеб", "Купленная")
	require.NoError(t, err)

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	for _, item := range items {
		if item.Department == "Купленная" {
			_, err := s.ToggleBought(ctx, item.ID, userID)
			require.NoError(t, err)
		}
	}

	cats, err := s.CategoriesWithItems(ctx, userID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Полная"}, cats)

	cats, err = s.CategoriesWithItems(ctx, userID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Полная", "Купленная"}, cats)
}

func TestItemsSortedCaseInsensitively(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const userID int64 = 115

	_, err := s.AddCategory(ctx, userID, "Разное")
	require.NoError(t, err)
	for _, name := range []string{"banana", "Apple", "cherry"} {
		_, err := s.AddItem(ctx, userID, name, "Разное")
		require.NoError(t, err)
	}

	items, err := s.Items(ctx, userID, true)
	require.NoError(t, err)
	require.Len(t, items, 3)
	names := []string{items[0].Name, items[1].Name, items[2].Name}
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names)
}

func TestInviteCodeAlphabet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	code, err := s.InviteCode(ctx, 116)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.Contains(t, inviteAlphabet, string(r))
	}

	// Stable per group.
	again, err := s.InviteCode(ctx, 116)
	require.NoError(t, err)
	assert.Equal(t, code, again)

	other, err := s.InviteCode(ctx, 117)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
