package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"shoplistbot/internal/logger"
)

// Store owns groups, membership, categories and items of the shared
// shopping list. Every operation is keyed by the acting user id and resolves
// it to the user's current group internally; a group is auto-created on
// first use.
type Store struct {
	db  *sqlx.DB
	sb  sq.StatementBuilderType
	log *slog.Logger
}

// New wraps an open database handle. The placeholder format follows the
// driver the handle was opened with.
func New(db *sqlx.DB) *Store {
	var ph sq.PlaceholderFormat = sq.Question
	if db.DriverName() == "postgres" {
		ph = sq.Dollar
	}
	log := logger.Store
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(ph),
		log: log,
	}
}

// EnsureGroup returns the user's group id, creating a personal group with a
// fresh invite code when the user has none.
func (s *Store) EnsureGroup(ctx context.Context, userID int64) (int64, error) {
	var groupID int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		groupID, err = s.ensureGroupTx(ctx, tx, userID)
		return err
	})
	return groupID, err
}

func (s *Store) ensureGroupTx(ctx context.Context, tx *sqlx.Tx, userID int64) (int64, error) {
	query, args, err := s.sb.
		Select("group_id").
		From("user_groups").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var groupID int64
	err = tx.GetContext(ctx, &groupID, query, args...)
	if err == nil {
		return groupID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup membership: %w", err)
	}

	code, err := s.freshInviteCode(ctx, tx)
	if err != nil {
		return 0, err
	}

	query, args, err = s.sb.
		Insert("groups").
		Columns("invite_code").
		Values(code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	if err := tx.GetContext(ctx, &groupID, query, args...); err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}

	query, args, err = s.sb.
		Insert("user_groups").
		Columns("user_id", "group_id").
		Values(userID, groupID).
		ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("create membership: %w", err)
	}

	s.log.Info("group created",
		slog.String("event", "group.create"),
		slog.Int64("user_id", userID),
		slog.Int64("group_id", groupID),
	)
	return groupID, nil
}

// Categories returns the group's category names in creation order.
func (s *Store) Categories(ctx context.Context, userID int64) ([]string, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	query, args, err := s.sb.
		Select("name").
		From("categories").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var names []string
	if err := s.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// CategoriesWithItems returns only categories that currently hold at least
// one qualifying item, in creation order.
func (s *Store) CategoriesWithItems(ctx context.Context, userID int64, includeBought bool) ([]string, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := s.sb.
		Select("c.name", "c.id").
		Distinct().
		From("categories c").
		Join("items i ON c.name = i.department AND c.group_id = i.group_id").
		Where(sq.Eq{"c.group_id": groupID}).
		OrderBy("c.id")
	if !includeBought {
		b = b.Where("i.is_bought = FALSE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories with items: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Items returns the group's items sorted by name case-insensitively.
func (s *Store) Items(ctx context.Context, userID int64, includeBought bool) ([]Item, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := s.sb.
		Select("id", "user_id", "name", "department", "is_bought", "group_id").
		From("items").
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("LOWER(name)")
	if !includeBought {
		b = b.Where("is_bought = FALSE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// AddCategory creates a category. Returns false on a duplicate name within
// the group; duplicates never surface as errors.
func (s *Store) AddCategory(ctx context.Context, userID int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	added := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		exists, err := s.categoryExistsTx(ctx, tx, groupID, name)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		query, args, err := s.sb.
			Insert("categories").
			Columns("user_id", "name", "group_id").
			Values(userID, name, groupID).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

// RenameCategory renames the category row and rewrites the department of all
// matching items in the same transaction. Returns false when old does not
// exist or new collides with another category.
func (s *Store) RenameCategory(ctx context.Context, userID int64, oldName, newName string) (bool, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return false, nil
	}

	renamed := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		exists, err := s.categoryExistsTx(ctx, tx, groupID, newName)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		query, args, err := s.sb.
			Update("categories").
			Set("name", newName).
			Where(sq.Eq{"group_id": groupID, "name": oldName}).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("rename category: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		query, args, err = s.sb.
			Update("items").
			Set("department", newName).
			Where(sq.Eq{"group_id": groupID, "department": oldName}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("rewrite item departments: %w", err)
		}
		renamed = true
		return nil
	})
	if renamed {
		s.log.Info("category renamed",
			slog.String("event", "category.rename"),
			slog.Int64("user_id", userID),
			slog.String("from", oldName),
			slog.String("to", newName),
		)
	}
	return renamed, err
}

// DeleteCategory removes all items under the category, then the category
// row, atomically. The second return value is the number of items removed.
func (s *Store) DeleteCategory(ctx context.Context, userID int64, name string) (bool, int, error) {
	deleted := false
	removed := 0
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		query, args, err := s.sb.
			Delete("items").
			Where(sq.Eq{"group_id": groupID, "department": name}).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete category items: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = int(affected)

		query, args, err = s.sb.
			Delete("categories").
			Where(sq.Eq{"group_id": groupID, "name": name}).
			ToSql()
		if err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	if deleted {
		s.log.Info("category deleted",
			slog.String("event", "category.delete"),
			slog.Int64("user_id", userID),
			slog.String("name", name),
			slog.Int("items_removed", removed),
		)
	}
	return deleted, removed, nil
}

// CountItemsInCategory reports how many items the category currently holds,
// bought ones included. Used by the delete confirmation step.
func (s *Store) CountItemsInCategory(ctx context.Context, userID int64, name string) (int, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return 0, err
	}

	query, args, err := s.sb.
		Select("COUNT(*)").
		From("items").
		Where(sq.Eq{"group_id": groupID, "department": name}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count category items: %w", err)
	}
	return count, nil
}

// AddItem creates an unbought item under the category.
func (s *Store) AddItem(ctx context.Context, userID int64, name, category string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || category == "" {
		return false, nil
	}

	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return false, err
	}

	query, args, err := s.sb.
		Insert("items").
		Columns("user_id", "name", "department", "is_bought", "group_id").
		Values(userID, name, category, false, groupID).
		ToSql()
	if err != nil {
		return false, err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("insert item: %w", err)
	}
	return true, nil
}

// ToggleBought flips the bought flag of the item and returns the new state.
// Returns ErrNotFound when the item does not belong to the user's group.
func (s *Store) ToggleBought(ctx context.Context, itemID, userID int64) (bool, error) {
	var newState bool
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		query, args, err := s.sb.
			Select("is_bought").
			From("items").
			Where(sq.Eq{"id": itemID, "group_id": groupID}).
			ToSql()
		if err != nil {
			return err
		}
		var bought bool
		if err := tx.GetContext(ctx, &bought, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup item: %w", err)
		}

		newState = !bought
		query, args, err = s.sb.
			Update("items").
			Set("is_bought", newState).
			Where(sq.Eq{"id": itemID, "group_id": groupID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("toggle item: %w", err)
		}
		return nil
	})
	return newState, err
}

// DeleteItem removes a single item from the user's group.
func (s *Store) DeleteItem(ctx context.Context, itemID, userID int64) (bool, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return false, err
	}

	query, args, err := s.sb.
		Delete("items").
		Where(sq.Eq{"id": itemID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ClearBought deletes all bought items of the group and returns the count.
func (s *Store) ClearBought(ctx context.Context, userID int64) (int, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return 0, err
	}

	query, args, err := s.sb.
		Delete("items").
		Where(sq.Eq{"group_id": groupID}).
		Where("is_bought = TRUE").
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear bought items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// JoinGroup reassigns the user's membership to the group behind the invite
// code. Codes are compared case-insensitively.
func (s *Store) JoinGroup(ctx context.Context, userID int64, code string) (JoinResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return JoinInvalidCode, nil
	}

	result := JoinInvalidCode
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.sb.
			Select("id").
			From("groups").
			Where("UPPER(invite_code) = UPPER(?)", code).
			ToSql()
		if err != nil {
			return err
		}
		var targetID int64
		if err := tx.GetContext(ctx, &targetID, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("lookup invite code: %w", err)
		}

		currentID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if currentID == targetID {
			result = JoinAlreadyMember
			return nil
		}

		query, args, err = s.sb.
			Update("user_groups").
			Set("group_id", targetID).
			Where(sq.Eq{"user_id": userID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reassign membership: %w", err)
		}
		result = Joined
		return nil
	})
	if result == Joined {
		s.log.Info("group joined",
			slog.String("event", "group.join"),
			slog.Int64("user_id", userID),
		)
	}
	return result, err
}

// InviteCode returns the invite code of the user's current group.
func (s *Store) InviteCode(ctx context.Context, userID int64) (string, error) {
	groupID, err := s.EnsureGroup(ctx, userID)
	if err != nil {
		return "", err
	}

	query, args, err := s.sb.
		Select("invite_code").
		From("groups").
		Where(sq.Eq{"id": groupID}).
		ToSql()
	if err != nil {
		return "", err
	}

	var code string
	if err := s.db.GetContext(ctx, &code, query, args...); err != nil {
		return "", fmt.Errorf("lookup invite code: %w", err)
	}
	return code, nil
}

func (s *Store) categoryExistsTx(ctx context.Context, tx *sqlx.Tx, groupID int64, name string) (bool, error) {
	query, args, err := s.sb.
		Select("COUNT(*)").
		From("categories").
		Where(sq.Eq{"group_id": groupID, "name": name}).
		ToSql()
	if err != nil {
		return false, err
	}
	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

// withTx runs fn inside a transaction so multi-statement operations never
// partially apply.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
