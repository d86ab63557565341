package store

import "errors"

// ErrNotFound is returned when a referenced item does not exist in the
// acting user's group (e.g. a stale button after a concurrent deletion).
var ErrNotFound = errors.New("store: not found")

// Item is a single shopping list entry scoped to a group.
// Department denormalizes the category name; category renames and deletes
// rewrite it in the same transaction.
type Item struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	Name       string `db:"name"`
	Department string `db:"department"`
	IsBought   bool   `db:"is_bought"`
	GroupID    int64  `db:"group_id"`
}

// JoinResult classifies the outcome of a join-by-invite-code attempt.
type JoinResult int

const (
	// JoinInvalidCode means no group matched the supplied code.
	JoinInvalidCode JoinResult = iota
	// JoinAlreadyMember means the user already belongs to the target group.
	JoinAlreadyMember
	// Joined means membership was reassigned to the target group.
	Joined
)
