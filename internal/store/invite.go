package store

import (
	"context"
	"crypto/rand"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Ambiguous glyphs (0/O, 1/I/L) are left out so codes survive being read
// aloud or retyped from a screenshot.
const inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const inviteCodeLen = 6

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}

// freshInviteCode generates a code that is not yet taken by any group.
func (s *Store) freshInviteCode(ctx context.Context, tx *sqlx.Tx) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return "", err
		}

		query, args, err := s.sb.
			Select("COUNT(*)").
			From("groups").
			Where(sq.Eq{"invite_code": code}).
			ToSql()
		if err != nil {
			return "", err
		}
		var count int
		if err := tx.GetContext(ctx, &count, query, args...); err != nil {
			return "", fmt.Errorf("check invite code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("invite code space exhausted after retries")
}
