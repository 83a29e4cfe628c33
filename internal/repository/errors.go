package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlugTaken = errors.New("slug already taken")
	ErrDuplicate = errors.New("duplicate value")
)

const (
	uniqueViolation  = "23505"
	postsSlugKey     = "posts_slug_key"
	usersUsernameKey = "users_username_key"
	usersEmailKey    = "users_email_key"
)

// uniqueConstraint returns the violated unique constraint name, or "" for any other error.
func uniqueConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
