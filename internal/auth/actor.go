// Package auth carries the authenticated caller through a request and issues the tokens that prove it.
package auth

import (
	"context"

	"blogHub/internal/models"
)

// Actor is the caller performing an operation. A nil *Actor is an anonymous visitor.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// Owns reports whether the actor is the given user.
func (a *Actor) Owns(userID string) bool {
	return a != nil && a.UserID == userID
}

// CanModify allows the owner of a resource and any admin.
func (a *Actor) CanModify(ownerID string) bool {
	return a.Owns(ownerID) || a.IsAdmin()
}

func (a *Actor) ID() string {
	if a == nil {
		return ""
	}
	return a.UserID
}

func ActorFromUser(u *models.User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{UserID: u.UserID, Username: u.Username, Role: u.Role}
}

type ctxKey struct{}

func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFrom returns the actor stored by the auth middleware, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *Actor {
	a, _ := ctx.Value(ctxKey{}).(*Actor)
	return a
}
