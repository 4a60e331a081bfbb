package auth

import (
	"chat-poll/domain"
	"context"
)

// Identity is who the current request acts as. The zero value is anonymous.
type Identity struct {
	UserID  domain.UserID `json:"id"`
	Tag     string        `json:"tag"`
	IsAdmin bool          `json:"is_admin"`
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

func IdentityOf(user domain.User) Identity {
	return Identity{UserID: user.ID, Tag: user.Tag, IsAdmin: user.IsAdmin}
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext returns the identity stored by WithIdentity, or the anonymous
// identity when there is none.
func FromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityKey).(Identity)
	return identity
}
