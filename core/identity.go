package core

import "context"

// Identity is the resolved caller: either anonymous or a concrete user.
// The zero value is Anonymous.
type Identity struct {
	userID        int64
	authenticated bool
}

func Anonymous() Identity {
	return Identity{}
}

func UserIdentity(userID int64) Identity {
	return Identity{userID: userID, authenticated: true}
}

func (i Identity) IsAnonymous() bool {
	return !i.authenticated
}

func (i Identity) UserID() (int64, bool) {
	return i.userID, i.authenticated
}

// Owner returns the owner value a record created by this identity gets.
func (i Identity) Owner() *int64 {
	if !i.authenticated {
		return nil
	}
	id := i.userID
	return &id
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns Anonymous when no identity was attached to ctx.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
