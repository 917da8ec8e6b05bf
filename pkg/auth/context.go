package auth

import (
	"context"
)

type contextKey int

const identityKey contextKey = iota + 1

func SetAuthContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns Anonymous when the request carried no identity.
func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok {
		return Anonymous
	}
	return id
}
