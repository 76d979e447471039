package interfaces

import "context"

type actorKey struct{}

// WithActor records the authenticated username that drives the request.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// Actor returns the username stored by WithActor, or "system".
func Actor(ctx context.Context) string {
	if name, ok := ctx.Value(actorKey{}).(string); ok && name != "" {
		return name
	}
	return "system"
}
