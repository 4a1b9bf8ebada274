package http

import (
	"context"

	"churchshare-backend/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor attaches the authenticated user to the request context.
func WithActor(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, actorKey, user)
}

// ActorFromContext returns the authenticated user placed in the context
// by the auth middleware.
func ActorFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(actorKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.Unauthenticated("authentication required")
	}
	return user, nil
}
