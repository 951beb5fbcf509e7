package handlers

import (
	"context"
	"net/http"

	"github.com/LogM3/Poster/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor stores the authenticated caller in the request context.
func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the caller, or nil for an anonymous request.
func ActorFromContext(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(actorKey).(*models.Actor)
	return actor
}

func actorFromRequest(r *http.Request) *models.Actor {
	return ActorFromContext(r.Context())
}
