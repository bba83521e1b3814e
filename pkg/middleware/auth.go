package middleware

import (
	"context"
	"net/http"
	"strings"

	"guesthouse/pkg/auth"
	"guesthouse/pkg/logger"
	"guesthouse/pkg/model"
)

const ActorKey contextKey = "actor"

// Authentication validates the bearer token and stores the resulting Actor
// in the request context. Requests without a valid token are rejected;
// the capability checks downstream assume an actor is always present.
func Authentication(tokens *auth.TokenService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w)
				return
			}

			actor, err := tokens.ActorFromToken(token)
			if err != nil {
				log.Warn("Token validation failed",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the authenticated actor, or nil before the
// Authentication middleware has run.
func ActorFromContext(ctx context.Context) *model.Actor {
	if v := ctx.Value(ActorKey); v != nil {
		if actor, ok := v.(*model.Actor); ok {
			return actor
		}
	}
	return nil
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
