package auth

import (
	"chat-room/errors"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const grantKey contextKey = "grant"

// GrantValidator checks a raw grant token.
type GrantValidator interface {
	Validate(tokenString string) (*GrantClaims, error)
}

// Interceptor rejects requests without a valid grant.
// The token is read from the Authorization header ("Bearer <token>"), or from the
// "token" query parameter since browsers cannot set headers on a websocket upgrade.
func Interceptor(validator GrantValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				http.Error(w, "authorization token is missing", http.StatusUnauthorized)
				return
			}
			claims, err := validator.Validate(tokenStr)
			if err != nil {
				http.Error(w, errors.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}
			// Inject the grant into context for downstream handlers
			next.ServeHTTP(w, r.WithContext(WithGrant(r.Context(), claims)))
		})
	}
}

func WithGrant(ctx context.Context, claims *GrantClaims) context.Context {
	return context.WithValue(ctx, grantKey, claims)
}

func GrantFromContext(ctx context.Context) (*GrantClaims, bool) {
	claims, ok := ctx.Value(grantKey).(*GrantClaims)
	return claims, ok && claims != nil
}

func bearer(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return r.URL.Query().Get("token")
}
