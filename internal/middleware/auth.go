package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sipas-org/sipas-api/internal/auth"
	"github.com/sipas-org/sipas-api/internal/http/respond"
)

type contextKey int

const claimsKey contextKey = iota

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

var (
	errMissingAuthorization = errors.New("missing required Authorization header")
	errMalformedBearer      = errors.New("malformed Authorization header (only Bearer scheme is supported)")
)

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformedBearer
	}
	return strings.TrimSpace(token), nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified claims in the request context.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err == nil {
				var claims *auth.Claims
				if claims, err = tokens.Parse(token); err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}
			slog.Debug("authentication failed", "path", r.URL.Path, "error", err)
			w.Header().Set("WWW-Authenticate", `Bearer charset="UTF-8"`)
			respond.Error(w, r, http.StatusUnauthorized, "invalid or missing token")
		})
	}
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
