package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// Tokener extracts the bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.UserDB, error)
}

// AuthMiddleware rejects requests without a valid token and stores the
// authenticated user and token in the request context.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			user, err := auth.Authenticate(ctx, token)
			if err != nil {
				if errors.Is(err, services.ErrUnauthenticated) {
					logger.FromContext(ctx).Infow("authorization failed", "err", err)
					writeError(w, http.StatusUnauthorized, "Invalid token.")
					return
				}
				logger.FromContext(ctx).Errorw("failed to authenticate", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user, token)))
		})
	}
}

type authContextKey int

const (
	userKey authContextKey = iota
	tokenKey
)

// UserFromContext returns the authenticated user, or nil outside AuthMiddleware.
func UserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}

// TokenFromContext returns the bearer token the request was authenticated with.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithUser stores user in ctx as AuthMiddleware does.
func WithUser(ctx context.Context, user *models.UserDB, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}
