package middleware

import (
	"context"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/logger"
	"storefront/internal/user"
	"storefront/internal/utils"

	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// RequireAuth rejects requests without a valid session token with 401 and
// puts the caller's identity on the request context otherwise.
func RequireAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			u, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("rejected session token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				utils.WriteError(w, r, err)
				return
			}

			ctx := utils.SetUserContext(r.Context(), u.ID, u.Email, string(u.Role))
			ctx = logger.WithUserID(ctx, u.ID.Hex())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
