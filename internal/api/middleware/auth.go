package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"taskhub/internal/common"
	"taskhub/internal/common/security"
	"taskhub/internal/domain/model"
	"taskhub/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const CurrentUserCtxKey contextKey = "currentUser"

// Authenticator resolves the verified token to a stored user and attaches it
// to the request context. Requests whose token references a user that no
// longer exists are rejected the same as requests with a bad token.
func Authenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

			if err != nil {
				if strings.Contains(err.Error(), "token not found") || token == nil {
					common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				} else {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				}
				return
			}

			if token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					common.RespondWithError(w, http.StatusUnauthorized, "User no longer exists")
				} else {
					common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve user")
				}
				return
			}
			user.HashedPassword = "" // Never carried past this point

			ctx := context.WithValue(r.Context(), CurrentUserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCurrentUser returns the identity attached by Authenticator.
func GetCurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(*model.User)
	return user, ok
}
