package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	fegerrs "github.com/lmoran/feedreg/internal/errors"
	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/logging"
	"github.com/lmoran/feedreg/internal/serverutil"
)

type contextKey string

const userIDKey contextKey = "userID"

const tokenScheme = "Token "

// requireTokenMiddleware resolves the Authorization header to a user
// and stashes their id on the request context. Requests without a
// valid token are rejected before any handler runs.
func requireTokenMiddleware(repo feedreg.Repository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, tokenScheme) {
				writeAuthError(w, "Authentication credentials were not provided.")
				return
			}

			uid, err := repo.UserIDForToken(r.Context(), strings.TrimPrefix(header, tokenScheme))
			if errors.Is(err, feedreg.ErrNotFound) {
				writeAuthError(w, "Invalid token.")
				return
			}
			if err != nil {
				slog.Error("error resolving token", "error", err)
				if err := serverutil.WriteJSON(w, http.StatusInternalServerError, fegerrs.E("internal server error")); err != nil {
					slog.Error("error writing response", "error", err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uid)
			ctx = logging.Ctx(ctx, slog.String("user_id", uid))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	if err := serverutil.WriteJSON(w, http.StatusUnauthorized, fegerrs.E(http.StatusUnauthorized, msg)); err != nil {
		slog.Error("error writing response", "error", err)
	}
}

// userID pulls the authenticated user's id off the request context.
func userID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}
