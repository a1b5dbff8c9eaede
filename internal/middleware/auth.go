package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deckwise/backend/internal/errs"
	"github.com/deckwise/backend/internal/response"
	"github.com/deckwise/backend/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware enforces Clerk authentication on protected routes.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth wraps Clerk's header-authorization middleware. On a valid
// Bearer token it stores the Clerk user ID in echo context under UserIDKey;
// on a missing or invalid token it writes a 401 in the standard error
// envelope.
//
// The failure handler runs inside Clerk's net/http middleware, before echo
// gets control back, so it has to write the envelope bytes itself instead
// of returning an error to the global handler.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()

				env := response.Error("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(env.Status)

				if err := json.NewEncoder(w).Encode(env.Body); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireAuth").
						Dur("duration", time.Since(start)).
						Msg("failed to write JSON response")
				}
			}))))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized")
			}

			c.Set(UserIDKey, claims.Subject)

			auth.server.Logger.Debug().
				Str("function", "RequireAuth").
				Str("user_id", claims.Subject).
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("user authenticated successfully")

			return next(c)
		})
}
