package middleware

import (
	"net/http"
	"net/url"

	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
)

// SessionUserIDKey is the session key holding the logged-in user's ID.
const SessionUserIDKey = "authenticatedUserID"

// ContextUserKey is the echo context key the resolved *models.User is
// stored under.
const ContextUserKey = "currentUser"

// LoginPath is where unauthenticated requests to protected endpoints are
// redirected, with the original path in the next parameter.
const LoginPath = "/auth/login"

// CurrentUser resolves the session's user ID into a user record and puts
// it on the request context. Anonymous requests pass through with no
// user set.
func CurrentUser(sessions *scs.SessionManager, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := sessions.GetInt(c.Request().Context(), SessionUserIDKey)
			if userID > 0 {
				user, err := userRepo.GetUserByID(uint(userID))
				if err == nil {
					c.Set(ContextUserKey, user)
				}
				// A stale session referencing a gone user is treated
				// as anonymous rather than an error.
			}
			return next(c)
		}
	}
}

// RequireAuth guards protected endpoints. Anonymous requests are
// redirected to the login page carrying the original path as next; no
// handler runs, so nothing is ever mutated.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get(ContextUserKey) == nil {
				target := LoginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
