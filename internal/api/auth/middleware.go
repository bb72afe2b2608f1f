package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/moneta-finance/moneta/internal/api/flash"
	"github.com/moneta-finance/moneta/internal/database"
)

const (
	// SessionUsernameKey is the session key holding the authenticated username.
	SessionUsernameKey = "username"
	// ContextUserKey is the gin context key holding the resolved *database.User.
	ContextUserKey = "user"

	loginPath = "/login"
)

// UserLookup resolves a username to its user record.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*database.User, error)
}

// CurrentUsername returns the authenticated username, if any.
func CurrentUsername(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	username := getSessionString(session, SessionUsernameKey)
	return username, username != ""
}

// Login marks the session as authenticated for username.
func Login(c *gin.Context, username string) error {
	session := sessions.Default(c)
	session.Set(SessionUsernameKey, username)
	return session.Save()
}

// Logout removes the authenticated user from the session.
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(SessionUsernameKey)
	return session.Save()
}

// RequireAuth returns middleware that rejects requests without an authenticated session.
// Unauthenticated requests are redirected to the login page before any handler runs.
func RequireAuth(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := CurrentUsername(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		user, err := users.GetUserByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, database.ErrUserNotFound) {
				log.Warn("session references unknown user", "username", username)
				if err := Logout(c); err != nil {
					log.Error("Failed to clear session", "error", err)
				}
				redirectToLogin(c)
				return
			}
			c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *gin.Context) *database.User {
	return c.MustGet(ContextUserKey).(*database.User)
}

func redirectToLogin(c *gin.Context) {
	flash.Add(c, flash.Warning, "Please log in first.")
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}

// Helper function to safely get session values.
func getSessionString(session sessions.Session, key string) string {
	if val := session.Get(key); val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
