package middleware

import (
	"context"
	"errors"
	"net/http"

	"cafeteria/internal/models"
	"cafeteria/internal/services"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// LoginPath is where anonymous visitors are sent from protected routes.
const LoginPath = "/login"

// UserLookup loads the account behind a session. services.UserService
// satisfies it.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// RequireAuth redirects anonymous visitors to the login page. The account is
// re-read on every request, so a deleted user is logged out and a role change
// applies at once. fail renders the response when the lookup itself errors;
// nil sends a bare 500.
func RequireAuth(m *session.Manager, users UserLookup, fail gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := m.Current(c)
		if data == nil {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), data.UserID)
		if errors.Is(err, services.ErrNotFound) {
			if err := m.Logout(c); err != nil {
				c.Error(err)
			}
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		if err != nil {
			c.Error(err)
			c.Status(http.StatusInternalServerError)
			if fail != nil {
				fail(c)
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(RoleKey, user.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. deny renders the response for
// users without the admin role; nil sends a bare 403.
func RequireAdmin(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if role != string(models.RoleAdmin) {
			c.Status(http.StatusForbidden)
			if deny != nil {
				deny(c)
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the id set by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
