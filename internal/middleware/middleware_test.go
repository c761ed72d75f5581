package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeteria/internal/models"
	"cafeteria/internal/services"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUsers stands in for the users table.
type fakeUsers struct {
	users map[uint]*models.User
	err   error
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return user, nil
}

func newUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func newManager() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), session.Options{CookieName: "sid", Secret: "middleware-secret", TTL: time.Hour})
}

// loginCookie returns a cookie for a session bound to user.
func loginCookie(t *testing.T, m *session.Manager, user *models.User) *http.Cookie {
	t.Helper()
	r := gin.New()
	r.GET("/establish", func(c *gin.Context) {
		require.NoError(t, m.Establish(c, user))
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/establish", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func protectedRouter(m *session.Manager, users UserLookup) *gin.Engine {
	r := gin.New()
	authed := r.Group("/", RequireAuth(m, users, func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "lookup failed")
	}))
	authed.GET("/dashboard", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	admin := authed.Group("/admin", RequireAdmin(func(c *gin.Context) {
		c.String(http.StatusForbidden, "admins only")
	}))
	admin.GET("/orders", func(c *gin.Context) { c.String(http.StatusOK, "all orders") })
	return r
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r := protectedRouter(newManager(), newUsers())

	for _, path := range []string{"/dashboard", "/admin/orders"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, LoginPath, w.Header().Get("Location"), path)
	}
}

func TestRequireAuthSetsUser(t *testing.T) {
	m := newManager()
	user := &models.User{ID: 12, Role: string(models.RoleCustomer)}
	r := protectedRouter(m, newUsers(user))
	cookie := loginCookie(t, m, user)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":12}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	m := newManager()

	tests := []struct {
		name     string
		role     models.UserRole
		wantCode int
		wantBody string
	}{
		{"customer", models.RoleCustomer, http.StatusForbidden, "admins only"},
		{"admin", models.RoleAdmin, http.StatusOK, "all orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{ID: 1, Role: string(tt.role)}
			r := protectedRouter(m, newUsers(user))
			cookie := loginCookie(t, m, user)
			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			req.AddCookie(cookie)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRequireAdminUsesCurrentRole(t *testing.T) {
	m := newManager()
	users := newUsers(&models.User{ID: 4, Role: string(models.RoleAdmin)})
	r := protectedRouter(m, users)
	cookie := loginCookie(t, m, users.users[4])

	users.users[4] = &models.User{ID: 4, Role: string(models.RoleCustomer)}

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAuthLogsOutDeletedUser(t *testing.T) {
	m := newManager()
	users := newUsers(&models.User{ID: 8, Role: string(models.RoleAdmin)})
	r := protectedRouter(m, users)
	cookie := loginCookie(t, m, users.users[8])

	delete(users.users, 8)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))

	var expired bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sid" && ck.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired, "session cookie is expired")
}

func TestRequireAuthLookupFailure(t *testing.T) {
	m := newManager()
	users := newUsers(&models.User{ID: 2})
	r := protectedRouter(m, users)
	cookie := loginCookie(t, m, users.users[2])

	users.err = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "lookup failed", w.Body.String())
}

func TestTimeoutSetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecoveryRendersPage(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	r := gin.New()
	r.Use(Recovery(log, func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "something went wrong")
	}))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "something went wrong", w.Body.String())
	assert.Contains(t, buf.String(), "kaboom")
}

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(Logger(log))
	r.GET("/items/:id", func(c *gin.Context) {
		c.Set(UserIDKey, uint(5))
		c.Status(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/3", nil))

	out := buf.String()
	assert.Contains(t, out, `"route":"/items/:id"`)
	assert.Contains(t, out, `"status":202`)
	assert.Contains(t, out, `"user_id":5`)
	assert.Contains(t, out, `"level":"info"`)
}
