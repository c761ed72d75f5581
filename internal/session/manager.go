// Package session tracks which user, if any, a browser is logged in as.
//
// The cookie carries only a signed random id; the record it names lives in a
// Store (Redis in production). A missing, expired or tampered cookie is an
// anonymous visitor.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cafeteria/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const contextKey = "session"

// Authenticator checks credentials. services.UserService satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type Options struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
}

type Manager struct {
	store Store
	codec *securecookie.SecureCookie
	opts  Options
	clock func() time.Time
}

// current is the per-request view of the session, cached on the gin context.
type current struct {
	id   string
	data *Data
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "cafeteria_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}

	hashKey := []byte(opts.Secret)
	if len(hashKey) == 0 {
		// Cookies will not survive a restart.
		hashKey = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(opts.TTL.Seconds()))

	return &Manager{store: store, codec: codec, opts: opts, clock: time.Now}
}

func (m *Manager) CookieName() string { return m.opts.CookieName }

// Login checks the credentials and, on success, binds a fresh session id to
// the user. Failures return the authenticator's error unchanged.
func (m *Manager) Login(c *gin.Context, auth Authenticator, username, password string) (*models.User, error) {
	user, err := auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		return nil, err
	}
	if err := m.Establish(c, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Establish rotates the session id and binds it to user. Pending flashes
// survive the rotation.
func (m *Manager) Establish(c *gin.Context, user *models.User) error {
	ctx := c.Request.Context()
	now := m.clock()

	data := &Data{CreatedAt: now}
	if cur := m.load(c); cur != nil {
		data.Flashes = cur.data.Flashes
		if err := m.store.DeleteSession(ctx, cur.id); err != nil {
			return fmt.Errorf("session: delete previous: %w", err)
		}
	}
	data.UserID = user.ID
	data.Role = user.Role

	return m.save(c, &current{id: uuid.NewString(), data: data})
}

// Logout destroys the session record and expires the cookie. It succeeds for
// anonymous visitors too.
func (m *Manager) Logout(c *gin.Context) error {
	cur := m.load(c)
	c.Set(contextKey, (*current)(nil))
	m.expireCookie(c)
	if cur == nil {
		return nil
	}
	if err := m.store.DeleteSession(c.Request.Context(), cur.id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// Current returns the session bound to the request, or nil when anonymous.
func (m *Manager) Current(c *gin.Context) *Data {
	cur := m.load(c)
	if cur == nil || !cur.data.Authenticated() {
		return nil
	}
	return cur.data
}

// AddFlash queues a one-shot message for the next rendered page. Anonymous
// visitors get a session just to carry it.
func (m *Manager) AddFlash(c *gin.Context, msg string) error {
	cur := m.load(c)
	if cur == nil {
		cur = &current{id: uuid.NewString(), data: &Data{CreatedAt: m.clock()}}
	}
	cur.data.Flashes = append(cur.data.Flashes, msg)
	return m.save(c, cur)
}

// Flashes returns and clears queued messages.
func (m *Manager) Flashes(c *gin.Context) ([]string, error) {
	cur := m.load(c)
	if cur == nil || len(cur.data.Flashes) == 0 {
		return nil, nil
	}
	flashes := cur.data.Flashes
	cur.data.Flashes = nil

	if !cur.data.Authenticated() {
		c.Set(contextKey, (*current)(nil))
		m.expireCookie(c)
		if err := m.store.DeleteSession(c.Request.Context(), cur.id); err != nil {
			return flashes, fmt.Errorf("session: delete: %w", err)
		}
		return flashes, nil
	}
	return flashes, m.save(c, cur)
}

func (m *Manager) load(c *gin.Context) *current {
	if v, ok := c.Get(contextKey); ok {
		cur, _ := v.(*current)
		return cur
	}

	cur := m.read(c)
	c.Set(contextKey, cur)
	return cur
}

func (m *Manager) read(c *gin.Context) *current {
	cookie, err := c.Request.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var id string
	if err := m.codec.Decode(m.opts.CookieName, cookie.Value, &id); err != nil {
		return nil
	}

	data, err := m.store.GetSession(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.Error(fmt.Errorf("session: load: %w", err))
		}
		return nil
	}
	return &current{id: id, data: data}
}

func (m *Manager) save(c *gin.Context, cur *current) error {
	cur.data.UpdatedAt = m.clock()
	if err := m.store.SetSession(c.Request.Context(), cur.id, cur.data, m.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	encoded, err := m.codec.Encode(m.opts.CookieName, cur.id)
	if err != nil {
		return fmt.Errorf("session: encode cookie: %w", err)
	}
	m.setCookie(c, encoded, int(m.opts.TTL.Seconds()))
	c.Set(contextKey, cur)
	return nil
}

func (m *Manager) expireCookie(c *gin.Context) {
	m.setCookie(c, "", -1)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
