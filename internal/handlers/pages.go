package handlers

import (
	"errors"
	"net/http"

	"cafeteria/internal/forms"
	"cafeteria/internal/middleware"
	"cafeteria/internal/models"
	"cafeteria/internal/services"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pages renders templates with the data every page needs: the visitor's
// login state and pending flash messages.
type Pages struct {
	sessions *session.Manager
	log      logrus.FieldLogger
}

func NewPages(sessions *session.Manager, log logrus.FieldLogger) *Pages {
	return &Pages{sessions: sessions, log: log}
}

// Render writes the named template. Flashes already present in data are
// shown after the queued ones.
func (p *Pages) Render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title

	flashes, err := p.sessions.Flashes(c)
	if err != nil {
		c.Error(err)
	}
	if extra, ok := data["Flashes"].([]string); ok {
		flashes = append(flashes, extra...)
	}
	data["Flashes"] = flashes

	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}

	// Protected routes carry the role just read from the database.
	current := p.sessions.Current(c)
	role, ok := c.Get(middleware.RoleKey)
	if !ok && current != nil {
		role = current.Role
	}
	data["LoggedIn"] = current != nil
	data["IsAdmin"] = current != nil && role == string(models.RoleAdmin)

	c.HTML(status, name, data)
}

// Flash queues msg for the next page. A failure is logged, not fatal.
func (p *Pages) Flash(c *gin.Context, msg string) {
	if err := p.sessions.AddFlash(c, msg); err != nil {
		c.Error(err)
	}
}

// Error renders a failed service call: 404 for missing records, 500 for
// everything else.
func (p *Pages) Error(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		p.Render(c, http.StatusNotFound, "error.html", "Not found", gin.H{"Message": capitalize(err.Error()) + "."})
		return
	}

	c.Error(err)
	p.log.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	p.InternalError(c)
}

func (p *Pages) NotFound(c *gin.Context) {
	p.Render(c, http.StatusNotFound, "error.html", "Not found", gin.H{"Message": "The page you asked for does not exist."})
}

func (p *Pages) Forbidden(c *gin.Context) {
	p.Render(c, http.StatusForbidden, "error.html", "Forbidden", gin.H{"Message": "This page is only available to administrators."})
}

func (p *Pages) InternalError(c *gin.Context) {
	p.Render(c, http.StatusInternalServerError, "error.html", "Something went wrong", gin.H{"Message": "We could not complete your request. Please try again."})
}

// redirect answers a successful POST.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
