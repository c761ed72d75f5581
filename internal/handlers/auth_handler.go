package handlers

import (
	"errors"
	"net/http"

	"cafeteria/internal/forms"
	"cafeteria/internal/metrics"
	"cafeteria/internal/services"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgRegistered         = "Registration successful! Please log in."
	msgInvalidCredentials = "Invalid username or password."
	msgUsernameTaken      = "That username is already taken."
)

type AuthHandler struct {
	userService services.UserService
	sessions    *session.Manager
	pages       *Pages
	metrics     *metrics.Metrics
}

func NewAuthHandler(
	userService services.UserService,
	sessions *session.Manager,
	pages *Pages,
	m *metrics.Metrics,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		pages:       pages,
		metrics:     m,
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.renderRegister(c, &forms.RegisterForm{}, nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if errs := forms.Bind(c, &form); errs != nil {
		h.renderRegister(c, &form, errs)
		return
	}

	_, err := h.userService.Register(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, services.ErrUsernameTaken) {
		h.renderRegister(c, &form, forms.Errors{"username": msgUsernameTaken})
		return
	}
	if err != nil {
		h.pages.Error(c, err)
		return
	}

	h.metrics.Registrations.Inc()
	h.pages.Flash(c, msgRegistered)
	redirect(c, "/login")
}

func (h *AuthHandler) renderRegister(c *gin.Context, form *forms.RegisterForm, errs forms.Errors) {
	form.Password = ""
	h.pages.Render(c, http.StatusOK, "register.html", "Register", gin.H{"Form": form, "Errors": errs})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.renderLogin(c, &forms.LoginForm{}, nil, nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if errs := forms.Bind(c, &form); errs != nil {
		h.renderLogin(c, &form, errs, nil)
		return
	}

	_, err := h.sessions.Login(c, h.userService, form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.metrics.LoginFailures.Inc()
		h.renderLogin(c, &form, nil, []string{msgInvalidCredentials})
		return
	}
	if err != nil {
		h.pages.Error(c, err)
		return
	}

	redirect(c, "/dashboard")
}

func (h *AuthHandler) renderLogin(c *gin.Context, form *forms.LoginForm, errs forms.Errors, flashes []string) {
	form.Password = ""
	h.pages.Render(c, http.StatusOK, "login.html", "Log in", gin.H{"Form": form, "Errors": errs, "Flashes": flashes})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.pages.Error(c, err)
		return
	}
	redirect(c, "/")
}
