package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/moneta-finance/moneta/internal/api/auth"
	"github.com/moneta-finance/moneta/internal/api/flash"
	"github.com/moneta-finance/moneta/internal/api/models"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/assistant"
	"github.com/moneta-finance/moneta/web/templates/pages"
)

// Pinger reports whether the storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	assets      *assets.Manager
	assistant   *assistant.Bridge
	credentials *auth.Credentials
	db          Pinger
}

func New(manager *assets.Manager, bridge *assistant.Bridge, credentials *auth.Credentials, db Pinger) *Handler {
	return &Handler{
		assets:      manager,
		assistant:   bridge,
		credentials: credentials,
		db:          db,
	}
}

// page collects the shared page data and consumes the pending notices.
func (h *Handler) page(c *gin.Context, title string) models.Page {
	username, _ := auth.CurrentUsername(c)
	return models.Page{
		Title:   title,
		User:    username,
		Flashes: models.ToFlashes(flash.Pop(c)),
	}
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render page", "path", c.FullPath(), "error", err)
	}
}

func redirectWithFlash(c *gin.Context, category flash.Category, text, location string) {
	flash.Add(c, category, text)
	c.Redirect(http.StatusFound, location)
}

func (h *Handler) Home(c *gin.Context) {
	if username, ok := auth.CurrentUsername(c); ok {
		redirectWithFlash(c, flash.Success, "Logged in as "+username, "/dashboard")
		return
	}
	render(c, http.StatusOK, pages.Index(h.page(c, "Home")))
}

func (h *Handler) About(c *gin.Context) {
	render(c, http.StatusOK, pages.About(h.page(c, "About")))
}

func (h *Handler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, pages.Login(models.CredentialsForm{Page: h.page(c, "Login")}))
}

func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.credentials.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			form := models.CredentialsForm{Page: h.page(c, "Login"), Username: username}
			form.AddNotice(string(flash.Danger), "Invalid credentials, please try again.")
			render(c, http.StatusOK, pages.Login(form))
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	if err := auth.Login(c, user.Username); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}
	log.Info("user logged in", "username", user.Username)
	redirectWithFlash(c, flash.Success, "Login successful!", "/dashboard")
}

func (h *Handler) RegisterForm(c *gin.Context) {
	render(c, http.StatusOK, pages.Register(models.CredentialsForm{Page: h.page(c, "Register")}))
}

func (h *Handler) Register(c *gin.Context) {
	_, err := h.credentials.Register(
		c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("password"),
		c.PostForm("confirmPassword"),
	)
	switch {
	case err == nil:
		redirectWithFlash(c, flash.Success, "Registration successful! You can now log in.", "/login")
	case errors.Is(err, auth.ErrPasswordMismatch):
		redirectWithFlash(c, flash.Danger, "Passwords don't match", "/register")
	case errors.Is(err, auth.ErrMissingFields):
		redirectWithFlash(c, flash.Danger, "Username and password are required.", "/register")
	case errors.Is(err, auth.ErrUsernameTaken):
		redirectWithFlash(c, flash.Danger, "Username is already taken.", "/register")
	case errors.Is(err, auth.ErrPasswordTooLong):
		redirectWithFlash(c, flash.Danger, "Password is too long.", "/register")
	default:
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
	}
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.Logout(c); err != nil {
		if err := c.AbortWithError(http.StatusInternalServerError, err); err != nil {
			log.Error("Failed to abort with error", "error", err)
		}
		return
	}
	redirectWithFlash(c, flash.Info, "You have been logged out.", "/login")
}

// Healthz reports whether the database is reachable.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		log.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
