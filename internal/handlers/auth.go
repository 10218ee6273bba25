package handlers

import (
	"net/http"
	"strings"

	"github.com/akarpov/litepost/backend/internal/middleware"
	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup, login and logout for session-based auth
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *scs.SessionManager
	logger         *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions *scs.SessionManager, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
		logger:         logger,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

// Signup creates a new account
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	taken, err := h.userRepository.UsernameTaken(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if taken {
		return echo.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		h.logger.Errorw("creating user failed", "username", req.Username, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// LoginForm returns the login form bundle, echoing back the next path the
// requester should land on after authenticating.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form": models.LoginRequest{},
		"next": c.QueryParam("next"),
	})
}

// Login authenticates a user and starts a session. On success the session
// token is renewed and the requester is redirected to the sanitized next
// path, or the home feed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	ctx := c.Request().Context()
	if err := h.sessions.RenewToken(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
	}
	h.sessions.Put(ctx, middleware.SessionUserIDKey, int(user.ID))

	return c.Redirect(http.StatusFound, nextPath(c))
}

// Logout destroys the session and redirects to the home feed
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to end session")
	}
	return c.Redirect(http.StatusFound, "/")
}

// nextPath reads the post-login destination from the form or query and
// keeps only local paths, so the login redirect can't be pointed off-site.
func nextPath(c echo.Context) string {
	next := c.FormValue("next")
	if next == "" {
		next = c.QueryParam("next")
	}
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
