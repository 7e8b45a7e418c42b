package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-client/internal/api/metrics"
	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/core/ports"
	"github.com/learnhub/learnhub-client/internal/core/service"
)

type AuthHandler struct {
	session ports.Session
	api     ports.APIClient
}

func NewAuthHandler(session ports.Session, api ports.APIClient) *AuthHandler {
	return &AuthHandler{session: session, api: api}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates the session from the demo table or the remote API.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  domain.Envelope[loginResponse]
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	method := "remote"
	if service.IsDemoUsername(creds.Username) {
		method = "demo"
	}

	if err := h.session.Login(c.Request().Context(), creds); err != nil {
		metrics.LoginsTotal.WithLabelValues(method, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(method, "success").Inc()
	return c.JSON(http.StatusOK, domain.OK(loginResponse{
		Token: h.session.Token(),
		User:  h.session.CurrentUser(),
	}))
}

// Register creates a new account through the remote API.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterData  true  "Registration details"
// @Success      201   {object}  domain.Envelope[domain.User]
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var data domain.RegisterData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	env, err := h.api.Register(c.Request().Context(), data)
	if err != nil {
		return err
	}
	if !env.Success {
		return c.JSON(http.StatusOK, env)
	}
	return c.JSON(http.StatusCreated, env)
}

// Logout resets the session. Safe to call without an active session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Envelope[domain.Empty]
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.SessionResetsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, domain.OK(domain.Empty{}))
}

// Me returns the authenticated identity.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Envelope[domain.User]
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := h.session.CurrentUser()
	if !h.session.IsAuthenticated() || user == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, domain.OK(*user))
}

// Refresh re-validates the session identity against the remote.
//
// @Summary      Refresh session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Envelope[domain.User]
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	if err := h.session.RefreshUserInfo(c.Request().Context()); err != nil {
		return err
	}
	return h.Me(c)
}
