package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-client/internal/core/ports"
)

// PageHandler serves the navigable routes behind the guard. Rendering is out
// of scope; each page resolves to a small view descriptor.
type PageHandler struct {
	session ports.Session
}

func NewPageHandler(session ports.Session) *PageHandler {
	return &PageHandler{session: session}
}

type pageResponse struct {
	Route         string `json:"route"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

func (h *PageHandler) Render(c echo.Context) error {
	resp := pageResponse{
		Route:         c.Request().URL.Path,
		Authenticated: h.session.IsAuthenticated(),
	}
	if user := h.session.CurrentUser(); user != nil {
		resp.Username = user.Username
	}
	return c.JSON(http.StatusOK, resp)
}
