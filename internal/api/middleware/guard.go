package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-client/internal/api/metrics"
	"github.com/learnhub/learnhub-client/internal/guard"
)

// Guard evaluates the route guard before every page navigation, issuing a 302
// to the decision's target when access is denied.
func Guard(g *guard.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := g.Evaluate(c.Request().Context(), c.Request().URL.Path)
			metrics.GuardDecisionsTotal.WithLabelValues(decisionLabel(decision)).Inc()

			if !decision.Allow {
				return c.Redirect(http.StatusFound, decision.RedirectTo)
			}
			return next(c)
		}
	}
}

func decisionLabel(d guard.Decision) string {
	switch {
	case d.Allow:
		return "allow"
	case d.RedirectTo == guard.LoginRoute:
		return "redirect_login"
	default:
		return "redirect_home"
	}
}
