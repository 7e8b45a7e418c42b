package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped invalid credentials", fmt.Errorf("%w: bad password", domain.ErrInvalidCredentials), http.StatusUnauthorized},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{"authorization expired", domain.ErrAuthorizationExpired, http.StatusUnauthorized},
		{"corrupted state", domain.ErrCorruptedState, http.StatusUnauthorized},
		{"malformed response", domain.ErrMalformedResponse, http.StatusBadGateway},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad input"), http.StatusBadRequest},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError},
	}

	handle := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if body.Success {
				t.Fatalf("error body must carry success=false")
			}
			if body.Message == "" {
				t.Fatalf("error body must carry a message")
			}
		})
	}
}

func TestHTTPErrorHandler_InternalDetailsNotLeaked(t *testing.T) {
	handle := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(errors.New("dial tcp 10.0.0.4:5432: connection refused"), c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal cause leaked to the client: %q", body.Message)
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	handle := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusFound); err != nil {
		t.Fatalf("prime response: %v", err)
	}
	handle(domain.ErrNotAuthenticated, c)

	if rec.Code != http.StatusFound {
		t.Fatalf("committed response was overwritten: %d", rec.Code)
	}
}
