package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/storage"
)

func newTestClient(baseURL string, store *storage.Memory, onExpired func()) *Client {
	return New(Config{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		Storage:       store,
		OnAuthExpired: onExpired,
		Logger:        zerolog.Nop(),
	})
}

func TestClient_AttachesBearerWhenTokenPresent(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Write(context.Background(), domain.StorageKeyToken, "token-abc"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":1,"username":"admin","roleId":1}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, store, nil)
	env, err := c.GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Success || env.Data == nil || env.Data.Username != "admin" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestClient_NoTokenSendsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"courses":[],"total":0}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, storage.NewMemory(), nil)
	if _, err := c.GetCourses(context.Background(), domain.CourseFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Unauthorized_ClearsSessionAndFiresHook(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	_ = store.Write(ctx, domain.StorageKeyToken, "expired-token")
	_ = store.Write(ctx, domain.StorageKeyUser, `{"id":1}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookFired := false
	c := newTestClient(srv.URL, store, func() { hookFired = true })

	_, err := c.GetCurrentUser(ctx)
	if !errors.Is(err, domain.ErrAuthorizationExpired) {
		t.Fatalf("expected ErrAuthorizationExpired, got %v", err)
	}
	if !hookFired {
		t.Fatalf("expiry hook did not fire")
	}
	for _, key := range []string{domain.StorageKeyToken, domain.StorageKeyUser} {
		if _, err := store.Read(ctx, key); !errors.Is(err, domain.ErrKeyNotFound) {
			t.Fatalf("expected %s cleared after 401, got %v", key, err)
		}
	}
}

func TestClient_TransportFailure_FailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL, storage.NewMemory(), nil)
	env, err := c.Login(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	if err != nil {
		t.Fatalf("transport failures must not surface as errors, got %v", err)
	}
	if env.Success || env.Message == "" {
		t.Fatalf("expected failure envelope with reason, got %+v", env)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	cases := map[string]string{
		"not json":        `<!doctype html>`,
		"missing success": `{"data":{"id":1}}`,
		"unknown fields":  `{"success":true,"rows":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, storage.NewMemory(), nil)
			_, err := c.GetCurrentUser(context.Background())
			if !errors.Is(err, domain.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestClient_RemoteError_FailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database down"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, storage.NewMemory(), nil)
	env, err := c.GetCourse(context.Background(), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Success || env.Message != "database down" {
		t.Fatalf("expected failure envelope with remote message, got %+v", env)
	}
}

func TestClient_GetCourses_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "3" || q.Get("difficulty") != "beginner" || q.Get("search") != "go" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"courses":[],"total":0}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, storage.NewMemory(), nil)
	_, err := c.GetCourses(context.Background(), domain.CourseFilter{
		Category: 3, Difficulty: domain.DifficultyBeginner, Search: "go",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Login_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-1","user":{"id":9,"username":"eve","roleId":3}}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, storage.NewMemory(), nil)
	env, err := c.Login(context.Background(), domain.Credentials{Username: "eve", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Success || env.Data == nil || env.Data.Token != "tok-1" || env.Data.User == nil || env.Data.User.ID != 9 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
