package ports

import (
	"context"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// Session is the single source of truth for "is this client authenticated,
// as whom". The route guard and all handlers consume it through this
// interface.
type Session interface {
	// Login authenticates with the demo account table first, then the remote
	// API. On failure the session stays unauthenticated.
	Login(ctx context.Context, creds domain.Credentials) error
	// Logout clears the in-memory session and persisted keys. Idempotent.
	Logout(ctx context.Context) error
	// LoadFromStorage hydrates the session from persisted state, verifying
	// non-demo tokens against the remote.
	LoadFromStorage(ctx context.Context) error
	// RefreshUserInfo re-fetches the identity for the current token. A failed
	// refresh invalidates the whole session.
	RefreshUserInfo(ctx context.Context) error

	CurrentUser() *domain.User
	Token() string
	IsAuthenticated() bool
	IsLoading() bool
}
