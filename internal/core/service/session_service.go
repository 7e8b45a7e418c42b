package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/core/ports"
)

// SessionService holds the authenticated identity and credential token, and
// writes both through to persistent storage. Authenticated is always derived
// as "token present and identity present"; it is never stored independently.
//
// Every operation runs under a single mutex, so concurrent login/logout
// interleavings are serialized rather than left to callers.
type SessionService struct {
	mu      sync.Mutex
	api     ports.APIClient
	storage ports.SessionStorage
	log     zerolog.Logger

	user    *domain.User
	token   string
	loading bool

	// invalidated is set by Invalidate without taking the mutex. Accessors
	// honor it immediately; the next locked operation absorbs it into state.
	invalidated atomic.Bool
}

func NewSessionService(api ports.APIClient, storage ports.SessionStorage, log zerolog.Logger) *SessionService {
	return &SessionService{api: api, storage: storage, log: log}
}

// CurrentUser returns a copy of the authenticated identity, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	if s.invalidated.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current credential token, or the empty string.
func (s *SessionService) Token() string {
	if s.invalidated.Load() {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated derives the authentication state from its inputs.
func (s *SessionService) IsAuthenticated() bool {
	if s.invalidated.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Invalidate forces the session unauthenticated. It never takes the operation
// mutex, so the 401 interceptor can call it even while a session operation is
// mid-flight against the remote. Persisted keys are the interceptor's to
// clear; this only kills the in-memory half.
func (s *SessionService) Invalidate() {
	s.invalidated.Store(true)
}

// absorbInvalidation folds a pending invalidation into locked state. Must be
// called with the mutex held, at the start of every mutating operation.
func (s *SessionService) absorbInvalidation() {
	if s.invalidated.CompareAndSwap(true, false) {
		s.user = nil
		s.token = ""
	}
}

// IsLoading reports whether a login/refresh/restore is in flight.
func (s *SessionService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Login authenticates the session. The demo account table is consulted first:
// a known demo username resolves entirely locally and never reaches the
// remote. Unknown usernames delegate to the remote API. On any failure the
// session remains unauthenticated and nothing is persisted.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absorbInvalidation()
	s.loading = true
	defer func() { s.loading = false }()

	if acct, ok := lookupDemoAccount(creds.Username); ok {
		if !demoPasswordMatches(creds.Password) {
			return domain.ErrInvalidCredentials
		}
		now := time.Now().UTC()
		token, err := mintDemoToken(acct, now)
		if err != nil {
			return fmt.Errorf("mint demo token: %w", err)
		}
		s.log.Info().Str("username", creds.Username).Msg("demo login")
		return s.establish(ctx, token, acct.identity(now), creds.RememberMe)
	}

	env, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	if !env.Success || env.Data == nil || env.Data.Token == "" || env.Data.User == nil {
		if env.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, env.Message)
		}
		return domain.ErrInvalidCredentials
	}

	s.log.Info().Str("username", creds.Username).Msg("remote login")
	return s.establish(ctx, env.Data.Token, env.Data.User, creds.RememberMe)
}

// establish transitions to Authenticated and writes through to storage: the
// token always, the serialized identity only when remember was requested.
// Without remember any previously persisted identity is removed so storage
// never holds a mismatched token/identity pair.
func (s *SessionService) establish(ctx context.Context, token string, user *domain.User, remember bool) error {
	s.token = token
	s.user = user

	if err := s.storage.Write(ctx, domain.StorageKeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if remember {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("serialize identity: %w", err)
		}
		if err := s.storage.Write(ctx, domain.StorageKeyUser, string(raw)); err != nil {
			return fmt.Errorf("persist identity: %w", err)
		}
		return nil
	}
	if err := s.storage.Delete(ctx, domain.StorageKeyUser); err != nil {
		return fmt.Errorf("clear stale identity: %w", err)
	}
	return nil
}

// Logout notifies the remote best-effort when a token exists, then
// unconditionally resets the session and clears persisted state. Calling it
// with no active session is a no-op beyond the redundant clears.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absorbInvalidation()
	s.logoutLocked(ctx)
	return nil
}

func (s *SessionService) logoutLocked(ctx context.Context) {
	if s.token != "" {
		if _, err := s.api.Logout(ctx); err != nil {
			s.log.Debug().Err(err).Msg("remote logout notice failed")
		}
	}

	s.user = nil
	s.token = ""
	s.invalidated.Store(false)
	for _, key := range []string{domain.StorageKeyToken, domain.StorageKeyUser} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("clear persisted session")
		}
	}
}

// LoadFromStorage hydrates the session from persisted state at startup. Both
// keys must be present; demo tokens are trusted as-is, anything else is
// validated against the remote. An identity that fails to parse is treated as
// corrupted state and forces a full logout.
func (s *SessionService) LoadFromStorage(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absorbInvalidation()
	s.loading = true
	defer func() { s.loading = false }()

	token, err := s.readKey(ctx, domain.StorageKeyToken)
	if err != nil {
		return err
	}
	rawUser, err := s.readKey(ctx, domain.StorageKeyUser)
	if err != nil {
		return err
	}
	if token == "" || rawUser == "" {
		return nil
	}

	// The token is adopted before the identity is parsed, so the reset on a
	// corrupted identity still sends the remote sign-out notice.
	s.token = token

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn().Err(err).Msg("persisted identity unreadable, resetting session")
		s.logoutLocked(ctx)
		return fmt.Errorf("%w: %v", domain.ErrCorruptedState, err)
	}
	s.user = &user

	if IsDemoToken(token) {
		s.log.Debug().Msg("demo session restored, skipping remote verification")
		return nil
	}
	return s.refreshLocked(ctx)
}

// readKey maps an absent key to the empty string.
func (s *SessionService) readKey(ctx context.Context, key string) (string, error) {
	value, err := s.storage.Read(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

// RefreshUserInfo re-fetches the identity for the current token. A no-op
// without a token or with a demo token. A failed refresh is an invalidated
// session, not a soft failure: the session is fully reset.
func (s *SessionService) RefreshUserInfo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absorbInvalidation()
	s.loading = true
	defer func() { s.loading = false }()
	return s.refreshLocked(ctx)
}

func (s *SessionService) refreshLocked(ctx context.Context) error {
	if s.token == "" || IsDemoToken(s.token) {
		return nil
	}

	env, err := s.api.GetCurrentUser(ctx)
	if err != nil {
		s.logoutLocked(ctx)
		return err
	}
	if !env.Success || env.Data == nil {
		s.logoutLocked(ctx)
		return domain.ErrAuthorizationExpired
	}

	s.user = env.Data
	return nil
}
