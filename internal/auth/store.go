// Package auth holds the authentication state: the current user, the
// persisted token, and the login/register/logout flows.
package auth

import (
	"context"
	"sync"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
	"github.com/soyeahso/studyline/internal/notify"
)

// Gateway is the slice of the API client the auth store depends on.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Register(ctx context.Context, email, username, password string) (*api.TokenResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)
	Reauthorized()
}

// Store tracks the authenticated user. A user is authenticated iff
// User() is non-nil.
type Store struct {
	mu      sync.Mutex
	gw      Gateway
	creds   *CredentialStore
	notify  notify.Notifier
	log     *logging.Logger
	user    *domain.User
	loading bool
	lastErr string
}

// NewStore creates an auth store. The user saved alongside a persisted
// token survives restarts, so IsAuthenticated holds without a round trip.
func NewStore(gw Gateway, creds *CredentialStore, n notify.Notifier, log *logging.Logger) *Store {
	return &Store{
		gw:     gw,
		creds:  creds,
		notify: n,
		log:    log.Sub("auth"),
		user:   creds.User(),
	}
}

// User returns the current account, or nil when logged out.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// IsLoading reports whether an auth operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last auth error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login exchanges credentials for a token and persists it.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.gw.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}
	return s.establish(resp)
}

// Register creates an account and logs in with the returned token.
func (s *Store) Register(ctx context.Context, email, username, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.gw.Register(ctx, email, username, password)
	if err != nil {
		s.fail(err)
		return err
	}
	return s.establish(resp)
}

func (s *Store) establish(resp *api.TokenResponse) error {
	user := resp.User
	if err := s.creds.Save(resp.AccessToken, &user); err != nil {
		s.fail(err)
		return err
	}
	s.gw.Reauthorized()

	s.mu.Lock()
	s.user = &user
	s.lastErr = ""
	s.mu.Unlock()

	s.log.Info().Str("user", user.Username).Msg("logged in")
	return nil
}

// Logout clears local credentials regardless of whether the server call
// succeeds; a dead token server-side changes nothing for local state.
func (s *Store) Logout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("server logout failed; clearing locally anyway")
	}

	if err := s.creds.Clear(); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Refresh re-fetches the account behind the stored token and updates both
// the in-memory user and the persisted copy.
func (s *Store) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.gw.CurrentUser(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	if err := s.creds.Save(s.creds.Token(), user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refreshed user")
	}

	s.mu.Lock()
	s.user = user
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// ForgetUser drops the in-memory user after a session expiry without
// touching files; the API client has already cleared them.
func (s *Store) ForgetUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	msg := api.ErrorMessage(err)
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.notify.Error(msg)
}
