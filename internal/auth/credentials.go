package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
)

const (
	cookieName = "access_token"
	cookieTTL  = 7 * 24 * time.Hour
)

// CredentialStore persists the bearer token in two places: a JSON token
// file this client reads at request time, and a Netscape-format cookie
// file the companion web middleware consumes for route gating. The two are
// always written and cleared together.
type CredentialStore struct {
	mu         sync.Mutex
	tokenPath  string
	cookiePath string
	host       string
	token      string
	user       *domain.User
	log        *logging.Logger
}

type tokenFile struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user,omitempty"`
	SavedAt     time.Time    `json:"saved_at"`
}

// NewCredentialStore creates a store over the two credential files and
// loads any previously saved token. host names the API server for the
// cookie file's domain column.
func NewCredentialStore(tokenPath, cookiePath, host string, log *logging.Logger) *CredentialStore {
	s := &CredentialStore{
		tokenPath:  tokenPath,
		cookiePath: cookiePath,
		host:       host,
		log:        log.Sub("credentials"),
	}
	s.load()
	return s
}

func (s *CredentialStore) load() {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		s.log.Warn().Err(err).Msg("ignoring malformed token file")
		return
	}
	s.token = tf.AccessToken
	s.user = tf.User
}

// Token returns the stored bearer token, or "" when logged out.
func (s *CredentialStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the account saved alongside the token, or nil.
func (s *CredentialStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Save writes the token and account to both credential files.
func (s *CredentialStore) Save(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tokenFile{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
		SavedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.tokenPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	expiry := time.Now().Add(cookieTTL).Unix()
	cookie := fmt.Sprintf("# Netscape HTTP Cookie File\n%s\tFALSE\t/\tTRUE\t%d\t%s\t%s\n",
		s.host, expiry, cookieName, token)
	if err := os.WriteFile(s.cookiePath, []byte(cookie), 0o600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}

	s.token = token
	s.user = user
	return nil
}

// Clear removes both credential files. Missing files are not an error;
// clearing is idempotent.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	var firstErr error
	for _, p := range []string{s.tokenPath, s.cookiePath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
