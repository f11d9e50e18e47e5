// Package session is the single source of truth for one active tutoring
// conversation: its message history, lifecycle flags, and the network
// operations that mutate them.
package session

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
	"github.com/soyeahso/studyline/internal/notify"
)

// ErrNoSession is recorded when an operation needs an active session and
// none exists.
var ErrNoSession = errors.New("session: no active session")

const noSessionMessage = "No active session. Start a session first."

// Gateway is the slice of the API client the session store depends on.
type Gateway interface {
	StartSession(ctx context.Context, topic, userID string) (*api.StartSessionResponse, error)
	SendMessage(ctx context.Context, sessionID, message string) (*api.SendMessageResponse, error)
	SessionHistory(ctx context.Context, sessionID string) (*api.SessionHistoryResponse, error)
	CompleteSession(ctx context.Context, sessionID string) (*api.CompleteSessionResponse, error)
}

// Store holds the state of the active session. Create one per conversation
// and pass it to whatever drives the UI; there is no package-level
// singleton.
//
// The mutex keeps individual mutations consistent, but Send is not
// serialized against concurrent Send calls: the UI is expected to refuse
// input while IsSending reports true.
type Store struct {
	mu     sync.Mutex
	gw     Gateway
	notify notify.Notifier
	log    *logging.Logger

	sessionID string
	topic     string
	messages  []domain.Message
	loading   bool
	sending   bool
	lastErr   string
	summary   *domain.SessionSummary
}

// NewStore creates an empty session store.
func NewStore(gw Gateway, n notify.Notifier, log *logging.Logger) *Store {
	return &Store{
		gw:     gw,
		notify: n,
		log:    log.Sub("session"),
	}
}

// SessionID returns the active session's ID, or "".
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Topic returns the active session's topic, or "".
func (s *Store) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Messages returns a copy of the message history in chronological order.
func (s *Store) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// IsLoading reports whether a lifecycle operation (start, history load,
// complete) is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsSending reports whether a message send is in flight. Callers must
// refuse new input while this is true.
func (s *Store) IsSending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Err returns the last recorded error message, or "". It is cleared by
// ClearError or Clear, not by starting another operation.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError resets the recorded error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Summary returns the session summary, set only after Complete succeeds.
func (s *Store) Summary() *domain.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Snapshot returns the session as a domain value, for archiving.
func (s *Store) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Session{
		ID:       s.sessionID,
		Topic:    s.topic,
		Messages: slices.Clone(s.messages),
		Summary:  s.summary,
	}
}

// Start opens a new session on the given topic, discarding any prior
// state. On success the history is seeded with the server's greeting. On
// failure the store is reset to empty, the error is recorded and
// notified, and the error is returned so the caller can halt navigation.
func (s *Store) Start(ctx context.Context, topic, userID string) error {
	s.mu.Lock()
	s.sessionID = ""
	s.topic = ""
	s.messages = nil
	s.summary = nil
	s.lastErr = ""
	s.loading = true
	s.mu.Unlock()

	resp, err := s.gw.StartSession(ctx, topic, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.sessionID = ""
		s.topic = ""
		s.messages = nil
		s.lastErr = api.ErrorMessage(err)
		s.notify.Error(s.lastErr)
		s.log.Error().Err(err).Str("topic", topic).Msg("failed to start session")
		return err
	}

	ts := resp.StartedAt
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}
	s.sessionID = resp.SessionID
	s.topic = topic
	s.messages = []domain.Message{{
		ID:        "initial",
		Role:      domain.RoleAssistant,
		Content:   resp.InitialMessage,
		Timestamp: ts,
	}}
	s.log.Info().Str("session", resp.SessionID).Str("topic", topic).Msg("session started")
	return nil
}

// Send posts a user message. The message appears in the history
// immediately (optimistic update) and the assistant reply is appended when
// it arrives. On failure the history is restored to its pre-send state and
// the error is recorded but not returned. Unlike Start, LoadHistory and
// Complete, a failed send must leave the chat usable, so the caller sees
// nil and the user sees a notification.
func (s *Store) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.sessionID == "" {
		s.lastErr = noSessionMessage
		s.mu.Unlock()
		s.notify.Error(noSessionMessage)
		return nil
	}
	snapshot := slices.Clone(s.messages)
	s.messages = append(s.messages, domain.NewUserMessage(text))
	s.sending = true
	id := s.sessionID
	s.mu.Unlock()

	resp, err := s.gw.SendMessage(ctx, id, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	if err != nil {
		s.messages = snapshot
		s.lastErr = api.ErrorMessage(err)
		s.notify.Error(s.lastErr)
		s.log.Warn().Err(err).Str("session", id).Msg("send failed; optimistic message rolled back")
		return nil
	}

	s.messages = append(s.messages, domain.Message{
		ID:         resp.MessageID,
		Role:       domain.RoleAssistant,
		Content:    resp.Response,
		Timestamp:  resp.Timestamp,
		Wolfram:    resp.Wolfram,
		Multimedia: resp.Multimedia,
	})
	return nil
}

// LoadHistory replaces the store's state wholesale with the server's
// record of an existing session. Errors are recorded, notified, and
// returned so the caller can decide whether to navigate away.
func (s *Store) LoadHistory(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	resp, err := s.gw.SessionHistory(ctx, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.ErrorMessage(err)
		s.notify.Error(s.lastErr)
		s.log.Error().Err(err).Str("session", sessionID).Msg("failed to load history")
		return err
	}

	s.sessionID = resp.SessionID
	s.topic = resp.Topic
	s.messages = slices.Clone(resp.Messages)
	s.summary = nil
	return nil
}

// Complete ends the session and stores the returned summary. Requires an
// active session; errors are recorded and returned.
func (s *Store) Complete(ctx context.Context) error {
	s.mu.Lock()
	if s.sessionID == "" {
		s.lastErr = noSessionMessage
		s.mu.Unlock()
		s.notify.Error(noSessionMessage)
		return ErrNoSession
	}
	id := s.sessionID
	s.loading = true
	s.mu.Unlock()

	resp, err := s.gw.CompleteSession(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.ErrorMessage(err)
		s.notify.Error(s.lastErr)
		s.log.Error().Err(err).Str("session", id).Msg("failed to complete session")
		return err
	}

	s.summary = &domain.SessionSummary{
		Summary:         resp.Summary,
		NextTopics:      resp.NextTopics,
		MessageCount:    resp.MessageCount,
		DurationSeconds: resp.DurationSeconds,
		CompletedAt:     resp.CompletedAt,
	}
	s.log.Info().Str("session", id).Msg("session completed")
	return nil
}

// Clear resets the store to its initial empty state. Used when abandoning
// a session to start another.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.topic = ""
	s.messages = nil
	s.summary = nil
	s.lastErr = ""
	s.loading = false
	s.sending = false
}
