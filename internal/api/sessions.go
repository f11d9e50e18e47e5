package api

import (
	"context"
	"net/http"

	"github.com/soyeahso/studyline/internal/domain"
)

// StartSessionResponse is the server's reply to starting a session.
type StartSessionResponse struct {
	SessionID      string `json:"session_id"`
	Topic          string `json:"topic"`
	InitialMessage string `json:"initial_message"`
	StartedAt      string `json:"started_at"`
}

type startSessionRequest struct {
	Topic  string `json:"topic"`
	UserID string `json:"user_id"`
}

// StartSession opens a new tutoring session on the given topic.
func (c *Client) StartSession(ctx context.Context, topic, userID string) (*StartSessionResponse, error) {
	var out StartSessionResponse
	err := c.do(ctx, http.MethodPost, "/api/sessions/start",
		startSessionRequest{Topic: topic, UserID: userID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessageResponse is the assistant's reply to a user message.
type SendMessageResponse struct {
	MessageID      string                     `json:"message_id"`
	Response       string                     `json:"response"`
	HasWolframData bool                       `json:"has_wolfram_data"`
	Wolfram        *domain.WolframData        `json:"wolfram_data,omitempty"`
	Multimedia     []domain.MultimediaElement `json:"multimedia,omitempty"`
	Source         string                     `json:"source,omitempty"`
	Timestamp      string                     `json:"timestamp"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessage posts a user message to an active session and returns the
// assistant's reply.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string) (*SendMessageResponse, error) {
	var out SendMessageResponse
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/message",
		sendMessageRequest{Message: message}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionHistoryResponse is the full message sequence of a session.
type SessionHistoryResponse struct {
	SessionID    string           `json:"session_id"`
	Topic        string           `json:"topic"`
	Messages     []domain.Message `json:"messages"`
	MessageCount int              `json:"message_count"`
}

// SessionHistory fetches the ordered message history of a session.
func (c *Client) SessionHistory(ctx context.Context, sessionID string) (*SessionHistoryResponse, error) {
	var out SessionHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+sessionID+"/history", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteSessionResponse carries the closing summary and suggested
// follow-up topics.
type CompleteSessionResponse struct {
	SessionID       string   `json:"session_id"`
	Topic           string   `json:"topic"`
	DurationSeconds int      `json:"duration_seconds"`
	MessageCount    int      `json:"message_count"`
	Summary         string   `json:"summary"`
	NextTopics      []string `json:"next_topics,omitempty"`
	CompletedAt     string   `json:"completed_at"`
}

// CompleteSession ends a session and requests its summary.
func (c *Client) CompleteSession(ctx context.Context, sessionID string) (*CompleteSessionResponse, error) {
	var out CompleteSessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExplainConceptResponse carries one or more explanation styles for a
// concept, generated on demand.
type ExplainConceptResponse struct {
	Concept      string                     `json:"concept"`
	Explanations []domain.ExplanationFormat `json:"explanations"`
	Timestamp    string                     `json:"timestamp"`
}

type explainConceptRequest struct {
	Concept string   `json:"concept"`
	Styles  []string `json:"styles"`
}

// ExplainConcept asks for standalone explanations of a concept within a
// session. Independent of the message flow; the transcript is untouched.
func (c *Client) ExplainConcept(ctx context.Context, sessionID, concept string, styles []string) (*ExplainConceptResponse, error) {
	var out ExplainConceptResponse
	err := c.do(ctx, http.MethodPost, "/api/sessions/"+sessionID+"/explain",
		explainConceptRequest{Concept: concept, Styles: styles}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
