package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role constants for messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// WolframData is computational output attached to an assistant message.
type WolframData struct {
	ComputationalAnswer string   `json:"computational_answer,omitempty"`
	StepByStep          []string `json:"step_by_step,omitempty"`
	Images              []string `json:"images,omitempty"`
}

// MultimediaElement is an embedded media item in an assistant message
// (video reference, diagram, code block).
type MultimediaElement struct {
	Type     string         `json:"type"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Message is a single turn in a tutoring conversation. Messages are
// immutable once created; user message IDs are generated client-side,
// assistant message IDs come from the server.
type Message struct {
	ID         string              `json:"id"`
	Role       string              `json:"role"`
	Content    string              `json:"content"`
	Timestamp  string              `json:"timestamp"` // ISO-8601
	Wolfram    *WolframData        `json:"wolfram_data,omitempty"`
	Multimedia []MultimediaElement `json:"multimedia,omitempty"`
}

// NewUserMessage builds an optimistic user message with a client-generated
// ID and the current time.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
