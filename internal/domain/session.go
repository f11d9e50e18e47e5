package domain

// SessionSummary is produced when a session is completed.
type SessionSummary struct {
	Summary         string   `json:"summary"`
	NextTopics      []string `json:"next_topics,omitempty"`
	MessageCount    int      `json:"message_count,omitempty"`
	DurationSeconds int      `json:"duration_seconds,omitempty"`
	CompletedAt     string   `json:"completed_at,omitempty"`
}

// Session is a snapshot of one tutoring conversation: an opaque server-side
// ID, the topic chosen at start, and the ordered message history.
type Session struct {
	ID       string          `json:"id"`
	Topic    string          `json:"topic"`
	Messages []Message       `json:"messages,omitempty"`
	Summary  *SessionSummary `json:"summary,omitempty"`
}

// ExplanationFormat is one rendering of a concept explanation.
type ExplanationFormat struct {
	Style   string       `json:"style"`
	Content string       `json:"content"`
	Wolfram *WolframData `json:"wolfram_data,omitempty"`
}
