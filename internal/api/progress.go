package api

import (
	"context"
	"net/http"
)

// Achievement is a milestone the user has earned.
type Achievement struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	EarnedAt    string `json:"earned_at"`
}

// ProgressStats is the user's learning progress overview.
type ProgressStats struct {
	UserID            string        `json:"user_id"`
	Level             int           `json:"level"`
	TopicsCompleted   int           `json:"topics_completed"`
	TotalTimeSpent    int           `json:"total_time_spent"`
	CurrentStreak     int           `json:"current_streak"`
	LastActivity      string        `json:"last_activity"`
	TotalSessions     int           `json:"total_sessions"`
	CompletedSessions int           `json:"completed_sessions"`
	RecentTopics      []string      `json:"recent_topics,omitempty"`
	Achievements      []Achievement `json:"achievements,omitempty"`
}

// Progress fetches progress statistics for a user.
func (c *Client) Progress(ctx context.Context, userID string) (*ProgressStats, error) {
	var out ProgressStats
	if err := c.do(ctx, http.MethodGet, "/api/progress/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeeklySummary is a generated recap of the past week's learning.
type WeeklySummary struct {
	UserID      string `json:"user_id"`
	Summary     string `json:"summary"`
	GeneratedAt string `json:"generated_at"`
}

// WeeklyProgressSummary fetches the user's weekly learning recap.
func (c *Client) WeeklyProgressSummary(ctx context.Context, userID string) (*WeeklySummary, error) {
	var out WeeklySummary
	if err := c.do(ctx, http.MethodGet, "/api/progress/"+userID+"/weekly-summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
