package api

import (
	"context"
	"net/http"

	"github.com/soyeahso/studyline/internal/domain"
)

type generateQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count,omitempty"`
}

// GenerateQuiz asks the server to build a quiz on a topic. Count 0 lets
// the server pick its default.
func (c *Client) GenerateQuiz(ctx context.Context, topic, difficulty string, count int) (*domain.Quiz, error) {
	var out domain.Quiz
	err := c.do(ctx, http.MethodPost, "/api/quiz/generate",
		generateQuizRequest{Topic: topic, Difficulty: difficulty, Count: count}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type submitQuizRequest struct {
	QuizID  string `json:"quiz_id"`
	Answers []int  `json:"answers"`
}

// SubmitQuiz grades the given answer indices against a generated quiz.
func (c *Client) SubmitQuiz(ctx context.Context, quizID string, answers []int) (*domain.QuizResult, error) {
	var out domain.QuizResult
	err := c.do(ctx, http.MethodPost, "/api/quiz/submit",
		submitQuizRequest{QuizID: quizID, Answers: answers}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
