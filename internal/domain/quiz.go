package domain

// Quiz difficulty levels accepted by the server.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// QuizQuestion is a question as presented to the user. Correct answers are
// never included; scoring happens server-side.
type QuizQuestion struct {
	QuestionID int      `json:"question_id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
}

// Quiz is a generated quiz ready to be taken.
type Quiz struct {
	QuizID     string         `json:"quiz_id"`
	Topic      string         `json:"topic"`
	Difficulty string         `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
}

// QuestionFeedback is per-question grading detail from a submission.
type QuestionFeedback struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    int    `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizResult is the graded outcome of a quiz submission.
type QuizResult struct {
	QuizID             string             `json:"quiz_id"`
	Score              float64            `json:"score"`
	CorrectCount       int                `json:"correct_count"`
	TotalCount         int                `json:"total_count"`
	Feedback           []QuestionFeedback `json:"feedback"`
	PerformanceMessage string             `json:"performance_message,omitempty"`
}
