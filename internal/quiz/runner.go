// Package quiz runs the generate → answer → submit quiz cycle over a
// terminal.
package quiz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
	"github.com/soyeahso/studyline/internal/notify"
)

// Gateway is the slice of the API client the quiz runner depends on.
type Gateway interface {
	GenerateQuiz(ctx context.Context, topic, difficulty string, count int) (*domain.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID string, answers []int) (*domain.QuizResult, error)
}

// Runner drives one quiz attempt.
type Runner struct {
	gw     Gateway
	notify notify.Notifier
	log    *logging.Logger
}

// NewRunner creates a quiz runner.
func NewRunner(gw Gateway, n notify.Notifier, log *logging.Logger) *Runner {
	return &Runner{gw: gw, notify: n, log: log.Sub("quiz")}
}

// Run generates a quiz, collects one answer per question from in, submits,
// and prints the graded result to out.
func (r *Runner) Run(ctx context.Context, topic, difficulty string, count int, in io.Reader, out io.Writer) (*domain.QuizResult, error) {
	quiz, err := r.gw.GenerateQuiz(ctx, topic, difficulty, count)
	if err != nil {
		r.notify.Error(api.ErrorMessage(err))
		return nil, err
	}

	fmt.Fprintf(out, "Quiz: %s (%s, %d questions)\n\n", quiz.Topic, quiz.Difficulty, len(quiz.Questions))

	reader := bufio.NewScanner(in)
	answers := make([]int, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "   %d) %s\n", j+1, opt)
		}
		answers = append(answers, r.readAnswer(reader, out, len(q.Options)))
	}

	result, err := r.gw.SubmitQuiz(ctx, quiz.QuizID, answers)
	if err != nil {
		r.notify.Error(api.ErrorMessage(err))
		return nil, err
	}

	r.printResult(out, result)
	return result, nil
}

// readAnswer prompts until it gets a number within range, returning a
// zero-based answer index. EOF yields 0 rather than blocking the quiz.
func (r *Runner) readAnswer(in *bufio.Scanner, out io.Writer, options int) int {
	for {
		fmt.Fprint(out, "answer: ")
		if !in.Scan() {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= options {
			return n - 1
		}
		fmt.Fprintf(out, "Enter a number between 1 and %d.\n", options)
	}
}

func (r *Runner) printResult(out io.Writer, result *domain.QuizResult) {
	fmt.Fprintf(out, "\nScore: %.0f%% (%d/%d)\n", result.Score, result.CorrectCount, result.TotalCount)
	if result.PerformanceMessage != "" {
		fmt.Fprintln(out, result.PerformanceMessage)
	}
	for _, f := range result.Feedback {
		mark := "✗"
		if f.IsCorrect {
			mark = "✓"
		}
		fmt.Fprintf(out, "%s %s\n", mark, f.Question)
		if !f.IsCorrect && f.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", f.Explanation)
		}
	}
}
