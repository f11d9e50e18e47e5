package cli

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soyeahso/studyline/internal/quiz"
)

func newQuizCmd() *cobra.Command {
	var (
		difficulty string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "quiz <topic>",
		Short: "Take a generated quiz on a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")

			d, err := buildDeps()
			if err != nil {
				return err
			}
			if _, err := d.requireUser(); err != nil {
				return err
			}

			if difficulty == "" {
				difficulty = cfg.Quiz.Difficulty
			}
			if count == 0 {
				count = cfg.Quiz.Count
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := quiz.NewRunner(d.client, d.note, log)
			_, err = runner.Run(ctx, topic, difficulty, count, cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "quiz difficulty (beginner, intermediate, advanced)")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions")
	return cmd
}
