package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	var weekly bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show your learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps()
			if err != nil {
				return err
			}
			userID, err := d.requireUser()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()

			if weekly {
				summary, err := d.client.WeeklyProgressSummary(ctx, userID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, summary.Summary)
				return nil
			}

			stats, err := d.client.Progress(ctx, userID)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Level:     %d\n", stats.Level)
			fmt.Fprintf(out, "Streak:    %d day(s)\n", stats.CurrentStreak)
			fmt.Fprintf(out, "Topics:    %d completed\n", stats.TopicsCompleted)
			fmt.Fprintf(out, "Sessions:  %d/%d completed\n", stats.CompletedSessions, stats.TotalSessions)
			fmt.Fprintf(out, "Time:      %s\n", (time.Duration(stats.TotalTimeSpent) * time.Second).Round(time.Minute))
			if len(stats.RecentTopics) > 0 {
				fmt.Fprintf(out, "Recent:    %s\n", strings.Join(stats.RecentTopics, ", "))
			}
			if len(stats.Achievements) > 0 {
				fmt.Fprintln(out, "\nAchievements:")
				for _, a := range stats.Achievements {
					fmt.Fprintf(out, "  %s: %s\n", a.Title, a.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&weekly, "weekly", false, "show the weekly learning recap instead")
	return cmd
}
