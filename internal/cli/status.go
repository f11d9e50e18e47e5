package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soyeahso/studyline/internal/config"
	"github.com/soyeahso/studyline/internal/version"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show Studyline status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Studyline %s (commit %s)\n\n", version.Version, version.Commit)

			// Show paths
			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Data:    %s\n", paths.Data)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			fmt.Printf("Server:  %s\n", cfg.Server.URL)
			fmt.Printf("Quiz:    difficulty=%s count=%d\n", cfg.Quiz.Difficulty, cfg.Quiz.Count)
			fmt.Printf("Archive: enabled=%v db=%s\n", cfg.Chat.Archive, paths.HistoryDB())

			// Login state, from the saved credentials only; no round trip.
			if _, err := os.Stat(paths.TokenFile()); err == nil {
				fmt.Println("Auth:    token saved (run 'studyline progress' to verify it still works)")
			} else {
				fmt.Println("Auth:    logged out")
			}

			// Validation
			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}
}
