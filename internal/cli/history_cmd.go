package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse locally archived session transcripts",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	return cmd
}

func openArchive() (*store.DB, *store.ArchiveStore, error) {
	db, err := store.Open(paths.HistoryDB(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history archive: %w", err)
	}
	return db, store.NewArchiveStore(db), nil
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, archive, err := openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			items, err := archive.List(limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No archived sessions yet. Complete a chat session to archive it.")
				return nil
			}

			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s  %3d msgs  %s\n",
					item.ArchivedAt.Format("2006-01-02 15:04"), item.Topic, item.MessageCount, item.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum sessions to list")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print an archived session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, archive, err := openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			sess, err := archive.Get(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no archived session %q", args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Topic: %s\n\n", sess.Topic)
			for _, msg := range sess.Messages {
				prefix := "You"
				if msg.Role == domain.RoleAssistant {
					prefix = "Tutor"
				}
				fmt.Fprintf(out, "%s: %s\n", prefix, msg.Content)
				if msg.Wolfram != nil && msg.Wolfram.ComputationalAnswer != "" {
					fmt.Fprintf(out, "       = %s\n", msg.Wolfram.ComputationalAnswer)
				}
			}

			if sess.Summary != nil {
				fmt.Fprintf(out, "\nSummary: %s\n", sess.Summary.Summary)
				if len(sess.Summary.NextTopics) > 0 {
					fmt.Fprintf(out, "Next topics: %s\n", strings.Join(sess.Summary.NextTopics, ", "))
				}
			}
			return nil
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Remove an archived session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, archive, err := openArchive()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := archive.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
