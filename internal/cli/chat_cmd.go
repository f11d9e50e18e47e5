package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soyeahso/studyline/internal/chat"
	"github.com/soyeahso/studyline/internal/session"
	"github.com/soyeahso/studyline/internal/store"
)

func newChatCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "chat <topic>",
		Short: "Start an interactive tutoring session",
		Long: `Start a tutoring session on a topic. Inside the session:

  /explain <concept>  show explanations of a concept in several styles
  /again              re-explain the same concept in alternative styles
  /complete           finish the session and print its summary
  /quit               leave without completing`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")

			d, err := buildDeps()
			if err != nil {
				return err
			}
			userID, err := d.requireUser()
			if err != nil {
				return err
			}

			sessions := session.NewStore(d.client, d.note, log)
			panel := chat.NewExplainPanel(d.client, d.note)

			var archiver chat.Archiver
			if cfg.Chat.Archive {
				db, err := store.Open(paths.HistoryDB(), log)
				if err != nil {
					return fmt.Errorf("opening history archive: %w", err)
				}
				defer db.Close()
				archiver = store.NewArchiveStore(db)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctrl := &chat.Controller{
				Session: sessions,
				Panel:   panel,
				Archive: archiver,
				Notify:  d.note,
				Log:     log,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				Rows:    rows,
			}
			return ctrl.Run(ctx, topic, userID)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "visible transcript rows (0 uses the default)")
	return cmd
}
