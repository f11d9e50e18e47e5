// Package cli wires the Studyline commands: auth flows, the interactive
// chat loop, quizzes, the local history archive, and status/config
// helpers.
package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/auth"
	"github.com/soyeahso/studyline/internal/config"
	"github.com/soyeahso/studyline/internal/logging"
	"github.com/soyeahso/studyline/internal/notify"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	cfg   config.Config
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studyline",
		Short: "Studyline — AI tutoring from your terminal",
		Long:  "Studyline is a terminal client for the Studyline tutoring server: interactive sessions, concept explanations, quizzes, and a local transcript archive.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			cfg, err = config.Load(paths.Config)
			if err != nil {
				return err
			}

			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = paths.LogFile()
			}
			log = logging.NewWithFile(level, logFile)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.studyline/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newQuizCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newProgressCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// deps bundles the client-side stack a connected command needs.
type deps struct {
	creds  *auth.CredentialStore
	client *api.Client
	auth   *auth.Store
	note   notify.Notifier
}

// buildDeps validates config and assembles the credential store, API
// client, and auth store. Session expiry drops the local user exactly
// once, whichever request trips it.
func buildDeps() (*deps, error) {
	issues := config.Validate(&cfg)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return nil, fmt.Errorf("config has %d validation issue(s), see log", len(issues))
	}

	note := notify.NewConsole(nil)
	creds := auth.NewCredentialStore(paths.TokenFile(), paths.CookieFile(), serverHost(cfg.Server.URL), log)
	client := api.New(cfg.Server.URL, creds, log)
	store := auth.NewStore(client, creds, note, log)

	client.OnSessionExpired(func() {
		store.ForgetUser()
		note.Error("Your session has expired. Please log in again.")
	})

	return &deps{creds: creds, client: client, auth: store, note: note}, nil
}

// serverHost extracts the hostname for the cookie file's domain column.
func serverHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "localhost"
	}
	return u.Hostname()
}

// requireUser returns the logged-in user or an actionable error.
func (d *deps) requireUser() (string, error) {
	u := d.auth.User()
	if u == nil {
		return "", fmt.Errorf("not logged in; run 'studyline login' first")
	}
	return u.ID, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
