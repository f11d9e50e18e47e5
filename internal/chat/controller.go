// Package chat drives an interactive tutoring conversation: it wires user
// input to the session store, draws the transcript through the rendering
// strategy, and hosts the concept-explanation panel.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/logging"
	"github.com/soyeahso/studyline/internal/notify"
	"github.com/soyeahso/studyline/internal/render"
	"github.com/soyeahso/studyline/internal/session"
)

// Archiver stores completed session transcripts locally.
type Archiver interface {
	Archive(sess domain.Session) error
}

// Controller runs one chat session over a terminal.
type Controller struct {
	Session *session.Store
	Panel   *ExplainPanel
	Archive Archiver // nil disables archiving
	Notify  notify.Notifier
	Log     *logging.Logger

	In   io.Reader
	Out  io.Writer
	Rows int // visible transcript rows; 0 uses a default
}

const defaultRows = 24

// Run starts a session on topic and processes input until /quit,
// /complete, or EOF. A failed start aborts before entering the loop, per
// the session store's escalation contract.
func (c *Controller) Run(ctx context.Context, topic, userID string) error {
	if err := c.Session.Start(ctx, topic, userID); err != nil {
		return err
	}
	c.redraw()

	scanner := bufio.NewScanner(c.In)
	for {
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return nil

		case line == "/complete":
			if err := c.complete(ctx); err != nil {
				continue // error already recorded and notified
			}
			return nil

		case strings.HasPrefix(line, "/explain"):
			concept := strings.TrimSpace(strings.TrimPrefix(line, "/explain"))
			if concept == "" {
				c.Notify.Info("Usage: /explain <concept>")
				continue
			}
			c.explain(ctx, concept, false)

		case line == "/again":
			c.explain(ctx, "", true)

		default:
			// Input is refused while a send is in flight; the store
			// itself does not serialize overlapping sends.
			if c.Session.IsSending() {
				c.Notify.Info("Still waiting for the tutor's reply...")
				continue
			}
			_ = c.Session.Send(ctx, line) // failures notify and roll back
			c.redraw()
		}
	}
}

func (c *Controller) complete(ctx context.Context) error {
	if err := c.Session.Complete(ctx); err != nil {
		return err
	}

	if sum := c.Session.Summary(); sum != nil {
		fmt.Fprintf(c.Out, "\n─── Session summary ───\n%s\n", sum.Summary)
		if len(sum.NextTopics) > 0 {
			fmt.Fprintf(c.Out, "Next up: %s\n", strings.Join(sum.NextTopics, ", "))
		}
	}

	if c.Archive != nil {
		if err := c.Archive.Archive(c.Session.Snapshot()); err != nil {
			c.Log.Warn().Err(err).Msg("failed to archive transcript")
		}
	}
	return nil
}

func (c *Controller) explain(ctx context.Context, concept string, alternative bool) {
	id := c.Session.SessionID()
	var err error
	if alternative {
		err = c.Panel.Alternative(ctx, id)
		if err == ErrNoExplanation {
			c.Notify.Info("Nothing to vary yet. Use /explain <concept> first.")
			return
		}
	} else {
		err = c.Panel.Request(ctx, id, concept, nil)
	}
	if err != nil {
		return // panel holds the inline error, notification already fired
	}
	c.drawPanel()
}

func (c *Controller) drawPanel() {
	fmt.Fprintf(c.Out, "\n─── %s ───\n", c.Panel.Concept())
	for _, e := range c.Panel.Explanations() {
		fmt.Fprintf(c.Out, "[%s] %s\n", e.Style, e.Content)
	}
}

// redraw prints the transcript window. The viewport is pinned to the
// bottom, so the rendering strategy decides how many messages actually get
// drawn.
func (c *Controller) redraw() {
	msgs := c.Session.Messages()
	strat := render.StrategyFor(len(msgs))

	rows := c.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	total := len(msgs) * strat.ItemHeight
	vp := render.Viewport{ScrollTop: max(0, total-rows), Height: rows}

	w := strat.Visible(len(msgs), vp)
	for _, m := range msgs[w.Start:w.End] {
		prefix := "you"
		if m.Role == domain.RoleAssistant {
			prefix = "tutor"
		}
		fmt.Fprintf(c.Out, "%s: %s\n", prefix, m.Content)
	}
}
