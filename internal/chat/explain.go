package chat

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/soyeahso/studyline/internal/api"
	"github.com/soyeahso/studyline/internal/domain"
	"github.com/soyeahso/studyline/internal/notify"
)

// PanelState is the explanation panel's position in its request cycle.
type PanelState int

const (
	PanelIdle PanelState = iota
	PanelLoading
	PanelShown
	PanelError
)

func (s PanelState) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelShown:
		return "shown"
	case PanelError:
		return "error"
	default:
		return "idle"
	}
}

// ErrNoExplanation is returned when an alternative explanation is requested
// before any explanation is shown.
var ErrNoExplanation = errors.New("chat: no explanation to vary")

// Explainer is the slice of the API client the panel depends on.
type Explainer interface {
	ExplainConcept(ctx context.Context, sessionID, concept string, styles []string) (*api.ExplainConceptResponse, error)
}

var (
	defaultStyles     = []string{"comprehensive", "analogy", "example"}
	alternativeStyles = []string{"simple", "visual", "real-world"}
)

// ExplainPanel manages on-demand concept explanations. Its request cycle
// is independent of the main message flow: requesting an explanation never
// blocks sending, and its failures never touch the transcript.
type ExplainPanel struct {
	mu     sync.Mutex
	gw     Explainer
	notify notify.Notifier

	state        PanelState
	concept      string
	explanations []domain.ExplanationFormat
	errMsg       string
}

// NewExplainPanel creates an idle panel.
func NewExplainPanel(gw Explainer, n notify.Notifier) *ExplainPanel {
	return &ExplainPanel{gw: gw, notify: n}
}

// State returns the panel's current state.
func (p *ExplainPanel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Concept returns the concept last requested.
func (p *ExplainPanel) Concept() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.concept
}

// Explanations returns the explanations currently shown.
func (p *ExplainPanel) Explanations() []domain.ExplanationFormat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.explanations)
}

// Err returns the panel's inline error message, or "".
func (p *ExplainPanel) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Request fetches explanations for a concept. Valid from any state: idle,
// shown, and error all re-enter loading. On failure the panel shows the
// error inline and a notification fires; the transcript is untouched.
func (p *ExplainPanel) Request(ctx context.Context, sessionID, concept string, styles []string) error {
	if len(styles) == 0 {
		styles = defaultStyles
	}

	p.mu.Lock()
	p.state = PanelLoading
	p.concept = concept
	p.errMsg = ""
	p.mu.Unlock()

	resp, err := p.gw.ExplainConcept(ctx, sessionID, concept, styles)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = PanelError
		p.errMsg = api.ErrorMessage(err)
		p.notify.Error(p.errMsg)
		return err
	}
	p.state = PanelShown
	p.explanations = resp.Explanations
	return nil
}

// Alternative re-requests the shown concept with a different style set.
func (p *ExplainPanel) Alternative(ctx context.Context, sessionID string) error {
	p.mu.Lock()
	if p.state != PanelShown {
		p.mu.Unlock()
		return ErrNoExplanation
	}
	concept := p.concept
	p.mu.Unlock()

	return p.Request(ctx, sessionID, concept, alternativeStyles)
}

// Reset returns the panel to idle, dropping any shown content.
func (p *ExplainPanel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = PanelIdle
	p.concept = ""
	p.explanations = nil
	p.errMsg = ""
}
