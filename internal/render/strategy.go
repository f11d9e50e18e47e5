// Package render chooses how the chat transcript is drawn. Short
// transcripts render every message; long ones render only a window around
// the viewport so the number of live message views stays bounded.
package render

// Mode is the rendering strategy for a transcript.
type Mode int

const (
	// ModeDirect renders every message.
	ModeDirect Mode = iota
	// ModeWindowed renders only the messages near the viewport.
	ModeWindowed
)

func (m Mode) String() string {
	if m == ModeWindowed {
		return "windowed"
	}
	return "direct"
}

const (
	// VirtualizeThreshold is the message count at which rendering
	// switches to windowed mode. Strictly: count >= threshold.
	VirtualizeThreshold = 50

	// DefaultItemHeight is the estimated rendered height of one message,
	// in terminal rows.
	DefaultItemHeight = 2

	// DefaultOverscan is how many extra messages to render on each side
	// of the visible range.
	DefaultOverscan = 5

	// followSlack is how close to the bottom (in rows) the view must be
	// for auto-scroll to the newest message to stay engaged.
	followSlack = 8
)

// ModeFor selects the rendering mode for a transcript of the given length.
func ModeFor(count int) Mode {
	if count >= VirtualizeThreshold {
		return ModeWindowed
	}
	return ModeDirect
}

// Viewport describes what part of the transcript is on screen.
type Viewport struct {
	ScrollTop int // rows scrolled from the top of the full transcript
	Height    int // visible rows
}

// Window is the index range to render and where to place it.
type Window struct {
	Start       int // first message index to render (inclusive)
	End         int // one past the last message index to render
	OffsetTop   int // rows between the transcript top and the first rendered message
	TotalHeight int // full transcript height in rows, for scrollbar proportions
}

// Strategy computes render windows for one transcript configuration.
type Strategy struct {
	Mode       Mode
	ItemHeight int
	Overscan   int
}

// StrategyFor builds a strategy for a transcript of the given length using
// the default geometry.
func StrategyFor(count int) Strategy {
	return Strategy{
		Mode:       ModeFor(count),
		ItemHeight: DefaultItemHeight,
		Overscan:   DefaultOverscan,
	}
}

// Visible computes which message indices to render. Direct mode renders
// everything; windowed mode renders the viewport range plus overscan,
// positioned inside a full-height spacer.
func (s Strategy) Visible(count int, vp Viewport) Window {
	total := count * s.ItemHeight

	if s.Mode == ModeDirect {
		return Window{Start: 0, End: count, OffsetTop: 0, TotalHeight: total}
	}

	first := vp.ScrollTop / s.ItemHeight
	last := (vp.ScrollTop+vp.Height)/s.ItemHeight + 1

	start := max(0, first-s.Overscan)
	end := min(count, last+s.Overscan)

	return Window{
		Start:       start,
		End:         end,
		OffsetTop:   start * s.ItemHeight,
		TotalHeight: total,
	}
}

// FollowBottom reports whether the view should keep snapping to the newest
// message. It must be re-evaluated on every scroll event: scrolling away
// from the bottom suspends following, scrolling back within reach resumes
// it.
func (s Strategy) FollowBottom(count int, vp Viewport) bool {
	total := count * s.ItemHeight
	distance := total - (vp.ScrollTop + vp.Height)
	return distance <= followSlack
}
