package viewport

import (
	"time"

	"mediawall/pkg/logger"
)

// ScrollSettleDelay is how long after the last scroll event the tracker
// keeps reporting IsScrolling before settling.
const ScrollSettleDelay = 150 * time.Millisecond

// DefaultAttachRetries bounds how many times Attach polls the primary
// geometry source before swapping to the fallback.
const DefaultAttachRetries = 10

// State is a snapshot of the scroll container.
type State struct {
	ScrollTop       float64
	ContainerWidth  float64
	ContainerHeight float64
	IsScrolling     bool
}

// Geometry supplies container measurements. The TUI backs this with the
// terminal window; tests back it with fixed values.
type Geometry interface {
	// Measure returns width, height and whether the source is usable yet.
	Measure() (width, height float64, ok bool)
}

// GeometryFunc adapts a function to the Geometry interface.
type GeometryFunc func() (float64, float64, bool)

func (f GeometryFunc) Measure() (float64, float64, bool) { return f() }

// Tracker maintains viewport state from scroll and resize events. It owns
// no timers: callers feed it events as they happen and call Tick with the
// current time to settle the scrolling flag.
type Tracker struct {
	state         State
	geometry      Geometry
	fallback      Geometry
	primary       Geometry
	onFallback    bool
	attached      bool
	attachTries   int
	maxAttach     int
	settleAt      time.Time
	settlePending bool
	log           logger.Logger
}

// NewTracker builds a tracker around the primary geometry source. The
// fallback is consulted when the primary fails to attach within the retry
// budget; pass nil to retry the primary forever. While on the fallback,
// each tick re-checks the primary and swaps back once it measures.
func NewTracker(primary, fallback Geometry, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Tracker{
		geometry:  primary,
		primary:   primary,
		fallback:  fallback,
		maxAttach: DefaultAttachRetries,
		log:       log,
	}
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	return t.state
}

// Attached reports whether a geometry source has measured successfully.
func (t *Tracker) Attached() bool {
	return t.attached
}

// OnScroll records a new scroll offset and marks the viewport as
// scrolling until ScrollSettleDelay elapses without further events.
func (t *Tracker) OnScroll(scrollTop float64, now time.Time) {
	t.state.ScrollTop = scrollTop
	t.state.IsScrolling = true
	t.settleAt = now.Add(ScrollSettleDelay)
	t.settlePending = true
}

// OnResize records new container dimensions.
func (t *Tracker) OnResize(width, height float64) {
	t.state.ContainerWidth = width
	t.state.ContainerHeight = height
	if width > 0 && height > 0 {
		t.attached = true
		t.onFallback = false
		t.geometry = t.primary
	}
}

// Tick re-measures geometry if not yet attached and settles the
// scrolling flag once the debounce window has passed. It returns true
// when the state changed.
func (t *Tracker) Tick(now time.Time) bool {
	changed := false

	if !t.attached {
		changed = t.tryAttach()
	} else if t.onFallback {
		// The fallback only stands in until the container appears.
		if w, h, ok := t.primary.Measure(); ok && w > 0 && h > 0 {
			t.state.ContainerWidth = w
			t.state.ContainerHeight = h
			t.geometry = t.primary
			t.onFallback = false
			t.log.Info("viewport container appeared, leaving fallback geometry")
			changed = true
		}
	}

	if t.settlePending && !now.Before(t.settleAt) {
		t.state.IsScrolling = false
		t.settlePending = false
		changed = true
	}

	return changed
}

func (t *Tracker) tryAttach() bool {
	w, h, ok := t.geometry.Measure()
	if ok && w > 0 && h > 0 {
		t.state.ContainerWidth = w
		t.state.ContainerHeight = h
		t.attached = true
		return true
	}

	t.attachTries++
	if t.fallback != nil && t.attachTries >= t.maxAttach {
		if t.log != nil {
			t.log.WithField("attempts", t.attachTries).
				Warn("viewport geometry unavailable, switching to fallback source")
		}
		t.geometry = t.fallback
		t.fallback = nil
		t.onFallback = true
		t.attachTries = 0
	}
	return false
}
