package lifecycle

import (
	"time"

	"mediawall/pkg/errors"
	"mediawall/pkg/logger"
)

// Phase is the controller's position in the media lifecycle.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhasePlaying
	PhasePaused
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "unloaded"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Media carries the intrinsic properties reported by a loaded resource.
type Media struct {
	Width    float64
	Height   float64
	Duration time.Duration
}

// AspectRatio returns width over height, or zero when unknown.
func (m Media) AspectRatio() float64 {
	if m.Width <= 0 || m.Height <= 0 {
		return 0
	}
	return m.Width / m.Height
}

// Resource is the backing media element the controller drives. Load and
// Release are asynchronous: completion arrives later through
// HandleLoaded or HandleLoadError with the source that finished.
type Resource interface {
	Load(source string)
	Release()
	Play()
	Pause()
}

// Config tunes the controller's timing and playback behavior.
type Config struct {
	Autoplay    bool
	LoadTimeout time.Duration
	UnloadDelay time.Duration
}

// DefaultConfig returns the stock timing (10s load timeout, 1s unload
// debounce, autoplay on).
func DefaultConfig() Config {
	return Config{
		Autoplay:    true,
		LoadTimeout: 10 * time.Second,
		UnloadDelay: time.Second,
	}
}

// Controller runs one item's lifecycle. It is event-driven and owns no
// timers: Observe and the Handle methods record facts, Tick applies any
// deadline that has passed. All methods must be called from one
// goroutine.
type Controller struct {
	id     string
	source string
	cfg    Config
	res    Resource
	log    logger.Logger

	phase  Phase
	media  Media
	reason *errors.Error

	inLoad bool
	inPlay bool

	// userPaused means the viewer paused this item explicitly; autoplay
	// must not override it while the item stays in the play window.
	userPaused bool

	// failedSource pins the source that failed so re-entering the load
	// window never retries it automatically.
	failedSource string

	loadDeadline   time.Time
	unloadDeadline time.Time
	loadPending    bool
	unloadPending  bool
}

// NewController builds a controller in the Unloaded phase.
func NewController(id, source string, res Resource, cfg Config, log logger.Logger) *Controller {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 10 * time.Second
	}
	if cfg.UnloadDelay <= 0 {
		cfg.UnloadDelay = time.Second
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Controller{
		id:     id,
		source: source,
		cfg:    cfg,
		res:    res,
		log:    log,
		phase:  PhaseUnloaded,
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Media returns the loaded media properties; meaningful from Ready on.
func (c *Controller) Media() Media {
	return c.media
}

// FailureReason returns the error behind the Failed phase, or nil.
func (c *Controller) FailureReason() *errors.Error {
	return c.reason
}

// Source returns the current media source.
func (c *Controller) Source() string {
	return c.source
}

// SetAutoplay flips autoplay for this controller. Taking effect waits
// for the next Observe; it never pauses an item already playing.
func (c *Controller) SetAutoplay(autoplay bool) {
	c.cfg.Autoplay = autoplay
}

// Observe feeds the latest visibility verdict and the current time. It
// may begin a load, schedule or cancel an unload, or adjust playback.
func (c *Controller) Observe(inLoad, inPlay bool, now time.Time) {
	c.inLoad = inLoad
	c.inPlay = inPlay

	if inLoad {
		c.cancelUnload()
	}

	switch c.phase {
	case PhaseUnloaded:
		if inLoad && c.source != "" && c.source != c.failedSource {
			c.beginLoad(now)
		}

	case PhaseReady:
		if !inLoad {
			c.scheduleUnload(now)
		} else if inPlay && c.cfg.Autoplay && !c.userPaused {
			c.transition(PhasePlaying)
			c.res.Play()
		}

	case PhasePlaying:
		if !inPlay {
			c.res.Pause()
			c.transition(PhasePaused)
		}
		if !inLoad {
			c.scheduleUnload(now)
		}

	case PhasePaused:
		if !inLoad {
			c.scheduleUnload(now)
		} else if inPlay && c.cfg.Autoplay && !c.userPaused {
			c.transition(PhasePlaying)
			c.res.Play()
		}
		if !inPlay {
			// Leaving the play window forgives an explicit pause.
			c.userPaused = false
		}

	case PhaseFailed:
		if !inLoad {
			c.scheduleUnload(now)
		}

	case PhaseLoading:
		// An in-flight load runs to completion or timeout even if the
		// item scrolls out of the load window.
	}
}

// HandleLoaded delivers a completed load. Results for a source other
// than the current one are stale and ignored.
func (c *Controller) HandleLoaded(source string, media Media, now time.Time) {
	if c.phase != PhaseLoading || source != c.source {
		return
	}

	c.loadPending = false
	c.media = media
	c.transition(PhaseReady)

	if c.inPlay && c.cfg.Autoplay && !c.userPaused {
		c.transition(PhasePlaying)
		c.res.Play()
	}
	if !c.inLoad {
		c.scheduleUnload(now)
	}
}

// HandleLoadError delivers a failed load for the given source.
func (c *Controller) HandleLoadError(source string, cause *errors.Error, now time.Time) {
	if c.phase != PhaseLoading || source != c.source {
		return
	}

	c.loadPending = false
	c.fail(cause)
	if !c.inLoad {
		c.scheduleUnload(now)
	}
}

// Toggle is the viewer's click on the item. It pauses a playing item,
// resumes a paused or ready one when it qualifies for playback, and is
// a no-op in every other phase.
func (c *Controller) Toggle() {
	switch c.phase {
	case PhasePlaying:
		c.res.Pause()
		c.userPaused = true
		c.transition(PhasePaused)

	case PhasePaused, PhaseReady:
		if c.inPlay {
			c.userPaused = false
			c.transition(PhasePlaying)
			c.res.Play()
		}
	}
}

// SetSource swaps the media source. Any stale state, including a
// pending unload and a pinned failure, is dropped immediately; the new
// source loads on the next Observe if the item is in the load window.
func (c *Controller) SetSource(source string) {
	if source == c.source {
		return
	}

	if c.phase != PhaseUnloaded {
		c.res.Release()
	}
	c.source = source
	c.failedSource = ""
	c.reason = nil
	c.media = Media{}
	c.userPaused = false
	c.loadPending = false
	c.cancelUnload()
	c.transition(PhaseUnloaded)
}

// Tick applies any deadline that has passed: load timeout and the
// unload debounce.
func (c *Controller) Tick(now time.Time) {
	if c.loadPending && c.phase == PhaseLoading && !now.Before(c.loadDeadline) {
		c.loadPending = false
		c.fail(errors.LoadTimeout(c.source))
	}

	if c.unloadPending && !now.Before(c.unloadDeadline) {
		c.unloadPending = false
		c.unload()
	}
}

func (c *Controller) beginLoad(now time.Time) {
	c.transition(PhaseLoading)
	c.loadDeadline = now.Add(c.cfg.LoadTimeout)
	c.loadPending = true
	c.res.Load(c.source)
}

func (c *Controller) scheduleUnload(now time.Time) {
	if c.unloadPending {
		return
	}
	c.unloadPending = true
	c.unloadDeadline = now.Add(c.cfg.UnloadDelay)
}

func (c *Controller) cancelUnload() {
	c.unloadPending = false
}

// Release drops the underlying resource and returns the controller to
// Unloaded. It is for items leaving the wall entirely (shuffle, filter,
// catalog refresh), not for ordinary load-window exits, so no unload
// debounce applies and any in-flight load is abandoned.
func (c *Controller) Release() {
	if c.phase == PhaseUnloaded {
		return
	}
	if c.phase == PhasePlaying {
		c.res.Pause()
	}
	c.res.Release()
	c.media = Media{}
	c.userPaused = false
	c.loadPending = false
	c.cancelUnload()
	c.transition(PhaseUnloaded)
}

func (c *Controller) unload() {
	if c.phase == PhasePlaying {
		c.res.Pause()
	}
	c.res.Release()
	c.media = Media{}
	c.userPaused = false
	// The failure stays pinned so the same source is not retried.
	c.transition(PhaseUnloaded)
}

func (c *Controller) fail(cause *errors.Error) {
	c.reason = cause
	c.failedSource = c.source
	c.transition(PhaseFailed)
	if c.log != nil {
		c.log.WithFields(map[string]interface{}{
			"item":   c.id,
			"source": c.source,
		}).WithError(cause).Warn("media load failed")
	}
}

func (c *Controller) transition(to Phase) {
	from := c.phase
	c.phase = to
	if c.log != nil && from != to {
		logger.LogTransition(c.id, from.String(), to.String())
	}
}

// Retry clears a pinned failure and allows the source to load again on
// the next Observe. This is the explicit user action; failures never
// retry on their own.
func (c *Controller) Retry(now time.Time) {
	if c.phase != PhaseFailed && c.failedSource == "" {
		return
	}
	c.failedSource = ""
	c.reason = nil
	c.cancelUnload()
	if c.phase == PhaseFailed {
		c.transition(PhaseUnloaded)
	}
	if c.inLoad && c.source != "" {
		c.beginLoad(now)
	}
}
