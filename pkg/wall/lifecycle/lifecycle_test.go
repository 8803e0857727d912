package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawall/pkg/errors"
)

// fakeResource records the calls the controller makes.
type fakeResource struct {
	loads    []string
	releases int
	plays    int
	pauses   int
}

func (f *fakeResource) Load(source string) { f.loads = append(f.loads, source) }
func (f *fakeResource) Release()           { f.releases++ }
func (f *fakeResource) Play()              { f.plays++ }
func (f *fakeResource) Pause()             { f.pauses++ }

func newTestController(cfg Config) (*Controller, *fakeResource) {
	res := &fakeResource{}
	return NewController("item-1", "/videos/a.mp4", res, cfg, nil), res
}

func TestFullLifecycleToPlaying(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	require.Equal(t, PhaseUnloaded, c.Phase())

	// Entering the load window starts the load, nothing is skipped.
	c.Observe(true, true, now)
	require.Equal(t, PhaseLoading, c.Phase())
	require.Equal(t, []string{"/videos/a.mp4"}, res.loads)
	assert.Zero(t, res.plays)

	c.HandleLoaded("/videos/a.mp4", Media{Width: 1920, Height: 1080}, now)
	assert.Equal(t, PhasePlaying, c.Phase())
	assert.Equal(t, 1, res.plays)
	assert.InDelta(t, 16.0/9.0, c.Media().AspectRatio(), 0.001)
}

func TestAutoplayDisabledStaysReady(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Autoplay = false
	c, res := newTestController(cfg)
	now := time.Now()

	c.Observe(true, true, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)

	assert.Equal(t, PhaseReady, c.Phase())
	assert.Zero(t, res.plays)

	// Further observations do not start playback either.
	c.Observe(true, true, now)
	assert.Equal(t, PhaseReady, c.Phase())
	assert.Zero(t, res.plays)
}

func TestLoadTimeoutFails(t *testing.T) {
	c, _ := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	c.Tick(now.Add(9 * time.Second))
	assert.Equal(t, PhaseLoading, c.Phase())

	c.Tick(now.Add(10 * time.Second))
	require.Equal(t, PhaseFailed, c.Phase())
	require.NotNil(t, c.FailureReason())
	assert.Equal(t, errors.ErrorTypeLoadTimeout, c.FailureReason().Type)
}

func TestFailedNeverAutoRetries(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	c.HandleLoadError("/videos/a.mp4", errors.Decode("bad stream", 4), now)
	require.Equal(t, PhaseFailed, c.Phase())

	// Leave the load window long enough to unload, then come back.
	c.Observe(false, false, now)
	c.Tick(now.Add(2 * time.Second))
	require.Equal(t, PhaseUnloaded, c.Phase())

	c.Observe(true, true, now.Add(3*time.Second))
	assert.Equal(t, PhaseUnloaded, c.Phase())
	assert.Len(t, res.loads, 1)
}

func TestExplicitRetryReloads(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	c.HandleLoadError("/videos/a.mp4", errors.Decode("bad stream", 4), now)
	require.Equal(t, PhaseFailed, c.Phase())

	c.Retry(now)
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Len(t, res.loads, 2)
	assert.Nil(t, c.FailureReason())
}

func TestUnloadDebounceCancelledOnReentry(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhaseReady, c.Phase())

	// Leaves the load window, then returns before the 1s debounce fires.
	c.Observe(false, false, now)
	c.Observe(true, false, now.Add(500*time.Millisecond))
	c.Tick(now.Add(2 * time.Second))

	assert.Equal(t, PhaseReady, c.Phase())
	assert.Zero(t, res.releases)
}

func TestUnloadAfterDebounce(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, true, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhasePlaying, c.Phase())

	c.Observe(false, false, now)
	assert.Equal(t, PhasePaused, c.Phase())

	c.Tick(now.Add(time.Second))
	assert.Equal(t, PhaseUnloaded, c.Phase())
	assert.Equal(t, 1, res.releases)
}

func TestLeavingPlayWindowPauses(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, true, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhasePlaying, c.Phase())

	c.Observe(true, false, now)
	assert.Equal(t, PhasePaused, c.Phase())
	assert.Equal(t, 1, res.pauses)

	// Back in the play window resumes.
	c.Observe(true, true, now)
	assert.Equal(t, PhasePlaying, c.Phase())
	assert.Equal(t, 2, res.plays)
}

func TestToggle(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	// No-op before anything loads.
	c.Toggle()
	assert.Equal(t, PhaseUnloaded, c.Phase())

	c.Observe(true, true, now)
	c.Toggle()
	assert.Equal(t, PhaseLoading, c.Phase())

	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhasePlaying, c.Phase())

	c.Toggle()
	assert.Equal(t, PhasePaused, c.Phase())
	assert.Equal(t, 1, res.pauses)

	// Autoplay does not override an explicit pause.
	c.Observe(true, true, now)
	assert.Equal(t, PhasePaused, c.Phase())

	c.Toggle()
	assert.Equal(t, PhasePlaying, c.Phase())
}

func TestToggleResumeRequiresPlayWindow(t *testing.T) {
	c, _ := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhaseReady, c.Phase())

	// Outside the play window a click cannot start playback.
	c.Toggle()
	assert.Equal(t, PhaseReady, c.Phase())
}

func TestSetSourceResetsImmediately(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, true, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhasePlaying, c.Phase())

	// Old pending unload must not fire against the new source.
	c.Observe(false, false, now)

	c.SetSource("/videos/b.mp4")
	assert.Equal(t, PhaseUnloaded, c.Phase())
	assert.Equal(t, 1, res.releases)

	c.Tick(now.Add(5 * time.Second))
	assert.Equal(t, PhaseUnloaded, c.Phase())

	c.Observe(true, true, now.Add(5*time.Second))
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Equal(t, "/videos/b.mp4", res.loads[len(res.loads)-1])
}

func TestStaleLoadResultIgnored(t *testing.T) {
	c, _ := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, true, now)
	c.SetSource("/videos/b.mp4")
	c.Observe(true, true, now)
	require.Equal(t, PhaseLoading, c.Phase())

	// Completion for the old source arrives late.
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	assert.Equal(t, PhaseLoading, c.Phase())

	c.HandleLoaded("/videos/b.mp4", Media{}, now)
	assert.Equal(t, PhasePlaying, c.Phase())
}

func TestLoadingSurvivesLeavingWindow(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	require.Equal(t, PhaseLoading, c.Phase())

	c.Observe(false, false, now)
	c.Tick(now.Add(2 * time.Second))
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Zero(t, res.releases)

	// Completion while out of window schedules the unload.
	c.HandleLoaded("/videos/a.mp4", Media{}, now.Add(3*time.Second))
	assert.Equal(t, PhaseReady, c.Phase())
	c.Tick(now.Add(5 * time.Second))
	assert.Equal(t, PhaseUnloaded, c.Phase())
}

func TestReleaseDropsResourceImmediately(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, true, now)
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	require.Equal(t, PhasePlaying, c.Phase())

	c.Release()

	assert.Equal(t, PhaseUnloaded, c.Phase())
	assert.Equal(t, 1, res.pauses)
	assert.Equal(t, 1, res.releases)
}

func TestReleaseAbandonsInFlightLoad(t *testing.T) {
	c, res := newTestController(DefaultConfig())
	now := time.Now()

	c.Observe(true, false, now)
	require.Equal(t, PhaseLoading, c.Phase())

	c.Release()
	require.Equal(t, PhaseUnloaded, c.Phase())
	require.Equal(t, 1, res.releases)

	// The abandoned load's completion arrives late and changes nothing.
	c.HandleLoaded("/videos/a.mp4", Media{}, now)
	assert.Equal(t, PhaseUnloaded, c.Phase())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "unloaded", PhaseUnloaded.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "failed", PhaseFailed.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
