package wall

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawall/pkg/models"
	"mediawall/pkg/wall/lifecycle"
	"mediawall/pkg/wall/mediares"
	"mediawall/pkg/wall/viewport"
)

// recordingResource lets tests complete loads by hand.
type recordingResource struct {
	loads    []string
	releases int
}

func (r *recordingResource) Load(source string) { r.loads = append(r.loads, source) }
func (r *recordingResource) Release()           { r.releases++ }
func (r *recordingResource) Play()              {}
func (r *recordingResource) Pause()             {}

type gridHarness struct {
	grid      *Grid
	resources map[string]*recordingResource
	now       time.Time
}

func newHarness(t *testing.T, itemCount int, cfg Config) *gridHarness {
	t.Helper()

	items := make([]models.MediaItem, itemCount)
	for i := range items {
		items[i] = models.MediaItem{
			ID:          fmt.Sprintf("item-%d", i),
			Kind:        models.KindVideo,
			SourcePath:  fmt.Sprintf("/videos/%d.mp4", i),
			AspectRatio: 1,
		}
	}

	h := &gridHarness{resources: map[string]*recordingResource{}, now: time.Unix(1000, 0)}
	geo := viewport.GeometryFunc(func() (float64, float64, bool) { return 200, 300, true })
	tracker := viewport.NewTracker(geo, nil, nil)
	h.grid = NewGrid(items, cfg, tracker, nil, func(item models.MediaItem) lifecycle.Resource {
		r := &recordingResource{}
		h.resources[item.ID] = r
		return r
	}, nil)
	return h
}

func (h *gridHarness) tick(d time.Duration) {
	h.now = h.now.Add(d)
	h.grid.Tick(h.now)
}

func (h *gridHarness) finishLoad(id string, media lifecycle.Media) {
	h.grid.ApplyResult(mediares.Result{
		ItemID: id,
		Source: h.resources[id].loads[len(h.resources[id].loads)-1],
		Media:  media,
	}, h.now)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ColumnWidth = 100
	cfg.Gutter = 0
	cfg.AutoScroll.Enabled = false
	return cfg
}

func TestGridLoadsOnlyWindowedItems(t *testing.T) {
	// Two 100px columns, 20 square items: each column is 1000px tall.
	// Viewport 300px with a 0.5x load margin reaches 450px down, so the
	// first five rows load and the deep rows stay unloaded.
	h := newHarness(t, 20, testConfig())

	h.tick(0)

	require.True(t, h.grid.Layout().Ready())
	require.Equal(t, 2, h.grid.Layout().Columns())

	assert.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(0))
	assert.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(9))
	assert.Equal(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(12))
	assert.Equal(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(19))
}

func TestGridScrollTriggersMoreLoads(t *testing.T) {
	h := newHarness(t, 20, testConfig())
	h.tick(0)
	require.Equal(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(15))

	h.grid.UserScroll(500, h.now)
	h.tick(10 * time.Millisecond)

	assert.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(15))
}

func TestGridScrollClamps(t *testing.T) {
	h := newHarness(t, 20, testConfig())
	h.tick(0)

	h.grid.UserScroll(-100, h.now)
	assert.Equal(t, 0.0, h.grid.Viewport().ScrollTop)

	h.grid.UserScroll(99999, h.now)
	// Columns are 1000px, viewport 300px.
	assert.Equal(t, 700.0, h.grid.Viewport().ScrollTop)
}

func TestGridLoadedItemPlaysWhenVisible(t *testing.T) {
	h := newHarness(t, 4, testConfig())
	h.tick(0)

	h.finishLoad("item-0", lifecycle.Media{})
	assert.Equal(t, lifecycle.PhasePlaying, h.grid.PhaseOf(0))
}

func TestGridAutoplayOffStaysReady(t *testing.T) {
	cfg := testConfig()
	cfg.Lifecycle.Autoplay = false
	h := newHarness(t, 4, cfg)
	h.tick(0)

	h.finishLoad("item-0", lifecycle.Media{})
	h.tick(50 * time.Millisecond)

	assert.Equal(t, lifecycle.PhaseReady, h.grid.PhaseOf(0))
}

func TestGridRatioCorrectionReflowsColumn(t *testing.T) {
	h := newHarness(t, 4, testConfig())
	h.tick(0)

	before := h.grid.Layout().Slots[2].Top
	require.Equal(t, 100.0, before)

	// Item 0 turns out twice as wide as estimated: its slot shrinks and
	// the slot below it in the same column moves up.
	h.finishLoad("item-0", lifecycle.Media{Width: 200, Height: 100})

	assert.Equal(t, 50.0, h.grid.Layout().Slots[0].Height)
	assert.Equal(t, 50.0, h.grid.Layout().Slots[2].Top)
	assert.Equal(t, 0.0, h.grid.Layout().Slots[1].Top)
}

func TestGridScrolledOutItemUnloadsAfterDebounce(t *testing.T) {
	h := newHarness(t, 20, testConfig())
	h.tick(0)
	h.finishLoad("item-0", lifecycle.Media{})
	require.Equal(t, lifecycle.PhasePlaying, h.grid.PhaseOf(0))

	// Scroll far away and let the unload debounce expire.
	h.grid.UserScroll(900, h.now)
	h.tick(10 * time.Millisecond)
	require.NotEqual(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(0))

	h.tick(time.Second)
	assert.Equal(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(0))
}

func TestGridAutoScrollAdvancesAndStopsAtBottom(t *testing.T) {
	cfg := testConfig()
	cfg.AutoScroll.Enabled = true
	cfg.AutoScroll.Speed = 200
	h := newHarness(t, 20, cfg)

	h.tick(0)
	require.Equal(t, 0.0, h.grid.Viewport().ScrollTop)

	// Idle for five seconds, then each 50ms tick moves the viewport.
	h.tick(5 * time.Second)
	first := h.grid.Viewport().ScrollTop
	assert.Greater(t, first, 0.0)

	h.tick(50 * time.Millisecond)
	second := h.grid.Viewport().ScrollTop
	assert.Greater(t, second, first)

	// Columns are 1000px and the viewport 300px, so 700 is the floor of
	// the content; the driver parks there.
	for i := 0; i < 20; i++ {
		h.tick(50 * time.Millisecond)
	}
	assert.Equal(t, 700.0, h.grid.Viewport().ScrollTop)
	h.tick(time.Minute)
	assert.Equal(t, 700.0, h.grid.Viewport().ScrollTop)
}

func TestGridUserInteractionStopsAutoScroll(t *testing.T) {
	cfg := testConfig()
	cfg.AutoScroll.Enabled = true
	h := newHarness(t, 20, cfg)
	h.tick(0)
	h.tick(5 * time.Second)
	require.Greater(t, h.grid.Viewport().ScrollTop, 0.0)

	pos := h.grid.Viewport().ScrollTop
	h.grid.UserScroll(10, h.now)
	moved := h.grid.Viewport().ScrollTop

	// The driver stays quiet until another idle stretch passes.
	h.tick(time.Second)
	h.tick(time.Second)
	assert.Equal(t, moved, h.grid.Viewport().ScrollTop)
	assert.Greater(t, moved, pos)
}

func TestGridRenderWindowOverscan(t *testing.T) {
	h := newHarness(t, 20, testConfig())
	h.tick(0)

	// Viewport 0..300 plus one viewport height of overscan reaches 600:
	// rows 0..5 (indices 0..11) are drawable, row 6 is not.
	window := h.grid.RenderWindow()
	assert.Contains(t, window, 0)
	assert.Contains(t, window, 11)
	assert.NotContains(t, window, 12)
}

func TestGridShuffleResetsLifecycle(t *testing.T) {
	h := newHarness(t, 8, testConfig())
	h.tick(0)
	h.finishLoad("item-0", lifecycle.Media{})
	require.Equal(t, lifecycle.PhasePlaying, h.grid.PhaseOf(0))

	h.grid.Shuffle(rand.New(rand.NewSource(7)))

	for i := range h.grid.Items() {
		assert.Equal(t, lifecycle.PhaseUnloaded, h.grid.PhaseOf(i))
	}
	h.tick(10 * time.Millisecond)
	assert.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(0))
}

func TestGridSetItemsReleasesOldResources(t *testing.T) {
	h := newHarness(t, 4, testConfig())
	h.tick(0)
	h.finishLoad("item-0", lifecycle.Media{})
	require.Equal(t, lifecycle.PhasePlaying, h.grid.PhaseOf(0))
	require.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(1))

	playing := h.resources["item-0"]
	loading := h.resources["item-1"]

	h.grid.SetItems([]models.MediaItem{{
		ID:          "fresh",
		Kind:        models.KindVideo,
		SourcePath:  "/videos/fresh.mp4",
		AspectRatio: 1,
	}})

	assert.Equal(t, 1, playing.releases)
	assert.Equal(t, 1, loading.releases)
}

func TestGridProbedItemReachesReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	items := []models.MediaItem{{
		ID:          "clip",
		Kind:        models.KindVideo,
		SourcePath:  srv.URL + "/videos/clip.mp4",
		AspectRatio: 16.0 / 9.0,
	}}

	cfg := testConfig()
	cfg.Lifecycle.Autoplay = false
	geo := viewport.GeometryFunc(func() (float64, float64, bool) { return 200, 300, true })
	tracker := viewport.NewTracker(geo, nil, nil)
	prober := mediares.NewProber(2*time.Second, 4, nil)
	g := NewGrid(items, cfg, tracker, prober, nil, nil)

	// The probe completes asynchronously; keep ticking until the grid
	// drains its result.
	now := time.Unix(1000, 0)
	deadline := time.Now().Add(2 * time.Second)
	for g.PhaseOf(0) != lifecycle.PhaseReady && time.Now().Before(deadline) {
		now = now.Add(10 * time.Millisecond)
		g.Tick(now)
		time.Sleep(5 * time.Millisecond)
	}

	require.Equal(t, lifecycle.PhaseReady, g.PhaseOf(0))
	// The probed aspect ratio corrects the slot height: 100px wide at 16:9.
	assert.InDelta(t, 56.25, g.Layout().Slots[0].Height, 1e-9)
}

func TestGridEmptyWall(t *testing.T) {
	h := newHarness(t, 0, testConfig())
	h.tick(0)

	assert.True(t, h.grid.Empty())
	assert.Empty(t, h.grid.RenderWindow())
	assert.Equal(t, 0.0, h.grid.MaxScroll())
}

func TestGridToggleNoOpWhileLoading(t *testing.T) {
	h := newHarness(t, 4, testConfig())
	h.tick(0)
	require.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(0))

	h.grid.Toggle(0, h.now)
	assert.Equal(t, lifecycle.PhaseLoading, h.grid.PhaseOf(0))
}
