package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mediawall/pkg/catalog"
	"mediawall/pkg/config"
	"mediawall/pkg/logger"
	"mediawall/pkg/metadata"
	"mediawall/pkg/models"
	"mediawall/pkg/wall"
	"mediawall/pkg/wall/autoscroll"
	"mediawall/pkg/wall/lifecycle"
	"mediawall/pkg/wall/mediares"
	"mediawall/pkg/wall/viewport"
	"mediawall/pkg/wall/visibility"
)

// chromeRows is the vertical space the logo and status bar take away
// from the wall.
const chromeRows = 4

// LibraryFetcher loads the catalog. The catalog client satisfies it;
// tests substitute a stub.
type LibraryFetcher interface {
	FetchLibrary(refresh bool) (*catalog.Library, error)
}

// Model represents the wall TUI model
type Model struct {
	cfg     *config.Config
	fetcher LibraryFetcher
	log     logger.Logger

	grid   *wall.Grid
	prober *mediares.Prober

	// full library before tag filtering
	library []models.MediaItem
	tags    []string
	tagIdx  int // 0 means no filter
	tracks  []catalog.Track

	spinner  spinner.Model
	width    int
	height   int
	selected int
	showHelp bool
	muted    bool
	loading  bool
	loadErr  error
	status   string

	rng *rand.Rand
}

// NewModel creates a wall model around the given catalog fetcher.
func NewModel(cfg *config.Config, fetcher LibraryFetcher, log logger.Logger) *Model {
	// The spinner stays unstyled: its frame is composited onto the cell
	// canvas, which applies the phase style per rune. A styled frame
	// would smear escape sequences across cells.
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		cfg:     cfg,
		fetcher: fetcher,
		log:     log,
		spinner: s,
		muted:   cfg.Wall.Muted,
		loading: true,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	m.prober = mediares.NewProber(cfg.Catalog.Timeout, 0, log)
	m.grid = wall.NewGrid(nil, m.gridConfig(), m.newTracker(), m.prober, nil, log)
	return m
}

func (m *Model) gridConfig() wall.Config {
	w := m.cfg.Wall
	cfg := wall.Config{
		ColumnWidth: w.ColumnWidth,
		Gutter:      w.Gutter,
		Overscan:    w.OverscanMultiplier,
		Visibility: visibility.Config{
			LoadMargin:   w.LoadMarginMultiplier,
			PlayMargin:   0,
			MinPlayRatio: w.PlayRatioThreshold,
		},
		Lifecycle: lifecycle.DefaultConfig(),
		AutoScroll: autoscroll.Config{
			Enabled:      w.AutoScrollEnabled,
			Speed:        w.ScrollSpeed,
			IdleDelay:    5 * time.Second,
			TickInterval: 50 * time.Millisecond,
		},
	}
	cfg.Lifecycle.Autoplay = w.Autoplay
	return cfg
}

// newTracker wires the viewport to the model's window size, with a
// fixed 80x24 fallback when the terminal never reports one.
func (m *Model) newTracker() *viewport.Tracker {
	primary := viewport.GeometryFunc(func() (float64, float64, bool) {
		if m.width <= 0 || m.height <= chromeRows {
			return 0, 0, false
		}
		return float64(m.width), float64(m.height - chromeRows), true
	})
	fallback := viewport.GeometryFunc(func() (float64, float64, bool) {
		return 80, 24 - chromeRows, true
	})
	return viewport.NewTracker(primary, fallback, m.log)
}

// Init starts the catalog fetch and the tick loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(false), tickCmd(), m.spinner.Tick)
}

// applyLibrary installs a freshly fetched library, preserving the
// active tag filter when possible.
func (m *Model) applyLibrary(items []models.MediaItem) {
	m.library = items
	m.tags = metadata.TagNames(metadata.AggregateTags(items))
	if m.tagIdx > len(m.tags) {
		m.tagIdx = 0
	}
	if m.cfg.Wall.ShuffleOnStart {
		items = models.Shuffle(items, m.rng)
	}
	m.grid.SetItems(m.filtered(items))
	m.loading = false
	m.loadErr = nil
}

// filtered applies the active tag filter.
func (m *Model) filtered(items []models.MediaItem) []models.MediaItem {
	if m.tagIdx == 0 || m.tagIdx > len(m.tags) {
		return items
	}
	return models.FilterByTag(items, m.tags[m.tagIdx-1])
}

// currentTrack returns the background track shown in the status bar,
// or empty when the backend has no music.
func (m *Model) currentTrack() string {
	if len(m.tracks) == 0 {
		return ""
	}
	t := m.tracks[0]
	if t.Title != "" {
		return t.Title
	}
	return t.Filename
}

// currentTag returns the active tag filter name, or empty.
func (m *Model) currentTag() string {
	if m.tagIdx == 0 || m.tagIdx > len(m.tags) {
		return ""
	}
	return m.tags[m.tagIdx-1]
}

// moveSelection steps the highlighted cell through the render window.
func (m *Model) moveSelection(delta int) {
	window := m.grid.RenderWindow()
	if len(window) == 0 {
		return
	}
	pos := 0
	for i, idx := range window {
		if idx == m.selected {
			pos = i
			break
		}
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(window) {
		pos = len(window) - 1
	}
	m.selected = window[pos]
}
