package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediawall/pkg/catalog"
	"mediawall/pkg/config"
	"mediawall/pkg/models"
)

type stubFetcher struct {
	library *catalog.Library
	err     error
	calls   int
}

func (s *stubFetcher) FetchLibrary(refresh bool) (*catalog.Library, error) {
	s.calls++
	return s.library, s.err
}

func testLibrary() *catalog.Library {
	return &catalog.Library{Items: []models.MediaItem{
		{ID: "a", Kind: models.KindVideo, SourcePath: "/videos/a.mp4", Title: "A", AspectRatio: 1, Tags: []string{"sunset"}},
		{ID: "b", Kind: models.KindImage, SourcePath: "/images/b.jpg", Title: "B", AspectRatio: 1},
		{ID: "c", Kind: models.KindVideo, SourcePath: "/videos/c.mp4", Title: "C", AspectRatio: 1, Tags: []string{"sunset"}},
	}, Tracks: []catalog.Track{
		{Filename: "ambient.mp3", Title: "Ambient"},
	}}
}

func newTestModel(t *testing.T) (*Model, *stubFetcher) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Wall.ShuffleOnStart = false
	cfg.Wall.AutoScrollEnabled = false
	cfg.Wall.Muted = false
	cfg.Wall.ColumnWidth = 40
	fetcher := &stubFetcher{library: testLibrary()}
	m := NewModel(cfg, fetcher, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, fetcher
}

func TestModelAppliesLibrary(t *testing.T) {
	m, _ := newTestModel(t)
	require.True(t, m.loading)

	m.Update(libraryMsg{library: testLibrary()})

	assert.False(t, m.loading)
	assert.Len(t, m.grid.Items(), 3)
	assert.Equal(t, []string{"sunset"}, m.tags)
}

func TestModelFetchErrorShown(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(libraryMsg{err: assert.AnError})

	assert.False(t, m.loading)
	require.Error(t, m.loadErr)
	assert.Contains(t, m.View(), "catalog unavailable")
}

func TestModelTagFilterCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, "sunset", m.currentTag())
	assert.Len(t, m.grid.Items(), 2)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, "", m.currentTag())
	assert.Len(t, m.grid.Items(), 3)
}

func TestModelTickDrivesGrid(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})

	_, cmd := m.Update(tickMsg(time.Now()))

	require.NotNil(t, cmd)
	assert.True(t, m.grid.Layout().Ready())
}

func TestModelScrollKeysClamp(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})
	m.Update(tickMsg(time.Now()))

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0.0, m.grid.Viewport().ScrollTop)

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, m.grid.MaxScroll(), m.grid.Viewport().ScrollTop)

	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0.0, m.grid.Viewport().ScrollTop)
}

func TestModelRefreshRefetches(t *testing.T) {
	m, fetcher := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 1, fetcher.calls)
}

func TestModelViewRendersCells(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})
	m.Update(tickMsg(time.Now()))

	out := m.View()
	assert.Contains(t, out, "MEDIA WALL")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "items")
	assert.Contains(t, out, "Ambient")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.NotContains(t, m.View(), "Ambient")
}

func TestModelSpinnerFrameIsPlainText(t *testing.T) {
	// The canvas styles glyphs per rune, so the spinner frame must carry
	// no escape sequences of its own.
	m, _ := newTestModel(t)
	assert.NotContains(t, m.spinner.View(), "\x1b")
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(libraryMsg{library: testLibrary()})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, m.View(), "shuffle")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.NotContains(t, m.View(), "cycle tag filter")
}