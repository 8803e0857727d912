package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mediawall/pkg/catalog"
)

// Message types for the TUI

// tickMsg drives the grid engine at a fixed cadence.
type tickMsg time.Time

// libraryMsg carries a finished catalog fetch.
type libraryMsg struct {
	library *catalog.Library
	err     error
}

// tickInterval is the engine cadence; it matches the auto-scroll tick
// so the driver never misses a beat.
const tickInterval = 50 * time.Millisecond

// tickCmd returns a command that sends the next engine tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd fetches the library off the event loop.
func (m *Model) fetchCmd(refresh bool) tea.Cmd {
	return func() tea.Msg {
		lib, err := m.fetcher.FetchLibrary(refresh)
		return libraryMsg{library: lib, err: err}
	}
}

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 0 && msg.Height > chromeRows {
			m.grid.Resize(float64(msg.Width), float64(msg.Height-chromeRows))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.grid.Tick(time.Time(msg))
		return m, tickCmd()

	case libraryMsg:
		if msg.err != nil {
			m.loading = false
			m.loadErr = msg.err
			return m, nil
		}
		m.tracks = msg.library.Tracks
		m.applyLibrary(msg.library.Items)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "up", "k":
		m.grid.UserScroll(-2, now)
		return m, nil

	case "down", "j":
		m.grid.UserScroll(2, now)
		return m, nil

	case "pgup":
		m.grid.UserScroll(-m.pageSize(), now)
		return m, nil

	case "pgdown":
		m.grid.UserScroll(m.pageSize(), now)
		return m, nil

	case "home", "g":
		m.grid.ScrollTo(0, now)
		return m, nil

	case "end", "G":
		m.grid.ScrollTo(m.grid.MaxScroll(), now)
		return m, nil

	case "left", "h":
		m.moveSelection(-1)
		return m, nil

	case "right", "l":
		m.moveSelection(1)
		return m, nil

	case " ", "enter":
		m.grid.Toggle(m.selected, now)
		return m, nil

	case "r":
		m.grid.Retry(m.selected, now)
		return m, nil

	case "R":
		m.loading = true
		return m, m.fetchCmd(true)

	case "s":
		m.grid.Shuffle(m.rng)
		m.selected = 0
		m.status = "shuffled"
		return m, nil

	case "a":
		m.grid.SetAutoScroll(!m.grid.AutoScrollEnabled(), now)
		return m, nil

	case "p":
		m.grid.SetAutoplay(!m.grid.Autoplay())
		return m, nil

	case "m":
		m.muted = !m.muted
		return m, nil

	case "t":
		m.cycleTagFilter()
		return m, nil
	}

	return m, nil
}

// handleMouse maps pointer activity onto the grid: the wheel scrolls,
// movement feeds the auto-scroll idle countdown, a click toggles the
// cell under the cursor.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.grid.UserScroll(-2, now)
		return m, nil

	case tea.MouseButtonWheelDown:
		m.grid.UserScroll(2, now)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		m.grid.PointerMove(float64(msg.X), float64(msg.Y), now)

	case tea.MouseActionPress:
		if idx, ok := m.itemAt(msg.X, msg.Y-logoRows()); ok {
			m.selected = idx
			m.grid.Toggle(idx, now)
		}
	}
	return m, nil
}

// cycleTagFilter advances through no-filter plus every known tag.
func (m *Model) cycleTagFilter() {
	if len(m.tags) == 0 {
		return
	}
	m.tagIdx = (m.tagIdx + 1) % (len(m.tags) + 1)
	m.selected = 0
	m.grid.SetItems(m.filtered(m.library))
}

func (m *Model) pageSize() float64 {
	return m.grid.Viewport().ContainerHeight
}

// itemAt resolves screen coordinates (already adjusted for the logo)
// to the item index under them.
func (m *Model) itemAt(x, y int) (int, bool) {
	lay := m.grid.Layout()
	if !lay.Ready() {
		return 0, false
	}
	scroll := m.grid.Viewport().ScrollTop
	fx := float64(x)
	fy := float64(y) + scroll

	for _, i := range m.grid.RenderWindow() {
		s := lay.Slots[i]
		if fx >= s.Left && fx < s.Left+s.Width && fy >= s.Top && fy < s.Bottom() {
			return i, true
		}
	}
	return 0, false
}
