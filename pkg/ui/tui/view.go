package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mediawall/pkg/wall/lifecycle"
)

const logo = "▛▀▖▛▀▖▛▀▘▛▀▖▀▜▖▙▄▌ MEDIA WALL"

func logoRows() int {
	return 2
}

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderLogo())
	sections = append(sections, m.renderWall())
	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderLogo() string {
	return logoStyle.Width(m.width).Render(logo) + "\n"
}

// renderWall composites every slot in the render window onto the
// canvas, offset by the current scroll position.
func (m *Model) renderWall() string {
	wallHeight := m.height - chromeRows
	if wallHeight < 1 {
		wallHeight = 1
	}

	if m.loadErr != nil {
		return errorStyle.Render("catalog unavailable: " + m.loadErr.Error())
	}
	if m.loading {
		return m.spinner.View() + " fetching library..."
	}
	if m.grid.Empty() {
		return statusInfoStyle.Render("no media to show")
	}

	lay := m.grid.Layout()
	if !lay.Ready() {
		return m.spinner.View() + " measuring..."
	}

	cv := newCanvas(m.width, wallHeight)
	scroll := m.grid.Viewport().ScrollTop

	for _, i := range m.grid.RenderWindow() {
		m.renderCell(cv, i, scroll)
	}
	return cv.String()
}

func (m *Model) renderCell(cv *canvas, index int, scroll float64) {
	lay := m.grid.Layout()
	slot := lay.Slots[index]
	item := m.grid.Items()[index]
	phase := m.grid.PhaseOf(index)

	x := int(slot.Left)
	y := int(slot.Top - scroll)
	w := int(slot.Width)
	h := int(slot.Height)

	style := phaseStyle(phase.String())
	if index == m.selected {
		style = cellSelectedStyle
	}

	cv.box(x, y, w, h, style)

	// Title on the first interior row, indicator centered below.
	if w > 4 {
		title := []rune(item.Title)
		if len(title) > w-4 {
			title = title[:w-4]
		}
		cv.text(x+2, y+1, string(title), cellTitleStyle)
	}

	glyph := phaseGlyph(phase.String())
	if phase == lifecycle.PhaseLoading {
		glyph = m.spinner.View()
	}
	cv.text(x+w/2, y+h/2, glyph, style)

	if phase == lifecycle.PhaseFailed && w > 4 {
		if reason := m.grid.ControllerOf(index).FailureReason(); reason != nil {
			msg := string(reason.Type)
			if len(msg) > w-4 {
				msg = msg[:w-4]
			}
			cv.text(x+2, y+h-2, msg, cellFailedStyle)
		}
	}
}

// renderStatusBar summarizes the wall state on one line.
func (m *Model) renderStatusBar() string {
	left := statusBarStyle.Render(" MEDIAWALL ")

	parts := []string{
		fmt.Sprintf("%d items", len(m.grid.Items())),
	}
	if tag := m.currentTag(); tag != "" {
		parts = append(parts, "tag:"+tag)
	}
	parts = append(parts, onOff("autoplay", m.grid.Autoplay()))
	parts = append(parts, onOff("autoscroll", m.grid.AutoScrollEnabled()))
	parts = append(parts, onOff("muted", m.muted))
	if track := m.currentTrack(); track != "" && !m.muted {
		parts = append(parts, "♪ "+track)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	right := statusInfoStyle.Render(strings.Join(parts, " │ "))
	return left + right + helpStyle.Render("? help  q quit")
}

func onOff(name string, v bool) string {
	if v {
		return name + ":on"
	}
	return name + ":off"
}

func (m *Model) renderHelp() string {
	keys := [][2]string{
		{"↑/↓ j/k", "scroll"},
		{"pgup/pgdn", "page"},
		{"g/G", "top/bottom"},
		{"←/→ h/l", "select cell"},
		{"space", "play/pause"},
		{"r", "retry failed"},
		{"R", "refresh catalog"},
		{"s", "shuffle"},
		{"a", "auto-scroll on/off"},
		{"p", "autoplay on/off"},
		{"m", "mute"},
		{"t", "cycle tag filter"},
		{"q", "quit"},
	}

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(helpKeyStyle.Render(k[0]))
		b.WriteString("  ")
		b.WriteString(k[1])
		b.WriteString("\n")
	}
	return helpStyle.Render(b.String())
}
