package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a fixed-size cell buffer the wall is composited onto. Each
// cell holds one already-styled rune so overlapping boxes clip cleanly
// at the viewport edges.
type canvas struct {
	width  int
	height int
	cells  [][]string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.cells = make([][]string, height)
	for y := range c.cells {
		row := make([]string, width)
		for x := range row {
			row[x] = " "
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, s string) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = s
}

// box draws a bordered rectangle with the given style. Parts outside
// the canvas are clipped silently.
func (c *canvas) box(x, y, w, h int, style lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	right := x + w - 1
	bottom := y + h - 1

	c.set(x, y, style.Render("╭"))
	c.set(right, y, style.Render("╮"))
	c.set(x, bottom, style.Render("╰"))
	c.set(right, bottom, style.Render("╯"))

	hbar := style.Render("─")
	for i := x + 1; i < right; i++ {
		c.set(i, y, hbar)
		c.set(i, bottom, hbar)
	}
	vbar := style.Render("│")
	for j := y + 1; j < bottom; j++ {
		c.set(x, j, vbar)
		c.set(right, j, vbar)
	}
}

// text writes a clipped, styled string starting at x,y.
func (c *canvas) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, style.Render(string(r)))
	}
}

func (c *canvas) String() string {
	rows := make([]string, c.height)
	for y, row := range c.cells {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
