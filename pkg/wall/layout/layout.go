package layout

import "mediawall/pkg/models"

// Slot is the computed geometry for one grid item.
type Slot struct {
	Column int
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the slot's lower edge.
func (s Slot) Bottom() float64 {
	return s.Top + s.Height
}

// Layout is the positioner's output for one item sequence.
type Layout struct {
	Slots         []Slot
	ColumnHeights []float64
	ColumnWidth   float64
	Gutter        float64
	TotalHeight   float64
	ready         bool
}

// Ready reports whether geometry could be computed. A zero-width container
// yields a not-ready layout and nothing should be rendered from it.
func (l Layout) Ready() bool {
	return l.ready
}

// Columns returns the column count.
func (l Layout) Columns() int {
	return len(l.ColumnHeights)
}

// Compute assigns every item to the currently shortest column
// (tie-break: lowest index) and stacks slots top to bottom with no gaps.
// The optional gutter is added below each slot. Items with a missing
// aspect ratio get the video fallback rather than failing.
func Compute(items []models.MediaItem, containerWidth, columnWidth, gutter float64) Layout {
	if containerWidth <= 0 || columnWidth <= 0 {
		return Layout{}
	}

	cols := int(containerWidth / columnWidth)
	if cols < 1 {
		cols = 1
	}

	l := Layout{
		Slots:         make([]Slot, len(items)),
		ColumnHeights: make([]float64, cols),
		ColumnWidth:   columnWidth,
		Gutter:        gutter,
		ready:         true,
	}

	for i, item := range items {
		col := shortestColumn(l.ColumnHeights)

		ratio := item.AspectRatio
		if ratio <= 0 {
			ratio = models.DefaultVideoAspectRatio
		}

		height := columnWidth / ratio
		l.Slots[i] = Slot{
			Column: col,
			Top:    l.ColumnHeights[col],
			Left:   float64(col) * columnWidth,
			Width:  columnWidth,
			Height: height,
		}
		l.ColumnHeights[col] += height + gutter
	}

	l.TotalHeight = maxHeight(l.ColumnHeights)
	return l
}

// UpdateItemHeight adjusts one slot's height after its true aspect ratio
// becomes known, shifting every later slot in the same column by the
// delta. This is the scoped re-flow used when loaded metadata corrects an
// estimated ratio; it never touches other columns.
func (l *Layout) UpdateItemHeight(index int, ratio float64) {
	if !l.ready || index < 0 || index >= len(l.Slots) || ratio <= 0 {
		return
	}

	slot := &l.Slots[index]
	newHeight := slot.Width / ratio
	delta := newHeight - slot.Height
	if delta == 0 {
		return
	}

	slot.Height = newHeight
	for i := index + 1; i < len(l.Slots); i++ {
		if l.Slots[i].Column == slot.Column {
			l.Slots[i].Top += delta
		}
	}
	l.ColumnHeights[slot.Column] += delta
	l.TotalHeight = maxHeight(l.ColumnHeights)
}

func shortestColumn(heights []float64) int {
	col := 0
	for i := 1; i < len(heights); i++ {
		if heights[i] < heights[col] {
			col = i
		}
	}
	return col
}

func maxHeight(heights []float64) float64 {
	max := 0.0
	for _, h := range heights {
		if h > max {
			max = h
		}
	}
	return max
}
